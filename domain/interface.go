package domain

import "context"

type QueryRunOptions struct {
	IDs          []string
	Fingerprints []string
	// Limit caps the number of runs returned, newest first. Zero means no cap.
	Limit  int64
	Result []*SimulationRun
}

type Repository interface {
	CreateRun(ctx context.Context, run *SimulationRun) error
	QueryRuns(ctx context.Context, opt *QueryRunOptions) error
	DeleteRun(ctx context.Context, id string) error
}

// Service defines the interface for the service layer
type Service interface {
	// Simulate runs every policy over specs and stores the resulting run
	Simulate(ctx context.Context, specs []ProcessSpec) (*SimulationRun, error)
	// GetRun retrieves a stored run by id
	GetRun(ctx context.Context, id string) (*SimulationRun, error)
	// ListRuns fills opt.Result with stored runs
	ListRuns(ctx context.Context, opt *QueryRunOptions) error
	// DeleteRun removes a stored run
	DeleteRun(ctx context.Context, id string) error
}
