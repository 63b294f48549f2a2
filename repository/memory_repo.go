package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/util"
)

// memoryRepo keeps runs for the lifetime of the process
type memoryRepo struct {
	runs *util.GenericMap[string, *domain.SimulationRun]
}

func NewMemoryRepository() domain.Repository {
	return &memoryRepo{runs: util.NewGenericMap[string, *domain.SimulationRun]()}
}

func (r *memoryRepo) CreateRun(ctx context.Context, run *domain.SimulationRun) error {
	if err := prepareRun(run); err != nil {
		return err
	}
	stored := *run
	if _, loaded := r.runs.LoadOrStore(run.ID, &stored); loaded {
		return fmt.Errorf("create simulation run, err: duplicate id %s", run.ID)
	}
	return nil
}

func (r *memoryRepo) QueryRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}

	result := make([]*domain.SimulationRun, 0)
	for _, run := range r.candidates(opt.IDs) {
		if len(opt.Fingerprints) > 0 && !slices.Contains(opt.Fingerprints, run.Fingerprint) {
			continue
		}
		copied := *run
		result = append(result, &copied)
	}
	slices.SortFunc(result, func(a, b *domain.SimulationRun) int {
		if c := cmp.Compare(b.CreatedTime, a.CreatedTime); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if opt.Limit > 0 && int64(len(result)) > opt.Limit {
		result = result[:opt.Limit]
	}
	opt.Result = result
	return nil
}

// candidates looks ids up directly, or returns every run when ids is empty
func (r *memoryRepo) candidates(ids []string) []*domain.SimulationRun {
	if len(ids) == 0 {
		return r.runs.Values()
	}
	out := make([]*domain.SimulationRun, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if run, ok := r.runs.Load(id); ok {
			out = append(out, run)
		}
	}
	return out
}

func (r *memoryRepo) DeleteRun(ctx context.Context, id string) error {
	if _, loaded := r.runs.LoadAndDelete(id); !loaded {
		return domain.ErrNotFound
	}
	return nil
}
