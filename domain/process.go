package domain

import "fmt"

// DefaultMaxQueueID bounds queue ids when no limit is configured.
// Partitioning allocates one queue per id below the largest one seen.
const DefaultMaxQueueID = 1024

// ProcessSpec is a process descriptor as it arrives from an input file or the API
type ProcessSpec struct {
	BurstTime   int `json:"burst_time" bson:"burst_time" yaml:"burst_time"`
	Priority    int `json:"priority" bson:"priority" yaml:"priority"`
	ArrivalTime int `json:"arrival_time" bson:"arrival_time" yaml:"arrival_time"`
	QueueID     int `json:"queue_id" bson:"queue_id" yaml:"queue_id"`
}

// Validate reports whether the descriptor can take part in a simulation
func (s ProcessSpec) Validate() error {
	if s.BurstTime <= 0 {
		return fmt.Errorf("%w: burst time must be positive, got %d", ErrInvalidProcess, s.BurstTime)
	}
	if s.ArrivalTime < 0 {
		return fmt.Errorf("%w: arrival time must not be negative, got %d", ErrInvalidProcess, s.ArrivalTime)
	}
	return nil
}

// ValidateQueue rejects queue ids at or above maxQueueID. A non-positive
// maxQueueID falls back to DefaultMaxQueueID. Negative ids pass: they are
// excluded when partitioning.
func (s ProcessSpec) ValidateQueue(maxQueueID int) error {
	if maxQueueID <= 0 {
		maxQueueID = DefaultMaxQueueID
	}
	if s.QueueID >= maxQueueID {
		return fmt.Errorf("%w: queue id must be below %d, got %d", ErrInvalidProcess, maxQueueID, s.QueueID)
	}
	return nil
}

// Process is a single unit of work. WaitingTime, TurnaroundTime and CompletionTime
// stay zero until a scheduling run fills them.
type Process struct {
	ID             int `json:"id" bson:"id" yaml:"id"`
	BurstTime      int `json:"burst_time" bson:"burst_time" yaml:"burst_time"`
	Priority       int `json:"priority" bson:"priority" yaml:"priority"`
	ArrivalTime    int `json:"arrival_time" bson:"arrival_time" yaml:"arrival_time"`
	QueueID        int `json:"queue_id" bson:"queue_id" yaml:"queue_id"`
	WaitingTime    int `json:"waiting_time" bson:"waiting_time" yaml:"waiting_time"`
	TurnaroundTime int `json:"turnaround_time" bson:"turnaround_time" yaml:"turnaround_time"`
	CompletionTime int `json:"completion_time" bson:"completion_time" yaml:"completion_time"`
}

// NewProcess builds a process from its descriptor with derived times zeroed
func NewProcess(id int, spec ProcessSpec) Process {
	return Process{
		ID:          id,
		BurstTime:   spec.BurstTime,
		Priority:    spec.Priority,
		ArrivalTime: spec.ArrivalTime,
		QueueID:     spec.QueueID,
	}
}

// ResetTimes clears the derived times
func (p *Process) ResetTimes() {
	p.WaitingTime = 0
	p.TurnaroundTime = 0
	p.CompletionTime = 0
}

// Queue holds the processes sharing a queue id, in input order
type Queue struct {
	ID        int       `json:"id" bson:"id" yaml:"id"`
	Processes []Process `json:"processes" bson:"processes" yaml:"processes"`
}

// Len returns the number of processes in the queue
func (q Queue) Len() int {
	return len(q.Processes)
}

// Clone returns a queue whose process slice is independent of q
func (q Queue) Clone() Queue {
	out := Queue{ID: q.ID}
	if q.Processes != nil {
		out.Processes = make([]Process, len(q.Processes))
		copy(out.Processes, q.Processes)
	}
	return out
}
