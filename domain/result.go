package domain

import "slices"

// ScheduleResult is the outcome of one policy on one non-empty queue.
// WaitingTimes follows the queue's input order, not execution order.
type ScheduleResult struct {
	QueueID           int       `json:"queue_id" bson:"queue_id" yaml:"queue_id"`
	Algorithm         Algorithm `json:"algorithm" bson:"algorithm" yaml:"algorithm"`
	WaitingTimes      []int     `json:"waiting_times" bson:"waiting_times" yaml:"waiting_times"`
	AverageWaiting    float64   `json:"average_waiting" bson:"average_waiting" yaml:"average_waiting"`
	AverageTurnaround float64   `json:"average_turnaround" bson:"average_turnaround" yaml:"average_turnaround"`
	Processes         []Process `json:"processes,omitempty" bson:"processes,omitempty" yaml:"processes,omitempty"`
}

// QueueResults groups the per-policy results of a queue. A nil entry means the
// queue was empty and the policy produced nothing.
type QueueResults struct {
	QueueID int
	Results map[Algorithm]*ScheduleResult
}

// Simulation is the full output of running every policy over a process set
type Simulation struct {
	Processes     []Process        `json:"processes" bson:"processes" yaml:"processes"`
	QueueCount    int              `json:"queue_count" bson:"queue_count" yaml:"queue_count"`
	ExcludedCount int              `json:"excluded_count" bson:"excluded_count" yaml:"excluded_count"`
	Results       []ScheduleResult `json:"results" bson:"results" yaml:"results"`
}

// ResultFor returns the result of alg on queueID, if one exists
func (s *Simulation) ResultFor(queueID int, alg Algorithm) (ScheduleResult, bool) {
	for _, r := range s.Results {
		if r.QueueID == queueID && r.Algorithm == alg {
			return r, true
		}
	}
	return ScheduleResult{}, false
}

// Only returns a copy of s keeping the results of algs. No algs keeps every result.
func (s Simulation) Only(algs ...Algorithm) Simulation {
	if len(algs) == 0 {
		return s
	}
	out := s
	out.Results = make([]ScheduleResult, 0, len(s.Results))
	for _, r := range s.Results {
		if slices.Contains(algs, r.Algorithm) {
			out.Results = append(out.Results, r)
		}
	}
	return out
}

// SimulationRun is a persisted simulation
type SimulationRun struct {
	ID          string `json:"id" bson:"_id" yaml:"id"`
	Fingerprint string `json:"fingerprint" bson:"fingerprint" yaml:"fingerprint"`
	CreatedTime int64  `json:"created_time" bson:"created_time" yaml:"created_time"`
	Simulation  `json:",inline" bson:",inline" yaml:",inline"`
}
