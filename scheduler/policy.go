package scheduler

import "github.com/Gthulhu/schedsim/domain"

// Policy orders a queue's processes for execution.
// Schedule receives a private copy it may reorder and returns the processes
// in execution order with their derived times filled.
type Policy interface {
	Algorithm() domain.Algorithm
	Schedule(procs []domain.Process) []domain.Process
}

// Policies returns one instance of every policy, in algorithm tag order
func Policies() []Policy {
	return []Policy{FCFS{}, SJF{}, Priority{}}
}

// Run schedules a copy of q with policy and returns a snapshot of q, in its
// original order, carrying the computed times. q itself is left untouched.
func Run(policy Policy, q domain.Queue) domain.Queue {
	snapshot := q.Clone()
	if q.Len() == 0 {
		return snapshot
	}
	work := q.Clone()
	for i := range work.Processes {
		work.Processes[i].ResetTimes()
	}
	scheduled := policy.Schedule(work.Processes)
	MergeTimes(snapshot.Processes, scheduled)
	return snapshot
}

// MergeTimes copies derived times from scheduled onto dst, matching by process id.
// Entries of dst with no match keep their values.
func MergeTimes(dst []domain.Process, scheduled []domain.Process) {
	byID := make(map[int]domain.Process, len(scheduled))
	for _, p := range scheduled {
		byID[p.ID] = p
	}
	for i := range dst {
		src, ok := byID[dst[i].ID]
		if !ok {
			continue
		}
		dst[i].WaitingTime = src.WaitingTime
		dst[i].TurnaroundTime = src.TurnaroundTime
		dst[i].CompletionTime = src.CompletionTime
	}
}
