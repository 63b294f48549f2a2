package scheduler

import "github.com/Gthulhu/schedsim/domain"

// BuildResult runs policy on q and packages the outcome.
// It returns false for an empty queue, which has no result.
func BuildResult(q domain.Queue, policy Policy) (domain.ScheduleResult, bool) {
	if q.Len() == 0 {
		return domain.ScheduleResult{}, false
	}
	snapshot := Run(policy, q)
	waits := make([]int, snapshot.Len())
	for i, p := range snapshot.Processes {
		waits[i] = p.WaitingTime
	}
	return domain.ScheduleResult{
		QueueID:           q.ID,
		Algorithm:         policy.Algorithm(),
		WaitingTimes:      waits,
		AverageWaiting:    AverageWaiting(snapshot.Processes),
		AverageTurnaround: AverageTurnaround(snapshot.Processes),
		Processes:         snapshot.Processes,
	}, true
}

// Assemble evaluates every policy on every queue of part.
// Each policy sees its own copy of the queue.
func Assemble(part Partitioned, policies ...Policy) []domain.QueueResults {
	if len(policies) == 0 {
		policies = Policies()
	}
	out := make([]domain.QueueResults, 0, part.Count)
	for _, q := range part.Queues {
		qr := domain.QueueResults{
			QueueID: q.ID,
			Results: make(map[domain.Algorithm]*domain.ScheduleResult, len(policies)),
		}
		for _, policy := range policies {
			res, ok := BuildResult(q, policy)
			if !ok {
				qr.Results[policy.Algorithm()] = nil
				continue
			}
			qr.Results[policy.Algorithm()] = &res
		}
		out = append(out, qr)
	}
	return out
}

// Flatten returns the present results ordered by queue id, then algorithm tag
func Flatten(queues []domain.QueueResults) []domain.ScheduleResult {
	out := make([]domain.ScheduleResult, 0, len(queues)*len(domain.Algorithms))
	for _, qr := range queues {
		for _, alg := range domain.Algorithms {
			if res := qr.Results[alg]; res != nil {
				out = append(out, *res)
			}
		}
	}
	return out
}

// Simulate stores specs, partitions them and runs every policy on every queue
func Simulate(specs []domain.ProcessSpec) domain.Simulation {
	store := NewProcessStore(specs...)
	part := Partition(store.Processes())
	return domain.Simulation{
		Processes:     store.Processes(),
		QueueCount:    part.Count,
		ExcludedCount: part.Excluded,
		Results:       Flatten(Assemble(part)),
	}
}
