package scheduler

import "github.com/Gthulhu/schedsim/domain"

// Partitioned is the result of splitting processes by queue id.
// Queues[i].ID == i for every i < Count.
type Partitioned struct {
	Queues   []domain.Queue
	Count    int
	Excluded int
}

// Total returns the number of processes that were partitioned, excluded ones included
func (p Partitioned) Total() int {
	total := p.Excluded
	for _, q := range p.Queues {
		total += q.Len()
	}
	return total
}

// Partition groups processes into Count = max(queue_id)+1 queues keeping input order
// inside each queue. Processes with a negative queue id are dropped and counted in Excluded.
func Partition(processes []domain.Process) Partitioned {
	count := 0
	for _, p := range processes {
		if p.QueueID+1 > count {
			count = p.QueueID + 1
		}
	}

	part := Partitioned{
		Queues: make([]domain.Queue, count),
		Count:  count,
	}
	for i := range part.Queues {
		part.Queues[i].ID = i
	}
	for _, p := range processes {
		if p.QueueID < 0 || p.QueueID >= count {
			part.Excluded++
			continue
		}
		part.Queues[p.QueueID].Processes = append(part.Queues[p.QueueID].Processes, p)
	}
	return part
}
