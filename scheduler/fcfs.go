package scheduler

import (
	"cmp"
	"slices"

	"github.com/Gthulhu/schedsim/domain"
)

// FCFS runs processes in arrival order, ties broken by id
type FCFS struct{}

func (FCFS) Algorithm() domain.Algorithm {
	return domain.AlgorithmFCFS
}

func (FCFS) Schedule(procs []domain.Process) []domain.Process {
	slices.SortStableFunc(procs, func(a, b domain.Process) int {
		if c := cmp.Compare(a.ArrivalTime, b.ArrivalTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	SimulateClock(procs)
	return procs
}
