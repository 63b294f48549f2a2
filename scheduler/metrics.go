package scheduler

import "github.com/Gthulhu/schedsim/domain"

// AverageWaiting returns the mean waiting time, 0 for an empty slice
func AverageWaiting(procs []domain.Process) float64 {
	if len(procs) == 0 {
		return 0
	}
	sum := 0
	for _, p := range procs {
		sum += p.WaitingTime
	}
	return float64(sum) / float64(len(procs))
}

// AverageTurnaround returns the mean turnaround time, 0 for an empty slice
func AverageTurnaround(procs []domain.Process) float64 {
	if len(procs) == 0 {
		return 0
	}
	sum := 0
	for _, p := range procs {
		sum += p.TurnaroundTime
	}
	return float64(sum) / float64(len(procs))
}

// SimulateClock runs procs back to back in slice order starting at t=0,
// idling until each arrival, and fills their derived times in place.
func SimulateClock(procs []domain.Process) {
	t := 0
	for i := range procs {
		t = dispatch(&procs[i], t)
	}
}

// dispatch runs p to completion on a clock currently at t and returns the new clock
func dispatch(p *domain.Process, t int) int {
	if p.ArrivalTime > t {
		t = p.ArrivalTime
	}
	p.WaitingTime = t - p.ArrivalTime
	p.CompletionTime = t + p.BurstTime
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	return p.CompletionTime
}
