package scheduler

import (
	"cmp"
	"slices"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// SJF picks the shortest burst among arrived processes
type SJF struct{}

func (SJF) Algorithm() domain.Algorithm {
	return domain.AlgorithmSJF
}

func (SJF) Schedule(procs []domain.Process) []domain.Process {
	return scheduleBySelection(procs, func(p domain.Process) int { return p.BurstTime })
}

// Priority picks the lowest priority value among arrived processes
type Priority struct{}

func (Priority) Algorithm() domain.Algorithm {
	return domain.AlgorithmPriority
}

func (Priority) Schedule(procs []domain.Process) []domain.Process {
	return scheduleBySelection(procs, func(p domain.Process) int { return p.Priority })
}

// readyKey orders the ready set by selection key, then by position in the queue
type readyKey struct {
	key int
	pos int
}

func compareReady(a, b interface{}) int {
	ka := a.(readyKey)
	kb := b.(readyKey)
	if c := cmp.Compare(ka.key, kb.key); c != 0 {
		return c
	}
	return cmp.Compare(ka.pos, kb.pos)
}

// scheduleBySelection repeatedly runs the arrived process with the smallest key.
// Equal keys go to the process that comes first in the queue. When nothing has
// arrived the clock jumps to the next arrival.
func scheduleBySelection(procs []domain.Process, keyOf func(domain.Process) int) []domain.Process {
	pending := make([]int, len(procs))
	for i := range pending {
		pending[i] = i
	}
	slices.SortStableFunc(pending, func(a, b int) int {
		return cmp.Compare(procs[a].ArrivalTime, procs[b].ArrivalTime)
	})

	ready := redblacktree.NewWith(compareReady)
	order := make([]domain.Process, 0, len(procs))
	t := 0
	next := 0
	for len(order) < len(procs) {
		for next < len(pending) && procs[pending[next]].ArrivalTime <= t {
			pos := pending[next]
			ready.Put(readyKey{key: keyOf(procs[pos]), pos: pos}, pos)
			next++
		}

		node := ready.Left()
		if node == nil {
			t = procs[pending[next]].ArrivalTime
			continue
		}
		pos := node.Value.(int)
		ready.Remove(node.Key)

		p := procs[pos]
		t = dispatch(&p, t)
		order = append(order, p)
	}
	return order
}
