package scheduler

import (
	"math/rand/v2"
	"testing"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueOf(rows ...[4]int) domain.Queue {
	part := Partition(NewProcessStore(specsOf(rows...)...).Processes())
	if part.Count == 0 {
		return domain.Queue{}
	}
	return part.Queues[0]
}

func waitsOf(procs []domain.Process) []int {
	waits := make([]int, len(procs))
	for i, p := range procs {
		waits[i] = p.WaitingTime
	}
	return waits
}

func TestPoliciesThreeProcessScenario(t *testing.T) {
	q := queueOf([4]int{5, 2, 0, 0}, [4]int{3, 1, 1, 0}, [4]int{8, 3, 2, 0})

	for _, policy := range Policies() {
		out := Run(policy, q)
		assert.Equal(t, []int{0, 4, 6}, waitsOf(out.Processes), policy.Algorithm().String())
		assert.InDelta(t, 3.33, AverageWaiting(out.Processes), 1e-2, policy.Algorithm().String())
		assert.Equal(t, []int{5, 8, 16}, []int{
			out.Processes[0].CompletionTime,
			out.Processes[1].CompletionTime,
			out.Processes[2].CompletionTime,
		})
	}
}

func TestPoliciesDivergeOnReadySelection(t *testing.T) {
	q := queueOf([4]int{8, 3, 0, 0}, [4]int{4, 1, 1, 0}, [4]int{2, 2, 2, 0})

	fcfs := Run(FCFS{}, q)
	assert.Equal(t, []int{0, 7, 10}, waitsOf(fcfs.Processes))
	assert.InDelta(t, 5.67, AverageWaiting(fcfs.Processes), 1e-2)

	sjf := Run(SJF{}, q)
	assert.Equal(t, []int{0, 9, 6}, waitsOf(sjf.Processes), "shorter job 3 runs before job 2")
	assert.InDelta(t, 5.00, AverageWaiting(sjf.Processes), 1e-2)

	prio := Run(Priority{}, q)
	assert.Equal(t, []int{0, 7, 10}, waitsOf(prio.Processes))
}

func TestFCFSSortsByArrival(t *testing.T) {
	q := queueOf([4]int{2, 0, 4, 0}, [4]int{3, 0, 0, 0}, [4]int{1, 0, 4, 0})

	out := Run(FCFS{}, q)
	// execution: 2 (0..3), 1 (4..6), 3 (6..7)
	assert.Equal(t, []int{0, 0, 2}, waitsOf(out.Processes))
	assert.Equal(t, 6, out.Processes[0].CompletionTime)
	assert.Equal(t, 3, out.Processes[1].CompletionTime)
	assert.Equal(t, 7, out.Processes[2].CompletionTime)
}

func TestIdleGapAdvancesClock(t *testing.T) {
	q := queueOf([4]int{2, 1, 0, 0}, [4]int{3, 1, 10, 0})

	for _, policy := range Policies() {
		out := Run(policy, q)
		assert.Equal(t, []int{0, 0}, waitsOf(out.Processes), policy.Algorithm().String())
		assert.Equal(t, 13, out.Processes[1].CompletionTime, policy.Algorithm().String())
	}
}

func TestLateFirstArrival(t *testing.T) {
	q := queueOf([4]int{3, 1, 5, 0})
	for _, policy := range Policies() {
		out := Run(policy, q)
		require.Len(t, out.Processes, 1)
		assert.Equal(t, 0, out.Processes[0].WaitingTime)
		assert.Equal(t, 8, out.Processes[0].CompletionTime)
		assert.Equal(t, 3, out.Processes[0].TurnaroundTime)
	}
}

func TestSelectionTieGoesToQueueOrder(t *testing.T) {
	q := queueOf([4]int{5, 1, 0, 0}, [4]int{2, 1, 1, 0}, [4]int{2, 1, 1, 0})

	sjf := Run(SJF{}, q)
	assert.Equal(t, []int{0, 4, 6}, waitsOf(sjf.Processes))

	prio := Run(Priority{}, q)
	assert.Equal(t, []int{0, 4, 6}, waitsOf(prio.Processes))
}

func TestRunLeavesQueueUntouched(t *testing.T) {
	q := queueOf([4]int{8, 3, 0, 0}, [4]int{4, 1, 1, 0}, [4]int{2, 2, 2, 0})
	before := q.Clone()

	for _, policy := range Policies() {
		_ = Run(policy, q)
	}
	assert.Equal(t, before, q)
	for _, p := range q.Processes {
		assert.Zero(t, p.WaitingTime)
		assert.Zero(t, p.CompletionTime)
	}
}

func TestRunEmptyQueue(t *testing.T) {
	for _, policy := range Policies() {
		out := Run(policy, domain.Queue{ID: 4})
		assert.Equal(t, 4, out.ID)
		assert.Empty(t, out.Processes)
	}
}

func TestMergeTimesIgnoresUnknownIDs(t *testing.T) {
	dst := []domain.Process{{ID: 1}, {ID: 2}}
	MergeTimes(dst, []domain.Process{{ID: 2, WaitingTime: 3, TurnaroundTime: 5, CompletionTime: 7}, {ID: 9, WaitingTime: 1}})

	assert.Zero(t, dst[0].WaitingTime)
	assert.Equal(t, 3, dst[1].WaitingTime)
	assert.Equal(t, 5, dst[1].TurnaroundTime)
	assert.Equal(t, 7, dst[1].CompletionTime)
}

func TestPoliciesFollowAlgorithmOrder(t *testing.T) {
	policies := Policies()
	require.Len(t, policies, len(domain.Algorithms))
	for i, alg := range domain.Algorithms {
		assert.Equal(t, alg, policies[i].Algorithm())
	}
}

// tickSchedule steps the clock one unit at a time and scans the remaining
// processes in queue order, keeping the first strictly smaller key.
func tickSchedule(procs []domain.Process, keyOf func(domain.Process) int) []domain.Process {
	remaining := append([]domain.Process(nil), procs...)
	var order []domain.Process
	t := 0
	for len(remaining) > 0 {
		best := -1
		for i, p := range remaining {
			if p.ArrivalTime <= t && (best < 0 || keyOf(p) < keyOf(remaining[best])) {
				best = i
			}
		}
		if best < 0 {
			t++
			continue
		}
		p := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		p.WaitingTime = t - p.ArrivalTime
		p.CompletionTime = t + p.BurstTime
		p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
		t = p.CompletionTime
		order = append(order, p)
	}
	return order
}

func randomQueue(r *rand.Rand, n int) domain.Queue {
	store := NewProcessStore()
	for i := 0; i < n; i++ {
		store.Add(domain.ProcessSpec{
			BurstTime:   1 + r.IntN(9),
			Priority:    r.IntN(4),
			ArrivalTime: r.IntN(30),
		})
	}
	return domain.Queue{Processes: store.Processes()}
}

func TestSelectionMatchesTickStepping(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	cases := []struct {
		policy Policy
		keyOf  func(domain.Process) int
	}{
		{SJF{}, func(p domain.Process) int { return p.BurstTime }},
		{Priority{}, func(p domain.Process) int { return p.Priority }},
	}

	for round := 0; round < 200; round++ {
		q := randomQueue(r, 1+r.IntN(12))
		for _, tc := range cases {
			got := Run(tc.policy, q)

			want := q.Clone()
			MergeTimes(want.Processes, tickSchedule(q.Processes, tc.keyOf))
			require.Equal(t, want.Processes, got.Processes, "round %d %s", round, tc.policy.Algorithm())
		}
	}
}

func TestScheduleInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 11))
	for round := 0; round < 100; round++ {
		q := randomQueue(r, 1+r.IntN(15))
		for _, policy := range Policies() {
			out := Run(policy, q)
			require.Len(t, out.Processes, q.Len())

			type span struct{ start, end int }
			spans := make([]span, 0, out.Len())
			for i, p := range out.Processes {
				assert.Equal(t, q.Processes[i].ID, p.ID, "queue order preserved")
				assert.Equal(t, p.CompletionTime-p.ArrivalTime, p.TurnaroundTime)
				assert.Equal(t, p.TurnaroundTime-p.BurstTime, p.WaitingTime)
				assert.GreaterOrEqual(t, p.WaitingTime, 0)
				spans = append(spans, span{p.CompletionTime - p.BurstTime, p.CompletionTime})
			}
			for i := range spans {
				for j := i + 1; j < len(spans); j++ {
					overlap := spans[i].start < spans[j].end && spans[j].start < spans[i].end
					assert.False(t, overlap, "round %d %s: processes %d and %d overlap", round, policy.Algorithm(), i, j)
				}
			}

			again := Run(policy, q)
			assert.Equal(t, out, again, "scheduling is deterministic")
		}
	}
}
