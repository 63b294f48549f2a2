package scheduler

import (
	"testing"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specsOf(rows ...[4]int) []domain.ProcessSpec {
	specs := make([]domain.ProcessSpec, 0, len(rows))
	for _, r := range rows {
		specs = append(specs, domain.ProcessSpec{BurstTime: r[0], Priority: r[1], ArrivalTime: r[2], QueueID: r[3]})
	}
	return specs
}

func TestProcessStoreAssignsSequentialIDs(t *testing.T) {
	store := NewProcessStore(specsOf([4]int{5, 2, 0, 0}, [4]int{3, 1, 1, 1})...)
	p := store.Add(domain.ProcessSpec{BurstTime: 1, QueueID: 0})

	assert.Equal(t, 3, p.ID)
	require.Equal(t, 3, store.Len())
	procs := store.Processes()
	for i, proc := range procs {
		assert.Equal(t, i+1, proc.ID, "ids follow input order")
	}

	procs[0].BurstTime = 99
	assert.Equal(t, 5, store.Processes()[0].BurstTime, "returned slice must be a copy")
}

func TestPartitionEmpty(t *testing.T) {
	part := Partition(nil)
	assert.Equal(t, 0, part.Count)
	assert.Empty(t, part.Queues)
	assert.Equal(t, 0, part.Excluded)
}

func TestPartitionKeepsOrderAndCreatesGaps(t *testing.T) {
	store := NewProcessStore(specsOf(
		[4]int{1, 0, 0, 2},
		[4]int{2, 0, 0, 0},
		[4]int{3, 0, 0, 2},
		[4]int{4, 0, 0, 0},
	)...)
	part := Partition(store.Processes())

	require.Equal(t, 3, part.Count)
	require.Len(t, part.Queues, 3)
	assert.Equal(t, []int{2, 4}, idsOf(part.Queues[0].Processes))
	assert.Empty(t, part.Queues[1].Processes, "queue 1 has no members")
	assert.Equal(t, []int{1, 3}, idsOf(part.Queues[2].Processes))
	for i, q := range part.Queues {
		assert.Equal(t, i, q.ID)
	}
}

func TestPartitionExcludesNegativeQueueIDs(t *testing.T) {
	store := NewProcessStore(specsOf(
		[4]int{1, 0, 0, -1},
		[4]int{2, 0, 0, 1},
		[4]int{3, 0, 0, -5},
	)...)
	part := Partition(store.Processes())

	assert.Equal(t, 2, part.Count)
	assert.Equal(t, 2, part.Excluded)
	assert.Equal(t, store.Len(), part.Total(), "every record is either queued or excluded")
	assert.Equal(t, []int{2}, idsOf(part.Queues[1].Processes))
}

func TestPartitionAllNegative(t *testing.T) {
	store := NewProcessStore(specsOf([4]int{1, 0, 0, -1}, [4]int{1, 0, 0, -2})...)
	part := Partition(store.Processes())

	assert.Equal(t, 0, part.Count)
	assert.Equal(t, 2, part.Excluded)
	assert.Equal(t, 2, part.Total())
}

func idsOf(procs []domain.Process) []int {
	ids := make([]int, len(procs))
	for i, p := range procs {
		ids[i] = p.ID
	}
	return ids
}
