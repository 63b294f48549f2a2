package repository

import (
	"context"
	"testing"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositoryDefaultsToMemory(t *testing.T) {
	r, err := NewRepository(Params{MongoConfig: config.MongoDBConfig{Enable: false}})
	require.NoError(t, err)
	_, ok := r.(*memoryRepo)
	assert.True(t, ok, "memory repository expected when mongodb is disabled")
}

func TestMemoryRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	first := &domain.SimulationRun{Fingerprint: "fp-a", CreatedTime: 100}
	second := &domain.SimulationRun{Fingerprint: "fp-b", CreatedTime: 200}
	third := &domain.SimulationRun{Fingerprint: "fp-a", CreatedTime: 300}
	for _, run := range []*domain.SimulationRun{first, second, third} {
		require.NoError(t, r.CreateRun(ctx, run))
		assert.NotEmpty(t, run.ID, "id should be assigned")
	}
	assert.Error(t, r.CreateRun(ctx, &domain.SimulationRun{ID: first.ID}), "duplicate id")

	opt := &domain.QueryRunOptions{}
	require.NoError(t, r.QueryRuns(ctx, opt))
	require.Len(t, opt.Result, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, runIDs(opt.Result), "newest first")

	opt = &domain.QueryRunOptions{Fingerprints: []string{"fp-a"}, Limit: 1}
	require.NoError(t, r.QueryRuns(ctx, opt))
	assert.Equal(t, []string{third.ID}, runIDs(opt.Result))

	opt = &domain.QueryRunOptions{IDs: []string{second.ID}}
	require.NoError(t, r.QueryRuns(ctx, opt))
	assert.Equal(t, []string{second.ID}, runIDs(opt.Result))

	opt = &domain.QueryRunOptions{IDs: []string{first.ID, "missing", first.ID, third.ID}, Fingerprints: []string{"fp-a"}}
	require.NoError(t, r.QueryRuns(ctx, opt))
	assert.Equal(t, []string{third.ID, first.ID}, runIDs(opt.Result), "unknown and repeated ids are ignored")

	opt = &domain.QueryRunOptions{IDs: []string{second.ID}}
	require.NoError(t, r.QueryRuns(ctx, opt))
	opt.Result[0].Fingerprint = "mutated"
	again := &domain.QueryRunOptions{IDs: []string{second.ID}}
	require.NoError(t, r.QueryRuns(ctx, again))
	assert.Equal(t, "fp-b", again.Result[0].Fingerprint, "results are copies")

	require.NoError(t, r.DeleteRun(ctx, second.ID))
	assert.ErrorIs(t, r.DeleteRun(ctx, second.ID), domain.ErrNotFound)
	assert.ErrorIs(t, r.QueryRuns(ctx, nil), domain.ErrNilQueryInput)
}

func runIDs(runs []*domain.SimulationRun) []string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
