package service

import (
	"context"
	"strconv"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/tracing"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/pkg/errors"
)

// Simulate runs every policy over specs and persists the run.
// Identical inputs seen within the cache ttl return the stored run.
func (svc *Service) Simulate(ctx context.Context, specs []domain.ProcessSpec) (run *domain.SimulationRun, err error) {
	if len(specs) == 0 {
		return nil, domain.ErrEmptyInput
	}
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, errors.Wrapf(err, "process %d", i)
		}
		if err := spec.ValidateQueue(svc.maxQueueID); err != nil {
			return nil, errors.Wrapf(err, "process %d", i)
		}
	}

	fingerprint := util.Fingerprint(specs)
	if cached, ok := svc.cachedRun(fingerprint); ok {
		svc.metricCollector.ObserveCacheHit()
		logger.Logger(ctx).Debug().Msgf("simulation cache hit, fingerprint %s run %s", fingerprint, cached.ID)
		return cached, nil
	}

	ctx, span := tracing.StartSpan(ctx, "service.Simulate", map[string]string{
		"simulation.fingerprint": fingerprint,
		"simulation.processes":   strconv.Itoa(len(specs)),
	})
	defer func() {
		tracing.EndSpan(span, err)
	}()

	sim := scheduler.Simulate(specs)
	if sim.ExcludedCount > 0 {
		logger.Logger(ctx).Debug().Msgf("%d processes excluded by negative queue id", sim.ExcludedCount)
	}
	svc.metricCollector.ObserveSimulation(sim)

	run = &domain.SimulationRun{
		Fingerprint: fingerprint,
		Simulation:  sim,
	}
	if err = svc.Repo.CreateRun(ctx, run); err != nil {
		return nil, errors.Wrap(err, "persist simulation run")
	}
	logger.Logger(ctx).Info().Msgf("simulation %s stored: %d processes, %d queues, %d results", run.ID, len(sim.Processes), sim.QueueCount, len(sim.Results))

	if svc.runCache != nil {
		svc.runCache.Set(fingerprint, run, cacheExpiration(svc.cacheTTL)...)
	}
	return run, nil
}

func (svc *Service) GetRun(ctx context.Context, id string) (*domain.SimulationRun, error) {
	opt := &domain.QueryRunOptions{IDs: []string{id}, Limit: 1}
	if err := svc.Repo.QueryRuns(ctx, opt); err != nil {
		return nil, errors.Wrapf(err, "query simulation run %s", id)
	}
	if len(opt.Result) == 0 {
		return nil, errors.Wrapf(domain.ErrNotFound, "simulation run %s", id)
	}
	return opt.Result[0], nil
}

func (svc *Service) ListRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}
	return svc.Repo.QueryRuns(ctx, opt)
}

func (svc *Service) DeleteRun(ctx context.Context, id string) error {
	run, err := svc.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.Repo.DeleteRun(ctx, id); err != nil {
		return errors.Wrapf(err, "delete simulation run %s", id)
	}
	if svc.runCache != nil {
		if cached, ok := svc.runCache.Get(run.Fingerprint); ok && cached.ID == id {
			svc.runCache.Delete(run.Fingerprint)
		}
	}
	logger.Logger(ctx).Info().Msgf("simulation %s deleted", id)
	return nil
}

func (svc *Service) cachedRun(fingerprint string) (*domain.SimulationRun, bool) {
	if svc.runCache == nil {
		return nil, false
	}
	return svc.runCache.Get(fingerprint)
}
