package service

import (
	"fmt"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	Repo        domain.Repository
	CacheConfig config.CacheConfig
	SimConfig   config.SimulationConfig `optional:"true"`
	Registerer  prometheus.Registerer   `optional:"true"`
}

func NewService(params Params) (domain.Service, error) {
	svc := &Service{
		Repo:            params.Repo,
		metricCollector: NewMetricCollector(util.GetInstanceID()),
		maxQueueID:      params.SimConfig.MaxQueueID,
	}
	if params.CacheConfig.Enable {
		svc.runCache = cache.New[string, *domain.SimulationRun]()
		svc.cacheTTL = time.Duration(params.CacheConfig.TTLSeconds) * time.Second
	}

	registerer := params.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	err := registerer.Register(svc.metricCollector)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric collector: %v", err)
	}
	return svc, nil
}

type Service struct {
	Repo            domain.Repository
	metricCollector *MetricCollector
	// runCache is keyed by input fingerprint, nil when caching is disabled
	runCache *cache.Cache[string, *domain.SimulationRun]
	cacheTTL time.Duration
	// maxQueueID caps queue ids, zero means domain.DefaultMaxQueueID
	maxQueueID int
}

func cacheExpiration(ttl time.Duration) []cache.ItemOption {
	if ttl <= 0 {
		return nil
	}
	return []cache.ItemOption{cache.WithExpiration(ttl)}
}
