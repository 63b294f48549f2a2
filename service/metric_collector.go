package service

import (
	"github.com/Gthulhu/schedsim/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "schedsim"

// MetricCollector exposes simulation counters for one service instance
type MetricCollector struct {
	simulations    prometheus.Counter
	processes      prometheus.Counter
	cacheHits      prometheus.Counter
	results        *prometheus.CounterVec
	averageWaiting *prometheus.HistogramVec
}

func NewMetricCollector(instanceID string) *MetricCollector {
	constLabels := prometheus.Labels{"instance_id": instanceID}
	return &MetricCollector{
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "simulations_total",
			Help:        "Number of simulations computed.",
			ConstLabels: constLabels,
		}),
		processes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "processes_total",
			Help:        "Number of processes submitted to computed simulations.",
			ConstLabels: constLabels,
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "cache_hits_total",
			Help:        "Number of simulations answered from the run cache.",
			ConstLabels: constLabels,
		}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "results_total",
			Help:        "Number of queue results produced per algorithm.",
			ConstLabels: constLabels,
		}, []string{"algorithm"}),
		averageWaiting: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   metricNamespace,
			Name:        "average_waiting",
			Help:        "Average waiting time of a queue result per algorithm.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"algorithm"}),
	}
}

func (c *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	c.simulations.Describe(ch)
	c.processes.Describe(ch)
	c.cacheHits.Describe(ch)
	c.results.Describe(ch)
	c.averageWaiting.Describe(ch)
}

func (c *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	c.simulations.Collect(ch)
	c.processes.Collect(ch)
	c.cacheHits.Collect(ch)
	c.results.Collect(ch)
	c.averageWaiting.Collect(ch)
}

// ObserveSimulation records a freshly computed simulation
func (c *MetricCollector) ObserveSimulation(sim domain.Simulation) {
	c.simulations.Inc()
	c.processes.Add(float64(len(sim.Processes)))
	for _, r := range sim.Results {
		alg := r.Algorithm.String()
		c.results.WithLabelValues(alg).Inc()
		c.averageWaiting.WithLabelValues(alg).Observe(r.AverageWaiting)
	}
}

func (c *MetricCollector) ObserveCacheHit() {
	c.cacheHits.Inc()
}
