package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus instruments. A fresh registry per
// server keeps tests isolated from the default global registry.
type metrics struct {
	registry *prometheus.Registry

	allocationRuns     *prometheus.CounterVec
	allocationDuration prometheus.Histogram
	exports            *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		allocationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workplan_allocation_runs_total",
			Help: "Number of allocation runs, partitioned by outcome.",
		}, []string{"outcome"}),
		allocationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "workplan_allocation_duration_seconds",
			Help:    "Wall-clock duration of allocation runs.",
			Buckets: prometheus.DefBuckets,
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workplan_exports_total",
			Help: "Number of workplan exports, partitioned by format.",
		}, []string{"format"}),
	}
	m.registry.MustRegister(m.allocationRuns, m.allocationDuration, m.exports)
	return m
}
