package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry

	analyses        *prometheus.CounterVec
	rejects         *prometheus.CounterVec
	analysisSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deeptrust_analyses_total",
			Help: "Completed analyses grouped by verdict and media kind.",
		}, []string{"verdict", "kind"}),
		rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deeptrust_upload_rejects_total",
			Help: "Rejected uploads grouped by reason.",
		}, []string{"reason"}),
		analysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deeptrust_analysis_duration_seconds",
			Help:    "Wall time spent per analysis.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	m.registry.MustRegister(m.analyses, m.rejects, m.analysisSeconds)
	return m
}
