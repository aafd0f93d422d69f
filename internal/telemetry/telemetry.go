package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the relay. Outcome labels:
// ok, error, invalid.
type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   prometheus.Histogram
	UpstreamFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mountx_searches_total",
			Help: "Search requests handled, by outcome.",
		}, []string{"outcome"}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mountx_search_duration_seconds",
			Help:    "Wall-clock duration of search requests.",
			Buckets: prometheus.DefBuckets,
		}),
		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mountx_upstream_failures_total",
			Help: "Upstream provider failures, by provider.",
		}, []string{"provider"}),
	}
}
