// Package metrics provides observability for the ownership resolver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks resolution outcomes and latency.
type Metrics struct {
	Resolutions     *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
	IndexingLag     prometheus.Counter
}

// New creates and registers all resolver metrics.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ensowner_resolutions_total",
			Help: "Total ownership resolutions by outcome",
		}, []string{"outcome"}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ensowner_resolve_duration_seconds",
			Help:    "Duration of ResolveOwner calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		IndexingLag: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ensowner_indexing_lag_detected_total",
			Help: "Cross-checks where the index disagreed with chain truth in a lag-explainable way",
		}),
	}
}

// ObserveResolution records one finished resolution.
func (m *Metrics) ObserveResolution(outcome string, start time.Time) {
	m.Resolutions.WithLabelValues(outcome).Inc()
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}

// IncrementIndexingLag records a detected index lag.
func (m *Metrics) IncrementIndexingLag() {
	m.IndexingLag.Inc()
}
