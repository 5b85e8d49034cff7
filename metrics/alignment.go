package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Alignment computation results.
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
)

// AlignmentMetrics holds Prometheus metrics for alignment computations.
type AlignmentMetrics struct {
	ComputationsTotal *prometheus.CounterVec
	ComputeDuration   prometheus.Histogram
	ScoredVotes       prometheus.Histogram
}

// NewAlignmentMetrics creates and registers alignment metrics on the given registry.
func NewAlignmentMetrics(reg prometheus.Registerer) *AlignmentMetrics {
	m := &AlignmentMetrics{
		ComputationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alignment",
			Name:      "computations_total",
			Help:      "Total number of alignment computations, by result.",
		}, []string{"result"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "alignment",
			Name:      "compute_duration_seconds",
			Help:      "Duration of alignment computations in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		ScoredVotes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "alignment",
			Name:      "scored_votes",
			Help:      "Number of votes scored per computation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}

	reg.MustRegister(m.ComputationsTotal, m.ComputeDuration, m.ScoredVotes)
	return m
}

// Observe records one computation. A nil receiver records nothing.
func (m *AlignmentMetrics) Observe(result string, scored int, d time.Duration) {
	if m == nil {
		return
	}
	m.ComputationsTotal.WithLabelValues(result).Inc()
	m.ComputeDuration.Observe(d.Seconds())
	if result != ResultError {
		m.ScoredVotes.Observe(float64(scored))
	}
}
