package metrics

import "github.com/prometheus/client_golang/prometheus"

// PreferenceMetrics holds Prometheus metrics for preference writes.
type PreferenceMetrics struct {
	UpsertsTotal *prometheus.CounterVec
	DeletesTotal prometheus.Counter
}

// NewPreferenceMetrics creates and registers preference metrics on the given registry.
func NewPreferenceMetrics(reg prometheus.Registerer) *PreferenceMetrics {
	m := &PreferenceMetrics{
		UpsertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "preferences",
			Name:      "upserts_total",
			Help:      "Total number of preference upserts, by result.",
		}, []string{"result"}),
		DeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "preferences",
			Name:      "deletes_total",
			Help:      "Total number of deleted preferences.",
		}),
	}

	reg.MustRegister(m.UpsertsTotal, m.DeletesTotal)
	return m
}

// Upserted records one upsert attempt. result is "ok", "invalid" or "error".
func (m *PreferenceMetrics) Upserted(result string) {
	if m == nil {
		return
	}
	m.UpsertsTotal.WithLabelValues(result).Inc()
}

// Deleted records one deleted preference.
func (m *PreferenceMetrics) Deleted() {
	if m == nil {
		return
	}
	m.DeletesTotal.Inc()
}
