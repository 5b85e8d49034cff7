package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingested record kinds.
const (
	KindMember   = "member"
	KindVote     = "vote"
	KindPosition = "position"
)

// IngestMetrics holds Prometheus metrics for data ingestion.
type IngestMetrics struct {
	RecordsTotal  *prometheus.CounterVec
	RejectedTotal *prometheus.CounterVec
}

// NewIngestMetrics creates and registers ingestion metrics on the given registry.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	m := &IngestMetrics{
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_total",
			Help:      "Total number of ingested records, by kind.",
		}, []string{"kind"}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rejected_total",
			Help:      "Total number of rejected records, by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.RecordsTotal, m.RejectedTotal)
	return m
}

// Ingested adds n accepted records of kind.
func (m *IngestMetrics) Ingested(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.RecordsTotal.WithLabelValues(kind).Add(float64(n))
}

// Rejected records one rejected record of kind.
func (m *IngestMetrics) Rejected(kind string) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(kind).Inc()
}
