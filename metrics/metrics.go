package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "repwatch"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Metrics bundles every collector the service records to.
type Metrics struct {
	Alignment   *AlignmentMetrics
	Preferences *PreferenceMetrics
	Ingest      *IngestMetrics
	HTTP        *HTTPMetrics
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Alignment:   NewAlignmentMetrics(reg),
		Preferences: NewPreferenceMetrics(reg),
		Ingest:      NewIngestMetrics(reg),
		HTTP:        NewHTTPMetrics(reg),
	}
}
