// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines the Prometheus collectors exported on /metrics.

Collectors are registered on an injected registry rather than the global
default, so tests can build a fresh set with prometheus.NewRegistry():

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	mux.Handle("GET /metrics", metrics.Handler(reg))

# Collectors

	repwatch_alignment_computations_total{result}
	repwatch_alignment_compute_duration_seconds
	repwatch_alignment_scored_votes
	repwatch_preferences_upserts_total{result}
	repwatch_preferences_deletes_total
	repwatch_ingest_records_total{kind}
	repwatch_ingest_rejected_total{kind}
	repwatch_http_request_duration_seconds{method,route,status_code}
	repwatch_http_requests_total{method,route,status_code}
	repwatch_http_in_flight_requests

Every recording method accepts a nil receiver, so components built without
metrics need no special casing.
*/
package metrics
