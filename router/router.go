// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/repwatch/alignment"
	"github.com/danielhkuo/repwatch/cliparse"
	"github.com/danielhkuo/repwatch/handlers"
	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/middleware"
	"github.com/danielhkuo/repwatch/preferences"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
)

// Deps are the services the routes are built from.
// Metrics and Registry may be nil, which disables instrumentation and
// the /metrics endpoint.
type Deps struct {
	Store       store.Store
	Engine      *alignment.Engine
	Preferences *preferences.Service
	Ingester    *ingest.Ingester
	Classifier  *issues.Classifier
	Recent      recent.Tracker
	Clock       clockwork.Clock
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	var httpMetrics *metrics.HTTPMetrics
	if deps.Metrics != nil {
		httpMetrics = deps.Metrics.HTTP
	}
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(httpMetrics, pattern, h)))
	}

	// Initialize handlers
	repHandler := handlers.NewRepresentativeHandler(deps.Store, deps.Store, deps.Classifier, deps.Recent, deps.Clock)
	prefHandler := handlers.NewPreferenceHandler(deps.Preferences)
	alignHandler := handlers.NewAlignmentHandler(deps.Engine)
	recentHandler := handlers.NewRecentHandler(deps.Store, deps.Recent)
	ingestHandler := handlers.NewIngestHandler(deps.Ingester)

	limiter := middleware.NewRateLimiter(cfg.PreferenceRateLimit, cfg.PreferenceBurst, deps.Clock)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.Registry != nil {
		mux.Handle("GET /metrics", metrics.Handler(deps.Registry))
	}

	// Representatives and voting records
	handle("GET /representatives", repHandler.List)
	handle("GET /representatives/{id}", repHandler.Get)
	handle("GET /representatives/{id}/votes", repHandler.ListVotes)
	handle("GET /categories", repHandler.Categories)

	// User preferences
	handle("GET /users/{user}/preferences", prefHandler.List)
	handle("POST /users/{user}/preferences", limiter.Limit(prefHandler.Set))
	handle("DELETE /users/{user}/preferences/{vote}", prefHandler.Delete)

	// Alignment and history
	handle("GET /users/{user}/alignment/{rep}", alignHandler.Get)
	handle("GET /users/{user}/recent", recentHandler.List)

	// Data loading
	handle("POST /ingest/members", ingestHandler.Members)
	handle("POST /ingest/votes", ingestHandler.Votes)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("repwatch API v1"))
	})

	return mux
}
