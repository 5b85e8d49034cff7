// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the repwatch API.

# Route Registration

NewRouter creates a configured http.ServeMux from the application's services:

	mux := router.NewRouter(router.Deps{Store: st, Engine: engine, ...}, cfg)

Every API route is wrapped in middleware.WithLogging and, when Deps.Metrics
is set, middleware.WithMetrics labelled with the route pattern.

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics (only when Deps.Registry is set)

Representatives:

	GET /representatives               - Filter by state, chamber, party, name
	GET /representatives/{id}          - Profile (records recent view with X-User-ID)
	GET /representatives/{id}/votes    - Voting record, ?category=&timeframe=
	GET /categories                    - Issue categories

Preferences (POST is rate limited per client IP):

	GET    /users/{user}/preferences
	POST   /users/{user}/preferences
	DELETE /users/{user}/preferences/{vote}

Alignment:

	GET /users/{user}/alignment/{rep}
	GET /users/{user}/recent

Ingest:

	POST /ingest/members
	POST /ingest/votes
*/
package router
