// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request id comes from an incoming X-Request-ID
header or a new UUID, is echoed on the response and is available to
handlers through RequestID(r.Context()).

# Metrics

WithMetrics records count, latency and in-flight requests labelled with the
route pattern:

	middleware.WithMetrics(m.HTTP, "GET /representatives/{id}", handler)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type,
X-User-ID, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Map an apperrors error to its status and body:

	middleware.WriteError(w, r, err)

Parse JSON request bodies:

	var req models.SetPreferenceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

# Rate Limiting

RateLimiter keeps a token bucket per client IP and answers 429 with a
Retry-After header once it is empty:

	limiter := middleware.NewRateLimiter(5, 10, clockwork.NewRealClock())
	mux.HandleFunc("POST /users/{user}/preferences", limiter.Limit(handler))

Idle buckets are dropped after ten minutes.
*/
package middleware
