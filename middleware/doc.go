// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Rate Limiting

Mutating routes share one token bucket:

	limiter := rate.NewLimiter(rate.Limit(cfg.MutationRate), cfg.MutationBurst)
	mux.HandleFunc("POST /entries", middleware.RateLimit(limiter, h.AddEntry))

Requests over the limit get 429 with Retry-After: 1.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Built on github.com/rs/cors. The request origin is echoed back with
credentials allowed so the session cookie survives cross-origin calls.

# Sessions

SessionID returns the value of the who_pays_session cookie, issuing a fresh
one when the browser has none. Preferences are keyed by it.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.AddEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
