// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Logging

WithLogging logs method, path, status, request ID and duration of every
request via slog:

	r.Use(middleware.WithLogging)

# Sessions

LoadSession reads the session cookie and attaches the session to the request
context. Handlers read it back with:

	sess, ok := middleware.SessionFromContext(r.Context())
	id := middleware.IdentityFromContext(r.Context())

RequireLogin and RequireAdmin redirect to the gate page instead of
returning an error status, so a browser always lands on a usable page.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusForbidden, "admin only")

# Client IP

GetClientIP checks X-Forwarded-For, X-Real-IP, then RemoteAddr.
*/
package middleware
