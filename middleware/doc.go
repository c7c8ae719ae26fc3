// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware for the page routes.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /games", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Route Guarding

WithGuard runs the route guard before the view:

	mux.HandleFunc("GET /profile", middleware.WithLogging(
		middleware.WithGuard(sess, profileHandler.ProfilePage)))

The guard is re-evaluated on every navigation against a fresh session
snapshot. On a redirect decision the wrapped view never runs, which is
what keeps admin data loads from firing for non-admins.
*/
package middleware
