// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/reviewhub/guard"
	"github.com/danielhkuo/reviewhub/session"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		next(w, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// WithGuard evaluates the route guard before the view runs. A denied
// navigation is redirected and the view handler is never invoked, so
// gated views issue none of their data-loading calls.
func WithGuard(sess *session.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := guard.Decide(r.URL.Path, sess.Snapshot())
		if !d.Allow {
			slog.Info("navigation redirected",
				"path", r.URL.Path,
				"to", d.RedirectTo,
			)
			http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
