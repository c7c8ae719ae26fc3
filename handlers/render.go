// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"login.html",
	"register.html",
	"home.html",
	"create_profile.html",
	"profile.html",
	"games.html",
	"game_detail.html",
	"admin_create_game.html",
	"error.html",
}

var templates = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		m[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+page))
	}
	return m
}()

// render executes a page inside the shared layout. Every page receives
// the session snapshot under "Session" for the nav bar.
func render(w http.ResponseWriter, status int, page string, snap session.Snapshot, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Session"] = snap

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates[page].ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execution failed", "page", page, "error", err)
	}
}

// renderError shows the generic error page.
func renderError(w http.ResponseWriter, status int, snap session.Snapshot, message string) {
	render(w, status, "error.html", snap, map[string]any{
		"StatusCode": status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	})
}

// genericFailure is the retryable message for failures with no specific
// handling; the user retries, the client never does.
const genericFailure = "Something went wrong talking to the backend. Please try again."

// failBackend applies the shared policy for gateway failures: a
// credential rejection clears the session and lands on login, an
// authorization rejection leaves the restricted view, anything else
// renders the retryable error page.
func failBackend(w http.ResponseWriter, r *http.Request, sess *session.Store, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthenticated):
		sess.Logout()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, backend.ErrForbidden):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, backend.ErrNotFound):
		renderError(w, http.StatusNotFound, sess.Snapshot(), "Not found.")
	default:
		slog.Error("backend call failed", "path", r.URL.Path, "error", err)
		renderError(w, http.StatusBadGateway, sess.Snapshot(), genericFailure)
	}
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(sess *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(w, http.StatusNotFound, sess.Snapshot(),
			"The page you are looking for does not exist.")
	}
}
