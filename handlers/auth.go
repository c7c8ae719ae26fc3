// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/session"
)

type AuthHandler struct {
	api  *backend.Client
	sess *session.Store
}

func NewAuthHandler(api *backend.Client, sess *session.Store) *AuthHandler {
	return &AuthHandler{api: api, sess: sess}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sess.Snapshot().Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, "login.html", h.sess.Snapshot(), nil)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		render(w, http.StatusBadRequest, "login.html", h.sess.Snapshot(), map[string]any{
			"Error":    "Username and password are required.",
			"Username": username,
		})
		return
	}

	if err := h.sess.Login(r.Context(), username, password); err != nil {
		if errors.Is(err, session.ErrLoginInProgress) {
			render(w, http.StatusConflict, "login.html", h.sess.Snapshot(), map[string]any{
				"Error":    "A login is already in progress.",
				"Username": username,
			})
			return
		}
		slog.Info("login rejected", "username", username, "error", err)
		render(w, http.StatusUnauthorized, "login.html", h.sess.Snapshot(), map[string]any{
			"Error":    "Login failed. Please check your credentials.",
			"Username": username,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sess.Logout()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "register.html", h.sess.Snapshot(), nil)
}

// Register handles POST /register. Creating an account does not log the
// user in; success lands on the login page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	// Mirrors the backend's account constraints for immediate feedback;
	// the backend re-validates.
	var msg string
	switch {
	case username == "" || password == "":
		msg = "Username and password are required."
	case len(username) < 5 || len(username) > 15:
		msg = "Username must be 5-15 characters."
	case len(password) < 8 || len(password) > 15:
		msg = "Password must be 8-15 characters."
	case password != confirm:
		msg = "Passwords do not match."
	}
	if msg != "" {
		render(w, http.StatusBadRequest, "register.html", h.sess.Snapshot(), map[string]any{
			"Error":    msg,
			"Username": username,
		})
		return
	}

	if err := h.api.Register(r.Context(), username, password); err != nil {
		if errors.Is(err, backend.ErrConflict) {
			render(w, http.StatusConflict, "register.html", h.sess.Snapshot(), map[string]any{
				"Error":    "That username is already registered.",
				"Username": username,
			})
			return
		}
		slog.Error("registration failed", "username", username, "error", err)
		render(w, http.StatusBadGateway, "register.html", h.sess.Snapshot(), map[string]any{
			"Error":    genericFailure,
			"Username": username,
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
