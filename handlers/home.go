// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/session"
)

type HomeHandler struct {
	api  *backend.Client
	sess *session.Store
}

func NewHomeHandler(api *backend.Client, sess *session.Store) *HomeHandler {
	return &HomeHandler{api: api, sess: sess}
}

// Home handles GET /. It resolves profile existence when the guard let
// the navigation through with the fact unknown: a missing profile is a
// normal state that routes to profile creation, not an error.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	profile, err := h.api.MyProfile(r.Context())
	if errors.Is(err, backend.ErrNotFound) {
		h.sess.SetProfileExists(false)
		http.Redirect(w, r, "/create-profile", http.StatusSeeOther)
		return
	}
	if err != nil {
		failBackend(w, r, h.sess, err)
		return
	}
	h.sess.SetProfileExists(true)

	render(w, http.StatusOK, "home.html", h.sess.Snapshot(), map[string]any{
		"Profile": profile,
	})
}
