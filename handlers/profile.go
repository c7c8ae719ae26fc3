// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/models"
	"github.com/danielhkuo/reviewhub/session"
)

type ProfileHandler struct {
	api  *backend.Client
	sess *session.Store
}

func NewProfileHandler(api *backend.Client, sess *session.Store) *ProfileHandler {
	return &ProfileHandler{api: api, sess: sess}
}

// CreateProfilePage handles GET /create-profile
func (h *ProfileHandler) CreateProfilePage(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "create_profile.html", h.sess.Snapshot(), nil)
}

// CreateProfile handles POST /create-profile. A nickname collision is a
// distinct outcome, not a generic failure.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	req := models.ProfileRequest{
		Bio:                r.FormValue("bio"),
		Nickname:           r.FormValue("nickname"),
		ProfilePicturePath: r.FormValue("picture"),
	}
	if req.Nickname == "" {
		render(w, http.StatusBadRequest, "create_profile.html", h.sess.Snapshot(), map[string]any{
			"Error": "A nickname is required.",
			"Bio":   req.Bio,
		})
		return
	}

	if err := h.api.CreateProfile(r.Context(), req); err != nil {
		if errors.Is(err, backend.ErrConflict) {
			render(w, http.StatusConflict, "create_profile.html", h.sess.Snapshot(), map[string]any{
				"Error":    "That nickname is already taken. Pick another one.",
				"Bio":      req.Bio,
				"Nickname": req.Nickname,
			})
			return
		}
		failBackend(w, r, h.sess, err)
		return
	}

	h.sess.SetProfileExists(true)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ProfilePage handles GET /profile
func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, http.StatusOK, "")
}

// UpdateProfile handles POST /profile. Empty fields are omitted from the
// request, so the save is a partial update.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	req := models.ProfileRequest{
		Bio:                r.FormValue("bio"),
		Nickname:           r.FormValue("nickname"),
		ProfilePicturePath: r.FormValue("picture"),
	}
	if err := h.api.UpdateProfile(r.Context(), req); err != nil {
		if errors.Is(err, backend.ErrConflict) {
			h.renderProfile(w, r, http.StatusConflict, "That nickname is already taken. Pick another one.")
			return
		}
		failBackend(w, r, h.sess, err)
		return
	}

	h.renderProfile(w, r, http.StatusOK, "Profile updated.")
}

// renderProfile loads identity and the caller's reviews concurrently and
// renders the profile page. The batch settles all-or-nothing; a failure
// of either fetch fails the whole view.
func (h *ProfileHandler) renderProfile(w http.ResponseWriter, r *http.Request, status int, message string) {
	var (
		user    models.User
		reviews []models.Review
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		user, err = h.api.Me(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.api.MyReviews(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		failBackend(w, r, h.sess, err)
		return
	}

	render(w, status, "profile.html", h.sess.Snapshot(), map[string]any{
		"User":    user,
		"Reviews": reviews,
		"Message": message,
	})
}
