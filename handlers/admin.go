// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/models"
	"github.com/danielhkuo/reviewhub/session"
)

// maxCoverArtBytes caps the in-memory portion of the multipart parse.
const maxCoverArtBytes = 16 << 20

type AdminHandler struct {
	api  *backend.Client
	sess *session.Store
}

func NewAdminHandler(api *backend.Client, sess *session.Store) *AdminHandler {
	return &AdminHandler{api: api, sess: sess}
}

// Validation outcomes carried across the POST→GET redirect.
var adminFormErrors = map[string]string{
	"fields":    "Every field is required, including a valid release year.",
	"selection": "Select at least one genre and one platform.",
	"coverart":  "A cover art image is required.",
}

// CreateGamePage handles GET /admin/create-game. Genre and platform
// catalogs load concurrently, all-or-nothing.
func (h *AdminHandler) CreateGamePage(w http.ResponseWriter, r *http.Request) {
	var (
		genres    []models.Genre
		platforms []models.Platform
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		genres, err = h.api.Genres(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		platforms, err = h.api.Platforms(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		failBackend(w, r, h.sess, err)
		return
	}

	render(w, http.StatusOK, "admin_create_game.html", h.sess.Snapshot(), map[string]any{
		"Genres":    genres,
		"Platforms": platforms,
		"Year":      time.Now().Year(),
		"Error":     adminFormErrors[r.URL.Query().Get("error")],
	})
}

// CreateGame handles POST /admin/create-game. Validation runs before
// anything leaves the process: a submission without at least one genre,
// one platform and a cover art file is bounced back to the form and no
// backend call is issued. The backend remains the authority; this is a
// usability contract only.
func (h *AdminHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCoverArtBytes); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	form := models.CreateGameForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Publisher:   r.FormValue("publisher"),
		GenreIDs:    parseIDList(r.Form["genreIds"]),
		PlatformIDs: parseIDList(r.Form["platformIds"]),
	}
	year, yearErr := strconv.Atoi(r.FormValue("releaseYear"))
	form.ReleaseYear = year

	bounce := func(code string) {
		http.Redirect(w, r, "/admin/create-game?error="+code, http.StatusSeeOther)
	}

	if form.Name == "" || form.Description == "" || form.Publisher == "" || yearErr != nil {
		bounce("fields")
		return
	}
	if len(form.GenreIDs) == 0 || len(form.PlatformIDs) == 0 {
		bounce("selection")
		return
	}

	file, header, err := r.FormFile("coverArt")
	if err != nil {
		bounce("coverart")
		return
	}
	defer file.Close()
	form.CoverArt = file
	form.CoverArtFilename = header.Filename

	if err := h.api.CreateGame(r.Context(), form); err != nil {
		failBackend(w, r, h.sess, err)
		return
	}

	http.Redirect(w, r, "/games", http.StatusSeeOther)
}

func parseIDList(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
