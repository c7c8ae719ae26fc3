// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/models"
	"github.com/danielhkuo/reviewhub/session"
)

type GameHandler struct {
	api  *backend.Client
	sess *session.Store
}

func NewGameHandler(api *backend.Client, sess *session.Store) *GameHandler {
	return &GameHandler{api: api, sess: sess}
}

// List handles GET /games. The empty collection renders its own state,
// distinct from the error page a failed fetch gets.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.api.Games(r.Context())
	if err != nil {
		failBackend(w, r, h.sess, err)
		return
	}
	render(w, http.StatusOK, "games.html", h.sess.Snapshot(), map[string]any{
		"Games": games,
	})
}

// Detail handles GET /games/{id}
func (h *GameHandler) Detail(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseGameID(w, r, h.sess)
	if !ok {
		return
	}
	h.renderDetail(w, r, gameID, http.StatusOK, "")
}

// SubmitReview handles POST /games/{id}/reviews. The create-or-update
// choice comes from the fact derived when the page mounted, carried in
// the reviewId field; a duplicate create is surfaced as its own
// message, not the generic failure.
func (h *GameHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseGameID(w, r, h.sess)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Malformed form submission.")
		return
	}

	content := r.FormValue("content")
	score, scoreErr := strconv.Atoi(r.FormValue("score"))
	switch {
	case content == "":
		h.renderDetail(w, r, gameID, http.StatusBadRequest, "A review needs some content.")
		return
	case scoreErr != nil || score < models.ScoreMin || score > models.ScoreMax:
		h.renderDetail(w, r, gameID, http.StatusBadRequest, "Score must be between 0 and 100.")
		return
	}

	req := models.ReviewRequest{GameID: gameID, Content: content, Score: score}
	var err error
	if r.FormValue("reviewId") != "" {
		err = h.api.UpdateReview(r.Context(), req)
	} else {
		err = h.api.CreateReview(r.Context(), req)
	}
	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			h.renderDetail(w, r, gameID, http.StatusConflict, "You have already reviewed this game.")
			return
		}
		failBackend(w, r, h.sess, err)
		return
	}

	http.Redirect(w, r, "/games/"+strconv.FormatInt(gameID, 10), http.StatusSeeOther)
}

// DeleteReview handles POST /games/{id}/reviews/delete
func (h *GameHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseGameID(w, r, h.sess)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseInt(r.FormValue("reviewId"), 10, 64)
	if err != nil {
		renderError(w, http.StatusBadRequest, h.sess.Snapshot(), "Invalid review id.")
		return
	}

	if err := h.api.DeleteReview(r.Context(), reviewID); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			h.renderDetail(w, r, gameID, http.StatusNotFound, "That review no longer exists.")
			return
		}
		failBackend(w, r, h.sess, err)
		return
	}

	http.Redirect(w, r, "/games/"+strconv.FormatInt(gameID, 10), http.StatusSeeOther)
}

// renderDetail loads the game, its reviews and the caller's identity
// concurrently, derives whether the caller already owns a review here,
// and renders the page with the review form pre-populated when so. The
// batch settles all-or-nothing; no half-loaded page is rendered.
func (h *GameHandler) renderDetail(w http.ResponseWriter, r *http.Request, gameID int64, status int, message string) {
	var (
		me      models.User
		game    models.Game
		reviews []models.Review
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		me, err = h.api.Me(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		game, err = h.api.Game(ctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.api.GameReviews(ctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			renderError(w, http.StatusNotFound, h.sess.Snapshot(), "Game not found.")
			return
		}
		failBackend(w, r, h.sess, err)
		return
	}

	// At most one review per (user, game); the backend enforces it.
	var mine *models.Review
	for i := range reviews {
		if reviews[i].UserID == me.ID {
			mine = &reviews[i]
			break
		}
	}

	content := ""
	score := 50
	if mine != nil {
		content = mine.Content
		score = mine.Score
	}

	render(w, status, "game_detail.html", h.sess.Snapshot(), map[string]any{
		"Game":    game,
		"Reviews": reviews,
		"Mine":    mine,
		"Content": content,
		"Score":   score,
		"Error":   message,
	})
}

func parseGameID(w http.ResponseWriter, r *http.Request, sess *session.Store) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, http.StatusBadRequest, sess.Snapshot(), "Invalid game id.")
		return 0, false
	}
	return id, true
}
