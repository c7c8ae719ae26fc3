// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/reviewhub/models"
)

// Token exchanges credentials for an access token. The backend expects
// form encoding here, not JSON.
func (c *Client) Token(ctx context.Context, username, password string) (models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp models.TokenResponse
	err := c.do(ctx, http.MethodPost, "/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp)
	return resp, err
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := models.RegisterRequest{Username: username, Password: password}
	return c.sendJSON(ctx, http.MethodPost, "/users", req, nil)
}

// Me returns the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.getJSON(ctx, "/users/me", &u)
	return u, err
}

// IsAdmin reports whether the current credential has admin privileges.
func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	var resp models.AdminStatusResponse
	if err := c.getJSON(ctx, "/users/me/is-admin", &resp); err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}

// MyReviews returns the caller's reviews across all games.
func (c *Client) MyReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := c.getJSON(ctx, "/users/me/reviews", &reviews)
	return reviews, err
}

// CreateProfile creates the caller's profile. A nickname collision comes
// back as ErrConflict.
func (c *Client) CreateProfile(ctx context.Context, req models.ProfileRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/users/me/createProfile", req, nil)
}

// MyProfile returns the caller's profile, or ErrNotFound when none exists
// yet. Absence is a normal state, not a failure.
func (c *Client) MyProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.getJSON(ctx, "/profiles/me", &p)
	return p, err
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, req models.ProfileRequest) error {
	return c.sendJSON(ctx, http.MethodPut, "/profiles/me", req, nil)
}

// Games returns the full game collection.
func (c *Client) Games(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := c.getJSON(ctx, "/games", &games)
	return games, err
}

// Game returns one game with its genre and platform sets.
func (c *Client) Game(ctx context.Context, id int64) (models.Game, error) {
	var g models.Game
	err := c.getJSON(ctx, "/games/"+strconv.FormatInt(id, 10), &g)
	return g, err
}

// GameReviews returns all reviews for one game.
func (c *Client) GameReviews(ctx context.Context, id int64) ([]models.Review, error) {
	var reviews []models.Review
	err := c.getJSON(ctx, "/games/"+strconv.FormatInt(id, 10)+"/reviews", &reviews)
	return reviews, err
}

// CreateReview posts the caller's review for a game. A second review for
// the same game comes back as ErrConflict; the backend enforces the
// one-review-per-game invariant.
func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/users/me/reviews", req, nil)
}

// UpdateReview replaces the caller's existing review for a game.
func (c *Client) UpdateReview(ctx context.Context, req models.ReviewRequest) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/me/reviews", req, nil)
}

// DeleteReview removes one of the caller's reviews.
func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, "/users/me/reviews/"+strconv.FormatInt(reviewID, 10), "", nil, nil)
}

// Genres returns the genre catalog.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := c.getJSON(ctx, "/genres", &genres)
	return genres, err
}

// Platforms returns the platform catalog.
func (c *Client) Platforms(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	err := c.getJSON(ctx, "/platforms", &platforms)
	return platforms, err
}

// CreateGame submits the admin game-creation payload as multipart form
// data: scalar fields, repeated genreIds/platformIds, and the cover art
// file part.
func (c *Client) CreateGame(ctx context.Context, form models.CreateGameForm) error {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"name", form.Name},
		{"releaseYear", strconv.Itoa(form.ReleaseYear)},
		{"description", form.Description},
		{"publisher", form.Publisher},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("encode createGame field %s: %w", f.name, err)
		}
	}
	for _, id := range form.GenreIDs {
		if err := mw.WriteField("genreIds", strconv.FormatInt(id, 10)); err != nil {
			return fmt.Errorf("encode createGame genreIds: %w", err)
		}
	}
	for _, id := range form.PlatformIDs {
		if err := mw.WriteField("platformIds", strconv.FormatInt(id, 10)); err != nil {
			return fmt.Errorf("encode createGame platformIds: %w", err)
		}
	}

	part, err := mw.CreateFormFile("coverArt", form.CoverArtFilename)
	if err != nil {
		return fmt.Errorf("encode createGame cover art: %w", err)
	}
	if _, err := io.Copy(part, form.CoverArt); err != nil {
		return fmt.Errorf("read cover art: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize createGame payload: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/admin/createGame", mw.FormDataContentType(), body, nil)
}
