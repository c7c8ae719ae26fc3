// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/danielhkuo/reviewhub/models"
)

// Default credentials accepted by the fake backend.
const (
	TestUsername = "alice"
	TestPassword = "sw0rdfish"
	TestToken    = "test-access-token"
)

// CreatedGame records one multipart submission to the fake backend's
// game-creation endpoint.
type CreatedGame struct {
	Name             string
	ReleaseYear      string
	Description      string
	Publisher        string
	GenreIDs         []string
	PlatformIDs      []string
	CoverArtFilename string
	CoverArtSize     int
}

// FakeBackend emulates the review-hub REST backend. Behavior knobs and
// seeded data are plain fields; set them before issuing requests.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []string

	// Behavior knobs
	RejectToken  bool // 401 every authenticated call
	FailIdentity bool // 500 on /users/me and /users/me/is-admin
	Admin        bool

	// Seeded state
	User          models.User
	Profile       *models.Profile // nil: not created yet
	TakenNickname string          // nickname that conflicts on create
	Games         []models.Game
	Reviews       map[int64][]models.Review
	Genres        []models.Genre
	Platforms     []models.Platform

	// Recorded writes
	Registered   []models.RegisterRequest
	CreatedGames []CreatedGame

	nextReviewID int64
}

// NewFakeBackend starts a fake backend with one known account. The
// caller owns shutdown via t.Cleanup, already registered here.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		User:         models.User{ID: 7, Username: TestUsername},
		Reviews:      make(map[int64][]models.Review),
		nextReviewID: 100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", fb.handleToken)
	mux.HandleFunc("POST /users", fb.handleRegister)
	mux.HandleFunc("GET /users/me", fb.authed(fb.handleMe))
	mux.HandleFunc("GET /users/me/is-admin", fb.authed(fb.handleIsAdmin))
	mux.HandleFunc("GET /users/me/reviews", fb.authed(fb.handleMyReviews))
	mux.HandleFunc("POST /users/me/createProfile", fb.authed(fb.handleCreateProfile))
	mux.HandleFunc("GET /profiles/me", fb.authed(fb.handleMyProfile))
	mux.HandleFunc("PUT /profiles/me", fb.authed(fb.handleUpdateProfile))
	mux.HandleFunc("GET /games", fb.authed(fb.handleGames))
	mux.HandleFunc("GET /games/{id}", fb.authed(fb.handleGame))
	mux.HandleFunc("GET /games/{id}/reviews", fb.authed(fb.handleGameReviews))
	mux.HandleFunc("POST /users/me/reviews", fb.authed(fb.handleCreateReview))
	mux.HandleFunc("PUT /users/me/reviews", fb.authed(fb.handleUpdateReview))
	mux.HandleFunc("DELETE /users/me/reviews/{id}", fb.authed(fb.handleDeleteReview))
	mux.HandleFunc("GET /genres", fb.authed(fb.handleGenres))
	mux.HandleFunc("GET /platforms", fb.authed(fb.handlePlatforms))
	mux.HandleFunc("POST /admin/createGame", fb.authed(fb.handleCreateGame))

	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.requests = append(fb.requests, r.Method+" "+r.URL.Path)
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the fake backend's base URL.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// Requests returns a copy of every "METHOD /path" seen so far.
func (fb *FakeBackend) Requests() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]string, len(fb.requests))
	copy(out, fb.requests)
	return out
}

// RequestCount counts requests matching "METHOD /path" exactly.
func (fb *FakeBackend) RequestCount(method, path string) int {
	n := 0
	for _, req := range fb.Requests() {
		if req == method+" "+path {
			n++
		}
	}
	return n
}

// AddGame seeds a game (and an empty review list for it).
func (fb *FakeBackend) AddGame(g models.Game) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.Games = append(fb.Games, g)
	if _, ok := fb.Reviews[g.ID]; !ok {
		fb.Reviews[g.ID] = nil
	}
}

// AddReview seeds a review for a game.
func (fb *FakeBackend) AddReview(gameID int64, rev models.Review) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	rev.GameID = gameID
	fb.Reviews[gameID] = append(fb.Reviews[gameID], rev)
}

// SampleGame returns a seedable game with plausible fields.
func SampleGame(id int64, name string) models.Game {
	return models.Game{
		ID:          id,
		Name:        name,
		ReleaseYear: 2019,
		Description: "A test game.",
		Publisher:   "Test Publisher",
		Genres:      []models.Genre{{ID: 1, Name: "RPG"}},
		Platforms:   []models.Platform{{ID: 1, Name: "PC"}},
	}
}

// authed enforces the bearer contract for protected endpoints.
func (fb *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		reject := fb.RejectToken
		fb.mu.Unlock()
		if reject || r.Header.Get("Authorization") != "Bearer "+TestToken {
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r)
	}
}

func (fb *FakeBackend) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	if r.FormValue("username") != TestUsername || r.FormValue("password") != TestPassword {
		writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: TestToken, TokenType: "bearer"})
}

func (fb *FakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if req.Username == TestUsername {
		writeError(w, http.StatusConflict, "Username already registered")
		return
	}
	for _, u := range fb.Registered {
		if u.Username == req.Username {
			writeError(w, http.StatusConflict, "Username already registered")
			return
		}
	}
	fb.Registered = append(fb.Registered, req)
	writeJSON(w, http.StatusCreated, models.User{ID: 99, Username: req.Username})
}

func (fb *FakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.FailIdentity {
		writeError(w, http.StatusInternalServerError, "identity backend down")
		return
	}
	writeJSON(w, http.StatusOK, fb.User)
}

func (fb *FakeBackend) handleIsAdmin(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.FailIdentity {
		writeError(w, http.StatusInternalServerError, "identity backend down")
		return
	}
	writeJSON(w, http.StatusOK, models.AdminStatusResponse{IsAdmin: fb.Admin})
}

func (fb *FakeBackend) handleMyReviews(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	mine := []models.Review{}
	for _, reviews := range fb.Reviews {
		for _, rev := range reviews {
			if rev.UserID == fb.User.ID {
				mine = append(mine, rev)
			}
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

func (fb *FakeBackend) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if req.Nickname == fb.TakenNickname && fb.TakenNickname != "" {
		writeError(w, http.StatusConflict, "Nickname already exists")
		return
	}
	fb.Profile = &models.Profile{
		Bio:                req.Bio,
		Nickname:           req.Nickname,
		ProfilePicturePath: req.ProfilePicturePath,
	}
	writeJSON(w, http.StatusCreated, fb.Profile)
}

func (fb *FakeBackend) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.Profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, fb.Profile)
}

func (fb *FakeBackend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.Profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	// Partial update: only submitted fields change
	if req.Bio != "" {
		fb.Profile.Bio = req.Bio
	}
	if req.Nickname != "" {
		fb.Profile.Nickname = req.Nickname
	}
	if req.ProfilePicturePath != "" {
		fb.Profile.ProfilePicturePath = req.ProfilePicturePath
	}
	writeJSON(w, http.StatusOK, fb.Profile)
}

func (fb *FakeBackend) handleGames(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	games := fb.Games
	if games == nil {
		games = []models.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (fb *FakeBackend) handleGame(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, g := range fb.Games {
		if g.ID == id {
			writeJSON(w, http.StatusOK, g)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Game not found")
}

func (fb *FakeBackend) handleGameReviews(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	fb.mu.Lock()
	defer fb.mu.Unlock()
	reviews := fb.Reviews[id]
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (fb *FakeBackend) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, rev := range fb.Reviews[req.GameID] {
		if rev.UserID == fb.User.ID {
			writeError(w, http.StatusConflict, "You have already reviewed this game")
			return
		}
	}
	nickname := ""
	if fb.Profile != nil {
		nickname = fb.Profile.Nickname
	}
	fb.nextReviewID++
	fb.Reviews[req.GameID] = append(fb.Reviews[req.GameID], models.Review{
		ReviewID: fb.nextReviewID,
		GameID:   req.GameID,
		UserID:   fb.User.ID,
		Nickname: nickname,
		Content:  req.Content,
		Score:    req.Score,
	})
	writeJSON(w, http.StatusCreated, fb.Reviews[req.GameID][len(fb.Reviews[req.GameID])-1])
}

func (fb *FakeBackend) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i, rev := range fb.Reviews[req.GameID] {
		if rev.UserID == fb.User.ID {
			fb.Reviews[req.GameID][i].Content = req.Content
			fb.Reviews[req.GameID][i].Score = req.Score
			writeJSON(w, http.StatusOK, fb.Reviews[req.GameID][i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Review not found")
}

func (fb *FakeBackend) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for gameID, reviews := range fb.Reviews {
		for i, rev := range reviews {
			if rev.ReviewID == id && rev.UserID == fb.User.ID {
				fb.Reviews[gameID] = append(reviews[:i], reviews[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "Review not found")
}

func (fb *FakeBackend) handleGenres(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	genres := fb.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}

func (fb *FakeBackend) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	platforms := fb.Platforms
	if platforms == nil {
		platforms = []models.Platform{}
	}
	writeJSON(w, http.StatusOK, platforms)
}

func (fb *FakeBackend) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	admin := fb.Admin
	fb.mu.Unlock()
	if !admin {
		writeError(w, http.StatusForbidden, "Admin privileges required")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart payload")
		return
	}

	created := CreatedGame{
		Name:        r.FormValue("name"),
		ReleaseYear: r.FormValue("releaseYear"),
		Description: r.FormValue("description"),
		Publisher:   r.FormValue("publisher"),
		GenreIDs:    r.Form["genreIds"],
		PlatformIDs: r.Form["platformIds"],
	}
	file, header, err := r.FormFile("coverArt")
	if err != nil {
		writeError(w, http.StatusBadRequest, "coverArt file required")
		return
	}
	defer file.Close()
	data, _ := io.ReadAll(file)
	created.CoverArtFilename = header.Filename
	created.CoverArtSize = len(data)

	fb.mu.Lock()
	fb.CreatedGames = append(fb.CreatedGames, created)
	fb.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
