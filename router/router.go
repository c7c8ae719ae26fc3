// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/handlers"
	"github.com/danielhkuo/reviewhub/middleware"
	"github.com/danielhkuo/reviewhub/session"
)

func NewRouter(api *backend.Client, sess *session.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(api, sess)
	homeHandler := handlers.NewHomeHandler(api, sess)
	profileHandler := handlers.NewProfileHandler(api, sess)
	gameHandler := handlers.NewGameHandler(api, sess)
	adminHandler := handlers.NewAdminHandler(api, sess)

	public := middleware.WithLogging
	guarded := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithGuard(sess, next))
	}

	// Public authentication flows
	mux.HandleFunc("GET /login", public(authHandler.LoginPage))
	mux.HandleFunc("POST /login", public(authHandler.Login))
	mux.HandleFunc("GET /register", public(authHandler.RegisterPage))
	mux.HandleFunc("POST /register", public(authHandler.Register))
	mux.HandleFunc("POST /logout", guarded(authHandler.Logout))

	// Home and profile
	mux.HandleFunc("GET /{$}", guarded(homeHandler.Home))
	mux.HandleFunc("GET /create-profile", guarded(profileHandler.CreateProfilePage))
	mux.HandleFunc("POST /create-profile", guarded(profileHandler.CreateProfile))
	mux.HandleFunc("GET /profile", guarded(profileHandler.ProfilePage))
	mux.HandleFunc("POST /profile", guarded(profileHandler.UpdateProfile))

	// Games and reviews
	mux.HandleFunc("GET /games", guarded(gameHandler.List))
	mux.HandleFunc("GET /games/{id}", guarded(gameHandler.Detail))
	mux.HandleFunc("POST /games/{id}/reviews", guarded(gameHandler.SubmitReview))
	mux.HandleFunc("POST /games/{id}/reviews/delete", guarded(gameHandler.DeleteReview))

	// Admin
	mux.HandleFunc("GET /admin/create-game", guarded(adminHandler.CreateGamePage))
	mux.HandleFunc("POST /admin/create-game", guarded(adminHandler.CreateGame))

	// Everything else
	mux.HandleFunc("/", public(handlers.NotFound(sess)))

	return mux
}
