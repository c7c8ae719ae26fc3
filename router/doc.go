// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the page routes of the web client.

# Route Registration

NewRouter creates a configured http.ServeMux with all pages:

	mux := router.NewRouter(api, sess)

# Routes

Public:

	GET  /login            - Login form
	POST /login            - Credential submission
	GET  /register         - Registration form
	POST /register         - Account creation

Guarded (route guard consulted on every navigation):

	POST /logout
	GET  /                 - Home (resolves profile existence)
	GET  /create-profile   POST /create-profile
	GET  /profile          POST /profile
	GET  /games            - Game list
	GET  /games/{id}       - Game detail with review form
	POST /games/{id}/reviews         - Create or update own review
	POST /games/{id}/reviews/delete  - Delete own review

Admin (guard additionally requires the admin flag):

	GET  /admin/create-game
	POST /admin/create-game

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(api, sess)
	gameHandler := handlers.NewGameHandler(api, sess)

All handlers receive the gateway client and the session store.
*/
package router
