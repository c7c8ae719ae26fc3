// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend is the authenticated request gateway to the review-hub
REST backend.

# Client

Client wraps every backend endpoint as a typed method:

	api := backend.New(cfg.BackendURL, cred, cfg.BackendTimeout)
	games, err := api.Games(ctx)

All methods take a context.Context and return explicit errors. The
gateway performs no retries, no backoff and no queuing; retry policy
belongs to the caller.

# Credential Attachment

The Client reads a shared Credential slot on every request and attaches
it as a bearer token header when present:

	Authorization: Bearer <token>

The session store owns the slot: it sets the token on every transition
into the authenticated state and clears it on every transition out.
After Clear, requests go out with no Authorization header at all.

# Error Taxonomy

Non-2xx responses map onto sentinel errors checked with errors.Is:

  - ErrUnauthenticated (401): callers log out and return to login
  - ErrForbidden (403): callers leave the restricted view
  - ErrNotFound (404): normal for a missing profile, error elsewhere
  - ErrConflict (409): duplicate review or nickname, surfaced distinctly

Any other failure is a generic error carrying the backend's detail
message when one was provided.

# Endpoints

	POST   /token                     Token (form-encoded credentials)
	POST   /users                     Register
	GET    /users/me                  Me
	GET    /users/me/is-admin         IsAdmin
	GET    /users/me/reviews          MyReviews
	POST   /users/me/createProfile    CreateProfile
	GET    /profiles/me               MyProfile
	PUT    /profiles/me               UpdateProfile
	GET    /games                     Games
	GET    /games/{id}                Game
	GET    /games/{id}/reviews        GameReviews
	POST   /users/me/reviews          CreateReview
	PUT    /users/me/reviews          UpdateReview
	DELETE /users/me/reviews/{id}     DeleteReview
	GET    /genres                    Genres
	GET    /platforms                 Platforms
	POST   /admin/createGame          CreateGame (multipart)
*/
package backend
