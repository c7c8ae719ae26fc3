// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the page handlers (view controllers) of the
web client.

# Handler Types

Each handler is a struct with gateway and session dependencies:

  - AuthHandler: login, logout, registration
  - HomeHandler: the root page and profile-existence resolution
  - ProfileHandler: profile creation and the profile page
  - GameHandler: game list, game detail, review create/update/delete
  - AdminHandler: admin game creation

Handlers are created via constructor functions that accept the gateway
client and the session store:

	gameHandler := handlers.NewGameHandler(api, sess)

# Rendering

Pages are html/template files embedded in the binary, each parsed
together with the shared layout. Every page receives the current
session snapshot for the nav bar.

# View Data Lifetime

Entities are fetched per navigation and held only in the render call;
nothing is cached across views. Views needing several fetches issue
them concurrently and render only once the whole batch has settled; a
failure of any one fetch fails the view.

# Error Policy

Backend failures are handled where they happen:

  - 401: session cleared, redirect to /login
  - 403: redirect away from the restricted view
  - 409: a specific message (duplicate review, taken nickname)
  - 404 on /profiles/me: redirect to profile creation, not an error
  - anything else: a generic retryable error page, no automatic retry
*/
package handlers
