// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Game Review Hub web
client.

The client is a server-rendered front-end for the review-hub REST
backend: it authenticates against the backend, keeps the access token
in a durable local store so the session survives restarts, and serves
the browse/review/profile pages over plain HTML.

# Starting the Client

The client needs to know where the backend lives:

	BACKEND_URL=http://localhost:8000 go run .

Or with flags:

	go run . -p 3318 -b http://localhost:8000

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - BACKEND_URL (-b): Base URL of the review-hub backend

Optional settings:

  - PORT (-p): Listen port (default: 3318)
  - TOKEN_DB_PATH (-t): Persisted-token database (default: session.db)
  - BACKEND_TIMEOUT (-timeout): Backend request timeout (default: 15s)

# Architecture

The client uses a handler-based architecture with dependency injection:

  - session: authentication state machine (login, restore, logout)
  - backend: authenticated gateway to the REST backend
  - tokenstore: durable single-slot token persistence
  - guard: pure route-reachability decisions
  - handlers: page handlers and embedded templates
  - router: route definitions using Go 1.22+ routing
  - middleware: request logging and guard enforcement
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
