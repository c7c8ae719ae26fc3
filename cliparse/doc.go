// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Listen port (default: 3318)
  - BackendURL: Base URL of the review-hub backend (required)
  - TokenDBPath: Path of the persisted-token database (default: session.db)
  - BackendTimeout: Per-request timeout for backend calls (default: 15s)

# CLI Flags

	-p        Listen port
	-b        Backend base URL
	-t        Token store path
	-timeout  Backend request timeout

# Environment Variables

Flags fall back to environment variables, parsed via caarlos0/env tags:

	PORT            → -p
	BACKEND_URL     → -b
	TOKEN_DB_PATH   → -t
	BACKEND_TIMEOUT → -timeout

CLI flags take precedence over environment variables. main loads a .env
file first when one is present, so local development needs no exported
shell variables.

# Validation

ParseFlags returns an error if BACKEND_URL is missing; everything else
has a default.
*/
package cliparse
