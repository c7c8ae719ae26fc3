// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tokenstore persists the access token across process restarts.

# The Slot

The store holds a single credential slot, keyed to one row:

	tokens, err := tokenstore.Open("session.db")
	tokens.Save(token)   // login: overwrite
	tok, err := tokens.Load()  // startup: "" when empty
	tokens.Clear()       // logout: empty the slot

Save always overwrites, Load returns the empty string when no token has
been persisted, and Clear is idempotent. The session store is the only
caller.

# Storage

SQLite via modernc.org/sqlite (pure Go, no cgo). Schema creation is
idempotent and runs on every Open.
*/
package tokenstore
