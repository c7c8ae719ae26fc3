// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the client's authentication state machine.

# States

	anonymous ──login──▶ authenticating ──token ok──▶ authenticated
	                          │                            │
	                          └─token rejected─▶ failed    └─logout / 401─▶ anonymous

Transitions into the authenticated state install the bearer token in the
gateway's credential slot and persist it durably; transitions out clear
both.

# Login and Restore

	err := sess.Login(ctx, username, password)
	err := sess.Restore(ctx) // once, at startup

Both enter the authenticated state on a valid token and then refresh
identity and admin facts concurrently in the background. The refresh
policy is:

  - 401 from either call: the credential is dead, Logout runs and the
    machine returns to anonymous.
  - any other failure: the session stays authenticated with User absent
    and IsAdmin false.

# Snapshots

Views read the session through immutable snapshots:

	snap := sess.Snapshot()
	if snap.Authenticated() { ... }

User and IsAdmin are meaningful only while State is StateAuthenticated;
they are cleared atomically with the token.

# Profile Fact

Profile existence is a tri-state: unknown until a view resolves
GET /profiles/me, then recorded with SetProfileExists. The route guard
reads it to steer the root path toward profile creation.

# Injection

Store is plain data with injected dependencies (gateway, token store,
credential slot). There is no package-level singleton; tests construct
their own store per test.
*/
package session
