// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package guard decides navigational reachability from session state.

# Decisions

	d := guard.Decide(r.URL.Path, sess.Snapshot())
	if !d.Allow {
		http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
	}

Decide is a pure function of (path, snapshot) and is re-evaluated on
every navigation; it never mutates session state.

# Rules

In evaluation order:

  1. /login and /register are public.
  2. All other paths require an authenticated session; anonymous
     navigation redirects to /login.
  3. / additionally consults the profile fact: a known-absent profile
     redirects to /create-profile. While the fact is unknown the guard
     allows the navigation and the home view resolves it, so the
     relaxed and strict paths converge on the same destination.
  4. /admin/... additionally requires the admin flag; non-admins are
     redirected to /.

The guard is a usability boundary, not a security one; the backend
remains the authority on every request it receives.
*/
package guard
