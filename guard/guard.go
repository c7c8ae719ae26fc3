// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"strings"

	"github.com/danielhkuo/reviewhub/session"
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(path string) Decision { return Decision{RedirectTo: path} }

// Decide evaluates whether the requested path is reachable under the
// given session snapshot. Pure: same inputs, same decision, no state
// touched. Rules are evaluated in order:
//
//  1. Public paths (login, registration) are always reachable.
//  2. Everything else requires an authenticated session.
//  3. The root path requires the profile fact: known absent redirects to
//     profile creation; unknown is allowed and the home view resolves it.
//  4. Admin paths additionally require the admin flag.
func Decide(path string, snap session.Snapshot) Decision {
	if path == "/login" || path == "/register" {
		return allow()
	}
	if !snap.Authenticated() {
		return redirect("/login")
	}
	if path == "/" && snap.ProfileKnown && !snap.ProfileExists {
		return redirect("/create-profile")
	}
	if strings.HasPrefix(path, "/admin") && !snap.IsAdmin {
		return redirect("/")
	}
	return allow()
}
