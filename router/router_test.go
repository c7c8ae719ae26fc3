// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/session"
	"github.com/danielhkuo/reviewhub/testutil"
)

type memTokens struct{ token string }

func (m *memTokens) Save(token string) error { m.token = token; return nil }
func (m *memTokens) Load() (string, error)   { return m.token, nil }
func (m *memTokens) Clear() error            { m.token = ""; return nil }

func newApp(t *testing.T) (*testutil.FakeBackend, *session.Store, *http.ServeMux) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	cred := &backend.Credential{}
	api := backend.New(fb.URL(), cred, 0)
	sess := session.New(api, &memTokens{}, cred)
	return fb, sess, NewRouter(api, sess)
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func post(mux *http.ServeMux, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, r)
	return rr
}

func wantRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func loginThrough(t *testing.T, sess *session.Store, mux *http.ServeMux) {
	t.Helper()
	rr := post(mux, "/login", url.Values{
		"username": {testutil.TestUsername},
		"password": {testutil.TestPassword},
	})
	wantRedirect(t, rr, "/")
	sess.Wait()
}

func TestAnonymousNavigation(t *testing.T) {
	fb, _, mux := newApp(t)

	// Public pages render without a session.
	if rr := get(mux, "/login"); rr.Code != http.StatusOK {
		t.Errorf("GET /login = %d, want 200", rr.Code)
	}
	if rr := get(mux, "/register"); rr.Code != http.StatusOK {
		t.Errorf("GET /register = %d, want 200", rr.Code)
	}

	// Everything else bounces to login before any handler runs.
	for _, path := range []string{"/", "/games", "/games/1", "/profile", "/create-profile", "/admin/create-game"} {
		wantRedirect(t, get(mux, path), "/login")
	}
	if got := len(fb.Requests()); got != 0 {
		t.Errorf("anonymous navigation reached the backend: %v", fb.Requests())
	}
}

func TestLoginFlowLandsOnProfileCreation(t *testing.T) {
	fb, sess, mux := newApp(t)
	loginThrough(t, sess, mux)

	// First home visit resolves the missing profile and redirects.
	wantRedirect(t, get(mux, "/"), "/create-profile")

	// The fact is now recorded; the guard short-circuits further home
	// visits without consulting the backend again.
	before := fb.RequestCount("GET", "/profiles/me")
	wantRedirect(t, get(mux, "/"), "/create-profile")
	if after := fb.RequestCount("GET", "/profiles/me"); after != before {
		t.Errorf("guarded redirect still hit the backend (%d -> %d calls)", before, after)
	}
}

func TestNonAdminBouncedFromAdmin(t *testing.T) {
	fb, sess, mux := newApp(t)
	loginThrough(t, sess, mux)

	wantRedirect(t, get(mux, "/admin/create-game"), "/")
	if got := fb.RequestCount("GET", "/genres"); got != 0 {
		t.Errorf("denied admin navigation loaded catalogs %d times", got)
	}
}

func TestAdminReachesAdminPage(t *testing.T) {
	fb, sess, mux := newApp(t)
	fb.Admin = true
	loginThrough(t, sess, mux)

	if rr := get(mux, "/admin/create-game"); rr.Code != http.StatusOK {
		t.Errorf("GET /admin/create-game = %d, want 200", rr.Code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	_, sess, mux := newApp(t)
	loginThrough(t, sess, mux)

	wantRedirect(t, post(mux, "/logout", nil), "/login")
	wantRedirect(t, get(mux, "/games"), "/login")
	if sess.Snapshot().Authenticated() {
		t.Error("session still authenticated after logout")
	}
}

func TestUnknownRoute(t *testing.T) {
	_, _, mux := newApp(t)
	rr := get(mux, "/no-such-page")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
