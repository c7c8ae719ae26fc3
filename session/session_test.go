// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/testutil"
)

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	token   string
	saveErr error
}

func (m *memStore) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memStore) Load() (string, error) { return m.token, nil }

func (m *memStore) Clear() error {
	m.token = ""
	return nil
}

func newTestStore(t *testing.T, fb *testutil.FakeBackend) (*Store, *memStore, *backend.Credential) {
	t.Helper()
	tokens := &memStore{}
	cred := &backend.Credential{}
	api := backend.New(fb.URL(), cred, 0)
	return New(api, tokens, cred), tokens, cred
}

func TestLoginSuccess(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, tokens, cred := newTestStore(t, fb)

	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess.Wait()

	snap := sess.Snapshot()
	if snap.State != StateAuthenticated {
		t.Fatalf("state = %q, want %q", snap.State, StateAuthenticated)
	}
	if snap.Token != testutil.TestToken {
		t.Errorf("token = %q, want %q", snap.Token, testutil.TestToken)
	}
	if cred.Get() != testutil.TestToken {
		t.Errorf("gateway credential = %q, want the session token", cred.Get())
	}
	if tokens.token != testutil.TestToken {
		t.Errorf("persisted token = %q, want %q", tokens.token, testutil.TestToken)
	}
	if snap.User == nil || snap.User.Username != testutil.TestUsername {
		t.Errorf("user = %+v, want refreshed identity", snap.User)
	}
	if snap.IsAdmin {
		t.Error("IsAdmin = true for a non-admin account")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, tokens, cred := newTestStore(t, fb)

	err := sess.Login(context.Background(), testutil.TestUsername, "wrong-password")
	if !errors.Is(err, backend.ErrUnauthenticated) {
		t.Fatalf("Login error = %v, want ErrUnauthenticated", err)
	}

	snap := sess.Snapshot()
	if snap.State != StateFailed {
		t.Errorf("state = %q, want %q", snap.State, StateFailed)
	}
	if tokens.token != "" {
		t.Errorf("a rejected login persisted a token: %q", tokens.token)
	}
	if cred.Get() != "" {
		t.Errorf("a rejected login installed a credential: %q", cred.Get())
	}
}

func TestLoginFailedThenRetry(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, _, _ := newTestStore(t, fb)

	if err := sess.Login(context.Background(), testutil.TestUsername, "wrong-password"); err == nil {
		t.Fatal("expected first login to fail")
	}
	// The failed state must not block a retry.
	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	sess.Wait()
	if got := sess.Snapshot().State; got != StateAuthenticated {
		t.Errorf("state = %q, want %q", got, StateAuthenticated)
	}
}

func TestLoginInProgress(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, _, _ := newTestStore(t, fb)

	sess.mu.Lock()
	sess.state = StateAuthenticating
	sess.mu.Unlock()

	err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword)
	if !errors.Is(err, ErrLoginInProgress) {
		t.Fatalf("error = %v, want ErrLoginInProgress", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Admin = true
	sess, _, _ := newTestStore(t, fb)

	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess.Wait()
	if !sess.Snapshot().IsAdmin {
		t.Error("IsAdmin = false, want true after refresh")
	}
}

func TestRestore(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, tokens, cred := newTestStore(t, fb)
	tokens.token = testutil.TestToken

	if err := sess.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	sess.Wait()

	snap := sess.Snapshot()
	if snap.State != StateAuthenticated {
		t.Fatalf("state = %q, want %q", snap.State, StateAuthenticated)
	}
	if cred.Get() != testutil.TestToken {
		t.Errorf("gateway credential = %q after restore", cred.Get())
	}
	if snap.User == nil || snap.User.Username != testutil.TestUsername {
		t.Errorf("user = %+v, want refreshed identity", snap.User)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, _, _ := newTestStore(t, fb)

	if err := sess.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := sess.Snapshot().State; got != StateAnonymous {
		t.Errorf("state = %q, want %q", got, StateAnonymous)
	}
	if fb.RequestCount("GET", "/users/me") != 0 {
		t.Error("restore with no token must not call the backend")
	}
}

// A persisted token the backend no longer accepts escalates to a full
// logout: no half-authenticated session survives the refresh.
func TestRestoreRejectedToken(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, tokens, cred := newTestStore(t, fb)
	tokens.token = "stale-token"

	if err := sess.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	sess.Wait()

	snap := sess.Snapshot()
	if snap.State != StateAnonymous {
		t.Errorf("state = %q, want %q after rejection", snap.State, StateAnonymous)
	}
	if cred.Get() != "" {
		t.Errorf("gateway credential = %q, want cleared", cred.Get())
	}
	if tokens.token != "" {
		t.Errorf("persisted token = %q, want cleared", tokens.token)
	}
}

// A refresh failure that is not a credential rejection keeps the session
// alive: token intact, identity absent, admin flag down.
func TestRefreshFailureKeepsSession(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.FailIdentity = true
	sess, tokens, _ := newTestStore(t, fb)
	tokens.token = testutil.TestToken

	if err := sess.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	sess.Wait()

	snap := sess.Snapshot()
	if snap.State != StateAuthenticated {
		t.Errorf("state = %q, want still authenticated", snap.State)
	}
	if snap.User != nil {
		t.Errorf("user = %+v, want nil after failed refresh", snap.User)
	}
	if snap.IsAdmin {
		t.Error("IsAdmin = true after failed refresh")
	}
	if tokens.token != testutil.TestToken {
		t.Errorf("persisted token = %q, want untouched", tokens.token)
	}
}

func TestLogout(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, tokens, cred := newTestStore(t, fb)

	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess.Wait()

	sess.Logout()
	snap := sess.Snapshot()
	if snap.State != StateAnonymous || snap.Token != "" || snap.User != nil || snap.IsAdmin {
		t.Errorf("snapshot after logout = %+v, want fully cleared", snap)
	}
	if cred.Get() != "" {
		t.Errorf("gateway credential = %q after logout", cred.Get())
	}
	if tokens.token != "" {
		t.Errorf("persisted token = %q after logout", tokens.token)
	}

	// Idempotent.
	sess.Logout()
	if got := sess.Snapshot().State; got != StateAnonymous {
		t.Errorf("state = %q after double logout", got)
	}
}

// A save failure degrades restart survival only; the live session still
// authenticates.
func TestLoginPersistenceFailureNonFatal(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	tokens := &memStore{saveErr: errors.New("disk full")}
	cred := &backend.Credential{}
	api := backend.New(fb.URL(), cred, 0)
	sess := New(api, tokens, cred)

	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess.Wait()
	if got := sess.Snapshot().State; got != StateAuthenticated {
		t.Errorf("state = %q, want authenticated despite save failure", got)
	}
}

func TestSetProfileExists(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	sess, _, _ := newTestStore(t, fb)

	// Ignored while anonymous.
	sess.SetProfileExists(true)
	if snap := sess.Snapshot(); snap.ProfileKnown {
		t.Error("ProfileKnown set while anonymous")
	}

	if err := sess.Login(context.Background(), testutil.TestUsername, testutil.TestPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess.Wait()

	sess.SetProfileExists(false)
	snap := sess.Snapshot()
	if !snap.ProfileKnown || snap.ProfileExists {
		t.Errorf("snapshot = %+v, want known-absent profile", snap)
	}

	sess.SetProfileExists(true)
	snap = sess.Snapshot()
	if !snap.ProfileKnown || !snap.ProfileExists {
		t.Errorf("snapshot = %+v, want known-present profile", snap)
	}

	// Logout resets the fact.
	sess.Logout()
	if snap := sess.Snapshot(); snap.ProfileKnown {
		t.Error("ProfileKnown survived logout")
	}
}
