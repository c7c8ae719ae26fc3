// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/reviewhub/backend"
	"github.com/danielhkuo/reviewhub/models"
)

// State names the session machine's states.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateFailed         State = "failed"
)

// refreshTimeout bounds the background identity refresh after login or
// restore; the refresh runs detached from any request context.
const refreshTimeout = 15 * time.Second

// ErrLoginInProgress is returned when Login is called while a previous
// login has not settled.
var ErrLoginInProgress = errors.New("login already in progress")

// TokenStore is the durable slot the token survives restarts in.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// Snapshot is an immutable view of the session, safe to hand to
// concurrently running views. User and IsAdmin are only meaningful while
// State is StateAuthenticated.
type Snapshot struct {
	State   State
	Token   string
	User    *models.User
	IsAdmin bool

	// ProfileKnown reports whether profile existence has been resolved
	// for this session; ProfileExists is meaningless until it has.
	ProfileKnown  bool
	ProfileExists bool
}

// Authenticated reports whether the snapshot carries a live credential.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Store is the process-wide session state machine. It is constructed
// once in main and injected into every view; tests build their own.
type Store struct {
	api    *backend.Client
	tokens TokenStore
	cred   *backend.Credential

	mu            sync.RWMutex
	state         State
	token         string
	user          *models.User
	isAdmin       bool
	profileKnown  bool
	profileExists bool

	refreshing sync.WaitGroup
}

// New creates a session store in the anonymous state. The credential
// slot is shared with the gateway: every transition into the
// authenticated state installs the token there, every transition out
// removes it.
func New(api *backend.Client, tokens TokenStore, cred *backend.Credential) *Store {
	return &Store{
		api:    api,
		tokens: tokens,
		cred:   cred,
		state:  StateAnonymous,
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		State:         s.state,
		Token:         s.token,
		User:          user,
		IsAdmin:       s.isAdmin,
		ProfileKnown:  s.profileKnown,
		ProfileExists: s.profileExists,
	}
}

// Login exchanges credentials for a token. On success the token is
// persisted, the machine enters the authenticated state, and identity
// and admin facts are refreshed in the background. On failure the
// machine enters the failed state and the token is never persisted.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.state == StateAuthenticating {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	s.state = StateAuthenticating
	s.mu.Unlock()

	resp, err := s.api.Token(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		return fmt.Errorf("login: %w", err)
	}

	if err := s.tokens.Save(resp.AccessToken); err != nil {
		// Persistence failure degrades restart survival, not this session.
		slog.Warn("token not persisted", "error", err)
	}
	s.authenticate(resp.AccessToken)
	slog.Info("logged in", "username", username)

	s.refreshAsync()
	return nil
}

// Restore rehydrates the session from the persisted token. Run once at
// process start. A found token enters the authenticated state
// optimistically with unknown identity; the background refresh then
// either fills the facts in or, on a credential rejection, logs out.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if token == "" {
		return nil
	}

	s.authenticate(token)
	slog.Info("session restored from persisted token")

	s.refreshAsync()
	return nil
}

// Logout clears the persisted token, the in-memory token, the identity
// and the admin flag, and returns to the anonymous state. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.isAdmin = false
	s.profileKnown = false
	s.profileExists = false
	s.mu.Unlock()

	s.cred.Clear()
	if err := s.tokens.Clear(); err != nil {
		slog.Warn("persisted token not cleared", "error", err)
	}
}

// Refresh fetches identity and admin status concurrently; the batch
// settles all-or-nothing. A credential rejection from either call
// escalates to Logout. Any other failure leaves the session
// authenticated with the identity absent and the admin flag down.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.Snapshot().Authenticated() {
		return nil
	}

	var (
		user    models.User
		isAdmin bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.api.Me(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		isAdmin, err = s.api.IsAdmin(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, backend.ErrUnauthenticated) {
			slog.Info("credential rejected during refresh, logging out")
			s.Logout()
			return fmt.Errorf("refresh identity: %w", err)
		}
		s.mu.Lock()
		s.user = nil
		s.isAdmin = false
		s.mu.Unlock()
		slog.Warn("identity refresh failed, staying logged in", "error", err)
		return fmt.Errorf("refresh identity: %w", err)
	}

	s.mu.Lock()
	// The session may have been logged out while the batch was in
	// flight; stale facts must not resurrect it.
	if s.state == StateAuthenticated {
		s.user = &user
		s.isAdmin = isAdmin
	}
	s.mu.Unlock()
	return nil
}

// SetProfileExists records the profile-existence fact once a view has
// resolved it. Ignored outside the authenticated state.
func (s *Store) SetProfileExists(exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return
	}
	s.profileKnown = true
	s.profileExists = exists
}

// Wait blocks until any in-flight background refresh has settled.
// Views never call this; it keeps tests deterministic.
func (s *Store) Wait() {
	s.refreshing.Wait()
}

func (s *Store) authenticate(token string) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = token
	s.user = nil
	s.isAdmin = false
	s.profileKnown = false
	s.profileExists = false
	s.mu.Unlock()

	s.cred.Set(token)
}

func (s *Store) refreshAsync() {
	s.refreshing.Add(1)
	go func() {
		defer s.refreshing.Done()
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		// Outcome already logged and applied inside Refresh.
		_ = s.Refresh(ctx)
	}()
}
