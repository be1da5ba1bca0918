// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client-side authentication session.
package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/storage"
)

// Backend is the slice of the API client the session manager uses. The auth
// endpoints bypass the client's refresh decorator; Profile and Logout go
// through it.
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (*model.TokenPair, error)
	Register(ctx context.Context, data model.Registration) (string, error)
	Refresh(ctx context.Context, refresh string) (*model.TokenPair, error)
	Logout(ctx context.Context, refresh string) error
	Profile(ctx context.Context) (*model.User, error)
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the authentication session.
//
// The mutex guards the session snapshot only. It is never held across a
// network call: methods copy what they need, release the lock, do the call,
// and re-lock to commit the result.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	store   storage.TokenStore
	session Session

	// onChange, if set, is invoked with a snapshot after every state change.
	onChange func(Session)
}

// NewManager creates a session manager. The session starts in the
// Bootstrapping state: empty, unauthenticated, loading.
func NewManager(backend Backend, store storage.TokenStore) *Manager {
	return &Manager{
		backend: backend,
		store:   store,
		session: Session{Loading: true},
	}
}

// SetOnChange sets the state-change callback. Call before Bootstrap.
func (m *Manager) SetOnChange(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// State returns the current state-machine position.
func (m *Manager) State() State {
	return m.Session().State()
}

// commit replaces the session snapshot and fires the change callback.
func (m *Manager) commit(s Session) {
	m.mu.Lock()
	m.session = s
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// Bootstrap determines session validity from persisted tokens. It runs once
// at application start.
//
// Every terminal path flips Loading to false exactly once. Any failure along
// the way (malformed token, failed refresh, failed profile fetch) discards
// the persisted tokens: safety over availability.
func (m *Manager) Bootstrap(ctx context.Context) {
	pair, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrNoTokens) {
			log.Printf("auth: discarding unreadable token store: %v", err)
			m.clearSession()
			return
		}
		// Nothing persisted: plain logged-out start.
		m.commit(Session{})
		return
	}

	expired, decodeErr := accessExpired(pair)
	if decodeErr != nil {
		log.Printf("auth: stored access token unusable: %v", decodeErr)
		m.clearSession()
		return
	}

	if expired {
		refreshed, err := m.exchangeAndPersist(ctx, pair.Refresh)
		if err != nil {
			log.Printf("auth: bootstrap refresh failed: %v", err)
			m.clearSession()
			return
		}
		pair = refreshed
	}

	// Make the tokens visible to the transport before fetching the profile.
	m.commit(Session{Tokens: pair, Loading: true})

	user, err := m.backend.Profile(ctx)
	if err != nil {
		log.Printf("auth: bootstrap profile fetch failed: %v", err)
		m.clearSession()
		return
	}

	m.commit(Session{User: user, Tokens: pair, Authenticated: true})
}

// =============================================================================
// LOGIN / LOGOUT / REGISTER
// =============================================================================

// Login exchanges credentials for a session. On failure the session is
// unchanged and the error is returned so the form can surface it.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) error {
	prev := m.Session()
	m.commit(Session{Loading: true})

	pair, err := m.backend.Login(ctx, creds)
	if err != nil {
		// AuthenticationFailure: restore the pre-attempt state.
		prev.Loading = false
		m.commit(prev)
		return err
	}

	if err := m.store.Save(pair); err != nil {
		log.Printf("auth: failed to persist tokens: %v", err)
	}
	m.commit(Session{Tokens: pair, Loading: true})

	user, err := m.backend.Profile(ctx)
	if err != nil {
		// Tokens without an identity are useless; discard them.
		m.clearSession()
		return err
	}

	m.commit(Session{User: user, Tokens: pair, Authenticated: true})
	return nil
}

// Logout invalidates the refresh token server-side on a best-effort basis,
// then always clears the local session. The client forgetting its
// credentials is the part that must not fail.
func (m *Manager) Logout(ctx context.Context) {
	session := m.Session()
	if !session.Tokens.Empty() {
		if err := m.backend.Logout(ctx, session.Tokens.Refresh); err != nil {
			log.Printf("auth: remote logout failed (ignored): %v", err)
		}
	}
	m.clearSession()
}

// Register creates an account. It never mutates session state; the caller
// routes to the login view on success.
func (m *Manager) Register(ctx context.Context, data model.Registration) (string, error) {
	return m.backend.Register(ctx, data)
}

// UpdateUser replaces the user field of the current session without touching
// tokens. Used after profile edits or avatar uploads complete elsewhere.
func (m *Manager) UpdateUser(user *model.User) {
	s := m.Session()
	s.User = user
	m.commit(s)
}

// =============================================================================
// TOKEN SOURCE (api.TokenSource)
// =============================================================================

// AccessToken returns the current access token, or "" when logged out.
func (m *Manager) AccessToken() string {
	s := m.Session()
	if s.Tokens == nil {
		return ""
	}
	return s.Tokens.Access
}

// RefreshAccess performs one refresh exchange, persists the new pair, and
// updates the session tokens in place. User and Authenticated are untouched:
// a successful silent refresh is invisible.
func (m *Manager) RefreshAccess(ctx context.Context) (*model.TokenPair, error) {
	s := m.Session()
	if s.Tokens.Empty() {
		return nil, errors.New("no refresh token")
	}
	return m.exchangeAndPersist(ctx, s.Tokens.Refresh)
}

// Invalidate clears the session after an unrecoverable auth failure
// (refresh rejected, or a retried request still unauthorized).
func (m *Manager) Invalidate() {
	m.clearSession()
}

// exchangeAndPersist runs the refresh exchange and commits the new pair to
// both the store and the in-memory session.
func (m *Manager) exchangeAndPersist(ctx context.Context, refresh string) (*model.TokenPair, error) {
	pair, err := m.backend.Refresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(pair); err != nil {
		log.Printf("auth: failed to persist refreshed tokens: %v", err)
	}

	s := m.Session()
	s.Tokens = pair
	m.commit(s)
	return pair, nil
}

// =============================================================================
// CLEARING
// =============================================================================

// clearSession is the single routine that wipes persisted tokens and resets
// the session. Every unrecoverable failure path and logout funnels through
// here, so a partial clear cannot happen.
func (m *Manager) clearSession() {
	if err := m.store.Clear(); err != nil {
		log.Printf("auth: failed to clear token store: %v", err)
	}
	m.commit(Session{})
}
