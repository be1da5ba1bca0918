// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client-side authentication session.
//
// This file tests the session state machine: bootstrap terminal states,
// login/logout transitions, and the token-source behavior backing the
// transport's silent refresh.
package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/storage"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

var errBackend = errors.New("backend says no")

// fakeBackend is a controllable Backend with call counters.
type fakeBackend struct {
	mu sync.Mutex

	loginPair  *model.TokenPair
	loginErr   error
	refreshed  *model.TokenPair
	refreshErr error
	user       *model.User
	profileErr error
	logoutErr  error

	loginCalls   int
	refreshCalls int
	profileCalls int
	logoutCalls  int
}

func (f *fakeBackend) Login(ctx context.Context, creds model.Credentials) (*model.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginPair, nil
}

func (f *fakeBackend) Register(ctx context.Context, data model.Registration) (string, error) {
	return "registered", nil
}

func (f *fakeBackend) Refresh(ctx context.Context, refresh string) (*model.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshed, nil
}

func (f *fakeBackend) Logout(ctx context.Context, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeBackend) Profile(ctx context.Context) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.user, nil
}

// mintAccessToken creates a JWT carrying only an expiry claim. The signature
// is irrelevant: the manager decodes expiry without verification.
func mintAccessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func testUser() *model.User {
	return &model.User{ID: 42, Username: "amara", Email: "amara@example.com", Role: model.RoleManager}
}

// =============================================================================
// BOOTSTRAP TESTS
// =============================================================================

func TestBootstrap_NoStoredTokens(t *testing.T) {
	backend := &fakeBackend{}
	store := storage.NewMemoryTokenStore()
	m := NewManager(backend, store)

	require.Equal(t, StateBootstrapping, m.State())
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.False(t, s.Loading)
	assert.False(t, s.Authenticated)
	assert.Nil(t, s.User)
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Equal(t, 0, backend.profileCalls)
	assert.Equal(t, 0, backend.refreshCalls)
}

func TestBootstrap_ValidAccessToken(t *testing.T) {
	backend := &fakeBackend{user: testUser()}
	store := storage.NewMemoryTokenStore()
	access := mintAccessToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(&model.TokenPair{Access: access, Refresh: "ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.True(t, s.Authenticated)
	assert.False(t, s.Loading)
	require.NotNil(t, s.User)
	assert.Equal(t, "amara", s.User.Username)
	assert.Equal(t, 0, backend.refreshCalls, "unexpired token needs no refresh")
	assert.Equal(t, 1, backend.profileCalls)
}

func TestBootstrap_NearExpiryTokenRefreshedUpFront(t *testing.T) {
	newPair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "new-ref"}
	backend := &fakeBackend{user: testUser(), refreshed: newPair}
	store := storage.NewMemoryTokenStore()
	// Still valid for 10 seconds, but inside the refresh window.
	nearExpiry := mintAccessTokenNoT(time.Now().Add(10 * time.Second))
	require.NoError(t, store.Save(&model.TokenPair{Access: nearExpiry, Refresh: "old-ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.True(t, s.Authenticated)
	assert.Equal(t, 1, backend.refreshCalls, "token about to expire must be refreshed before first use")
	require.NotNil(t, s.Tokens)
	assert.Equal(t, "new-ref", s.Tokens.Refresh)
}

func TestBootstrap_ExpiredAccessRefreshSucceeds(t *testing.T) {
	newPair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "new-ref"}
	backend := &fakeBackend{user: testUser(), refreshed: newPair}
	store := storage.NewMemoryTokenStore()
	stale := mintAccessTokenNoT(time.Now().Add(-time.Hour))
	require.NoError(t, store.Save(&model.TokenPair{Access: stale, Refresh: "old-ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.True(t, s.Authenticated)
	require.NotNil(t, s.Tokens)
	assert.Equal(t, "new-ref", s.Tokens.Refresh)
	assert.Equal(t, 1, backend.refreshCalls)
	assert.Equal(t, 1, backend.profileCalls)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new-ref", persisted.Refresh, "refreshed pair must be persisted")
}

func TestBootstrap_ExpiredAccessRefreshFails(t *testing.T) {
	backend := &fakeBackend{refreshErr: errBackend}
	store := storage.NewMemoryTokenStore()
	stale := mintAccessTokenNoT(time.Now().Add(-time.Hour))
	require.NoError(t, store.Save(&model.TokenPair{Access: stale, Refresh: "old-ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.False(t, s.Authenticated)
	assert.False(t, s.Loading)
	assert.Nil(t, s.User)

	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNoTokens, "persisted tokens must be removed")
	assert.Equal(t, 0, backend.profileCalls)
}

func TestBootstrap_ProfileFetchFailureDiscardsTokens(t *testing.T) {
	backend := &fakeBackend{profileErr: errBackend}
	store := storage.NewMemoryTokenStore()
	access := mintAccessTokenNoT(time.Now().Add(time.Hour))
	require.NoError(t, store.Save(&model.TokenPair{Access: access, Refresh: "ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	s := m.Session()
	assert.False(t, s.Authenticated)
	assert.False(t, s.Loading)

	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNoTokens, "tokens discarded defensively")
}

func TestBootstrap_MalformedAccessToken(t *testing.T) {
	backend := &fakeBackend{}
	store := storage.NewMemoryTokenStore()
	require.NoError(t, store.Save(&model.TokenPair{Access: "not-a-jwt", Refresh: "ref"}))

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNoTokens)
	assert.Equal(t, 0, backend.refreshCalls, "malformed token is not worth a refresh")
}

// mintAccessTokenNoT is mintAccessToken without the *testing.T plumbing, for
// use in composite expressions.
func mintAccessTokenNoT(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	signed, _ := token.SignedString([]byte("test-secret"))
	return signed
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	backend := &fakeBackend{loginPair: pair, user: testUser()}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())
	require.Equal(t, StateUnauthenticated, m.State())

	err := m.Login(context.Background(), model.Credentials{Email: "amara@example.com", Password: "pw"})
	require.NoError(t, err)

	s := m.Session()
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, 1, backend.profileCalls, "exactly one profile fetch")

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ref", persisted.Refresh)
}

func TestLogin_BadCredentials(t *testing.T) {
	backend := &fakeBackend{loginErr: errBackend}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	err := m.Login(context.Background(), model.Credentials{Email: "x", Password: "bad"})
	assert.ErrorIs(t, err, errBackend, "error propagates to the caller")

	s := m.Session()
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.False(t, s.Loading)
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, storage.ErrNoTokens, "no tokens persisted")
	assert.Equal(t, 0, backend.profileCalls)
}

func TestLogin_ProfileFetchFailure(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	backend := &fakeBackend{loginPair: pair, profileErr: errBackend}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	err := m.Login(context.Background(), model.Credentials{Email: "x", Password: "pw"})
	require.Error(t, err)

	assert.Equal(t, StateUnauthenticated, m.State())
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, storage.ErrNoTokens, "tokens without an identity are discarded")
}

// =============================================================================
// LOGOUT TESTS
// =============================================================================

func TestLogout_NetworkFailureStillClears(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	backend := &fakeBackend{loginPair: pair, user: testUser(), logoutErr: errBackend}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())
	require.NoError(t, m.Login(context.Background(), model.Credentials{Email: "x", Password: "pw"}))

	m.Logout(context.Background())

	assert.Equal(t, 1, backend.logoutCalls, "remote logout attempted")
	assert.Equal(t, StateUnauthenticated, m.State())
	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNoTokens, "local logout proceeds regardless")
}

func TestLogout_WhenAlreadyLoggedOut(t *testing.T) {
	backend := &fakeBackend{}
	store := storage.NewMemoryTokenStore()
	m := NewManager(backend, store)
	m.Bootstrap(context.Background())

	m.Logout(context.Background())

	assert.Equal(t, 0, backend.logoutCalls, "no refresh token, no remote call")
	assert.Equal(t, StateUnauthenticated, m.State())
}

// =============================================================================
// TOKEN SOURCE TESTS
// =============================================================================

func TestRefreshAccess_IsInvisibleToTheUser(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	newPair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(2 * time.Hour)), Refresh: "ref2"}
	backend := &fakeBackend{loginPair: pair, user: testUser(), refreshed: newPair}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())
	require.NoError(t, m.Login(context.Background(), model.Credentials{Email: "x", Password: "pw"}))

	got, err := m.RefreshAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ref2", got.Refresh)

	s := m.Session()
	assert.True(t, s.Authenticated, "silent refresh never logs the user out")
	assert.Equal(t, "amara", s.User.Username)
	assert.Equal(t, "ref2", s.Tokens.Refresh)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ref2", persisted.Refresh)
}

func TestInvalidate_ClearsEverything(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	backend := &fakeBackend{loginPair: pair, user: testUser()}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())
	require.NoError(t, m.Login(context.Background(), model.Credentials{Email: "x", Password: "pw"}))

	m.Invalidate()

	s := m.Session()
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User)
	assert.Nil(t, s.Tokens)
	assert.Equal(t, "", m.AccessToken())
	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNoTokens)
}

// =============================================================================
// UPDATE USER TESTS
// =============================================================================

func TestUpdateUser_ReplacesOnlyTheUser(t *testing.T) {
	pair := &model.TokenPair{Access: mintAccessTokenNoT(time.Now().Add(time.Hour)), Refresh: "ref"}
	backend := &fakeBackend{loginPair: pair, user: testUser()}
	store := storage.NewMemoryTokenStore()

	m := NewManager(backend, store)
	m.Bootstrap(context.Background())
	require.NoError(t, m.Login(context.Background(), model.Credentials{Email: "x", Password: "pw"}))

	updated := testUser()
	updated.FirstName = "Amara"
	updated.AvatarURL = "https://cdn.example.com/a.png"
	m.UpdateUser(updated)

	s := m.Session()
	assert.Equal(t, "Amara", s.User.FirstName)
	assert.Equal(t, "ref", s.Tokens.Refresh, "tokens untouched")
	assert.True(t, s.Authenticated)
}

// =============================================================================
// EXPIRY DECODE TESTS
// =============================================================================

func TestDecodeExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, err := decodeExpiry(mintAccessTokenNoT(exp))
	require.NoError(t, err)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestDecodeExpiry_Malformed(t *testing.T) {
	_, err := decodeExpiry("garbage")
	assert.Error(t, err)
}

func TestDecodeExpiry_MissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = decodeExpiry(signed)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

// =============================================================================
// STATE CHANGE CALLBACK TESTS
// =============================================================================

func TestOnChange_FiresOnTransitions(t *testing.T) {
	backend := &fakeBackend{}
	store := storage.NewMemoryTokenStore()
	m := NewManager(backend, store)

	var states []State
	m.SetOnChange(func(s Session) { states = append(states, s.State()) })

	m.Bootstrap(context.Background())
	require.NotEmpty(t, states)
	assert.Equal(t, StateUnauthenticated, states[len(states)-1])
}
