// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client-side authentication session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// =============================================================================
// SESSION STATE
// =============================================================================

// State is the coarse position in the session state machine.
type State int

const (
	// StateBootstrapping means the initial token validation has not finished.
	StateBootstrapping State = iota
	// StateUnauthenticated means there is no valid session.
	StateUnauthenticated
	// StateAuthenticated means tokens and a user profile are present.
	StateAuthenticated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the authentication state. It is a value: readers
// get a copy and never observe partial updates.
//
// Invariants: Authenticated implies User is non-nil; Tokens absent implies
// Authenticated is false; Loading is true only during bootstrap or a login
// attempt.
type Session struct {
	User          *model.User
	Tokens        *model.TokenPair
	Authenticated bool
	Loading       bool
}

// State derives the state-machine position from the snapshot.
func (s Session) State() State {
	switch {
	case s.Loading:
		return StateBootstrapping
	case s.Authenticated:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// =============================================================================
// ACCESS TOKEN EXPIRY
// =============================================================================

// ErrNoExpiry indicates the access token carries no usable expiry claim.
var ErrNoExpiry = errors.New("access token has no expiry claim")

// decodeExpiry reads the embedded expiry claim of a JWT access token
// WITHOUT validating its signature.
//
// This is a deliberately weak, client-side-only check used purely to avoid a
// needless network round trip at bootstrap. It is never a security boundary:
// the server re-validates the token on every authenticated call.
func decodeExpiry(access string) (time.Time, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed access token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// expirySkew is how close to its expiry a token is still treated as usable.
// A token inside the window gets refreshed up front rather than failing its
// first request moments later.
const expirySkew = 30 * time.Second

// accessExpired reports whether the pair's access token is expired or about
// to expire (or undecodable, which callers treat the same way).
func accessExpired(pair *model.TokenPair) (expired bool, decodeErr error) {
	exp, err := decodeExpiry(pair.Access)
	if err != nil {
		return true, err
	}
	return !NowTimeFunc().Add(expirySkew).Before(exp), nil
}
