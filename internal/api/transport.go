// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Storefront API.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// =============================================================================
// TOKEN SOURCE
// =============================================================================

// TokenSource supplies the transport with authentication material. It is
// implemented by the auth session manager so that refresh results and
// invalidation share one code path with the rest of the session state.
type TokenSource interface {
	// AccessToken returns the current access token, or "" when logged out.
	AccessToken() string

	// RefreshAccess performs one refresh exchange and returns the new pair.
	// The implementation persists the new pair before returning.
	RefreshAccess(ctx context.Context) (*model.TokenPair, error)

	// Invalidate clears the session after an unrecoverable auth failure.
	Invalidate()
}

// =============================================================================
// AUTH TRANSPORT
// =============================================================================

// ctxKey is the private type for context keys used by the transport.
type ctxKey int

// ctxKeyBypass marks requests that must not carry an access token or trigger
// a refresh. The auth endpoints themselves (login, refresh, verify) use it,
// otherwise an expired session could recurse into itself.
const ctxKeyBypass ctxKey = iota

// withAuthBypass returns a context whose request skips the auth decorator.
func withAuthBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyBypass, true)
}

// authTransport decorates an http.RoundTripper with bearer-token attachment
// and a bounded refresh-on-401 retry.
//
// The retry flag is a local per-call variable, never shared state, so
// concurrent requests that each hit 401 each perform their own single refresh
// attempt. That duplicate refresh is a benign race: the token endpoint
// tolerates it, and the last persisted pair wins.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

// RoundTrip implements http.RoundTripper.
//
// On a 401 it performs exactly one refresh exchange and retries the original
// request once with the new access token. If the refresh fails, or the retry
// comes back 401 again, the token source is invalidated and the unauthorized
// response is returned to the caller unchanged.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil || req.Context().Value(ctxKeyBypass) != nil {
		return t.base.RoundTrip(req)
	}

	first := cloneWithToken(req, t.tokens.AccessToken())
	resp, err := t.base.RoundTrip(first)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	pair, refreshErr := t.tokens.RefreshAccess(req.Context())
	if refreshErr != nil {
		// TokenExpiredUnrecoverable: surface the original 401.
		t.tokens.Invalidate()
		return resp, nil
	}
	resp.Body.Close()

	retry, err := cloneForRetry(req, pair.Access)
	if err != nil {
		t.tokens.Invalidate()
		return nil, err
	}

	resp2, err2 := t.base.RoundTrip(retry)
	if err2 == nil && resp2.StatusCode == http.StatusUnauthorized {
		// The refreshed token was rejected too; the session is gone.
		t.tokens.Invalidate()
	}
	return resp2, err2
}

// cloneWithToken returns a copy of req carrying the bearer token. The
// incoming request is never mutated, per the RoundTripper contract.
func cloneWithToken(req *http.Request, access string) *http.Request {
	out := req.Clone(req.Context())
	if access != "" {
		out.Header.Set("Authorization", "Bearer "+access)
	}
	return out
}

// cloneForRetry rebuilds the request with a fresh body for the single retry.
func cloneForRetry(req *http.Request, access string) (*http.Request, error) {
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+access)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	return out, nil
}
