// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client-side authentication session.
//
// The Manager is constructed once at process start and injected into
// whatever needs it; there is no ambient global. It owns the session state
// machine:
//
//	Bootstrapping -> {Authenticated, Unauthenticated}
//	Unauthenticated --login success--> Authenticated
//	Authenticated --logout | refresh failure | 401-retry failure--> Unauthenticated
//
// No other transitions exist. All unrecoverable failures funnel through a
// single clearing routine, so exactly one code path wipes persisted tokens.
//
// The Manager also implements api.TokenSource, which is how the HTTP
// transport's silent refresh-on-401 shares token state and the clearing
// routine with the rest of the session.
package auth
