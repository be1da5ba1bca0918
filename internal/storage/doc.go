// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state for storefront-tui.
//
// The only state the client persists is the authentication token pair,
// serialized as a single JSON document under the user's config directory.
// The user profile is deliberately not persisted; it is re-fetched whenever
// tokens are validated.
package storage
