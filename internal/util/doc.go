// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the storefront client:
// crash-safe file writes (AtomicWriteFile) and display-width aware string
// truncation (TruncateWidth).
package util
