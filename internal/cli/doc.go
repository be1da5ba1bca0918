// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and non-interactive command
// handlers for the storefront client.
//
// The default command starts the TUI. The remaining commands (login, logout,
// whoami, status, config, version) run headless so the client works in
// scripts and over plain SSH sessions. Output respects NO_COLOR and TTY
// detection, and --json switches machine-readable output on where it makes
// sense.
package cli
