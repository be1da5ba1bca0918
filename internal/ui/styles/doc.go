// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the storefront TUI.
//
// The package centralizes every Lip Gloss style used by the application in a
// single Theme struct so views never construct ad-hoc styles. NewTheme detects
// the terminal's color profile and dark/light background via termenv, and all
// colors are AdaptiveColor pairs so the same theme reads well on both.
//
// Accessibility is a first-class concern: status states always pair color with
// an ASCII shape indicator ([OK], [X], [!], [i]) so they remain legible for
// colorblind users and on monochrome terminals.
package styles
