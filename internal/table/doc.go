// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package table provides a reusable, type-parametric data table.
//
// The package splits cleanly in two:
//
//   - A pure derivation engine: DeriveView(rows, columns, state) computes the
//     visible page (filtering, stable multi-column sorting, pagination) from
//     the full row set with no UI involved. This is what the tests exercise.
//   - A Bubble Tea component, Model, that owns a ViewState, renders the grid
//     with lipgloss, and handles keys. The parent view feeds it rows and
//     receives pagination callbacks.
//
// Two modes exist. In client mode (default) the engine is authoritative: all
// sorting/filtering/paging happens over the in-memory row set. In
// server-driven mode the component renders exactly the rows it was given and
// only mirrors page/size/search state up to the caller, which re-fetches.
package table
