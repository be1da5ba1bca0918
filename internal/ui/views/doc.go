// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views contains the Bubble Tea application shell and screens for
// the storefront TUI.
//
// The App model owns one sub-view per route (login, dashboard, products,
// stores, transactions, profile) and consults the navigation guard on every
// route change: while the session is bootstrapping a loading screen shows,
// unauthenticated users land on the login form with their destination
// remembered, and role-gated screens bounce unauthorized users back to the
// dashboard.
//
// List screens embed the generic table widget. Products and transactions run
// it in server mode (each page, sort, and search change triggers a refetch);
// stores loads once and runs the table client-side.
package views
