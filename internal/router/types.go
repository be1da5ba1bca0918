// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router provides guarded navigation between application views.
package router

import (
	"fmt"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// ============================================================================
// ROUTE TYPE
// ============================================================================

// RouteID identifies an application view.
type RouteID string

const (
	RouteLogin        RouteID = "login"
	RouteRegister     RouteID = "register"
	RouteDashboard    RouteID = "dashboard"
	RouteProducts     RouteID = "products"
	RouteStores       RouteID = "stores"
	RouteTransactions RouteID = "transactions"
	RouteProfile      RouteID = "profile"
)

// DefaultRoute is where authenticated users land when no better target is
// known (after login, or after a role check bounces them).
const DefaultRoute = RouteDashboard

// Route describes a navigable view.
type Route struct {
	// ID identifies the route.
	ID RouteID

	// Title is the human-readable view name for headers.
	Title string

	// Public routes render without a session (login, register).
	Public bool

	// Required restricts the route to the listed roles. Empty means any
	// authenticated user.
	Required []model.Role
}

// ============================================================================
// DECISION TYPE
// ============================================================================

// Decision is the guard's verdict for one navigation.
type Decision int

const (
	// ShowLoading renders a neutral loading indicator; the session is still
	// bootstrapping and no redirect may happen yet.
	ShowLoading Decision = iota
	// RedirectLogin sends the user to the login view.
	RedirectLogin
	// RedirectHome sends the user to the default authenticated view
	// (role check failed; no access-denied screen is shown).
	RedirectHome
	// Render shows the requested view unchanged.
	Render
)

// String returns the human-readable name of the decision.
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show-loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Render:
		return "render"
	default:
		return fmt.Sprintf("Decision(%d)", d)
	}
}
