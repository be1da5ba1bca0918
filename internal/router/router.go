// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router provides guarded navigation between application views.
package router

import (
	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/model"
)

// ============================================================================
// GUARD DECISION
// ============================================================================

// Evaluate is the pure guard function. It has no side effects: the caller
// acts on the returned decision.
//
// Order matters. Loading wins over everything (no premature redirects);
// authentication is checked before roles; the role check only applies when
// the route names required roles.
func Evaluate(s auth.Session, route Route) Decision {
	if route.Public {
		return Render
	}
	if s.Loading {
		return ShowLoading
	}
	if !s.Authenticated || s.User == nil {
		return RedirectLogin
	}
	if len(route.Required) > 0 && !s.User.HasRole(route.Required...) {
		return RedirectHome
	}
	return Render
}

// ============================================================================
// ROUTER
// ============================================================================

// Router holds the route table and the current position. It is driven from
// the UI event loop and needs no locking.
type Router struct {
	routes  map[RouteID]Route
	current RouteID

	// pending is the route a logged-out user originally requested,
	// restored after the next successful login. Best-effort only.
	pending RouteID
}

// NewRouter creates a router with the application's route table, positioned
// at the default route.
func NewRouter() *Router {
	r := &Router{
		routes:  make(map[RouteID]Route),
		current: DefaultRoute,
	}
	for _, route := range defaultRoutes() {
		r.routes[route.ID] = route
	}
	return r
}

// defaultRoutes is the application route table.
func defaultRoutes() []Route {
	return []Route{
		{ID: RouteLogin, Title: "Sign In", Public: true},
		{ID: RouteRegister, Title: "Create Account", Public: true},
		{ID: RouteDashboard, Title: "Dashboard"},
		{ID: RouteProducts, Title: "Products"},
		{ID: RouteStores, Title: "Stores", Required: []model.Role{model.RoleAdmin, model.RoleManager}},
		{ID: RouteTransactions, Title: "Transactions"},
		{ID: RouteProfile, Title: "Profile"},
	}
}

// Current returns the current route.
func (r *Router) Current() Route {
	return r.routes[r.current]
}

// Lookup returns the route for an ID, falling back to the default route for
// unknown IDs.
func (r *Router) Lookup(id RouteID) Route {
	if route, ok := r.routes[id]; ok {
		return route
	}
	return r.routes[DefaultRoute]
}

// Navigate applies the guard to a navigation request and moves the router
// when the decision allows it. It returns the decision and the route that is
// actually current afterwards.
func (r *Router) Navigate(s auth.Session, id RouteID) (Decision, Route) {
	target := r.Lookup(id)
	decision := Evaluate(s, target)

	switch decision {
	case Render:
		r.current = target.ID
	case RedirectLogin:
		// Remember where the user wanted to go.
		if !target.Public {
			r.pending = target.ID
		}
		r.current = RouteLogin
	case RedirectHome:
		r.current = DefaultRoute
	case ShowLoading:
		// Stay put; the caller renders a spinner.
	}
	return decision, r.Current()
}

// AfterLogin returns the route to show once a login succeeds: the pending
// route if one was captured, otherwise the default view. The pending slot is
// consumed.
func (r *Router) AfterLogin(s auth.Session) Route {
	target := DefaultRoute
	if r.pending != "" {
		target = r.pending
		r.pending = ""
	}

	// The pending route may still be out of reach for this user's role.
	route := r.Lookup(target)
	if Evaluate(s, route) != Render {
		route = r.Lookup(DefaultRoute)
	}
	r.current = route.ID
	return route
}

// Protected returns the protected routes in display order, for menus.
func (r *Router) Protected() []Route {
	ordered := []RouteID{RouteDashboard, RouteProducts, RouteStores, RouteTransactions, RouteProfile}
	out := make([]Route, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, r.routes[id])
	}
	return out
}
