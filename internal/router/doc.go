// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router provides guarded navigation between application views.
//
// Every navigation consults the session state through a pure decision
// function before a protected view is rendered:
//
//	(loading, authenticated, role, required roles) ->
//	    {show loading, redirect to login, redirect home, render}
//
// While the session is still loading the guard never redirects; a premature
// redirect-to-login during bootstrap would flash the login view at users who
// hold a perfectly valid token.
//
// The Router also remembers the route a logged-out user originally asked
// for, so a successful login can return them there. That memory is
// best-effort and does not survive a restart.
package router
