// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client-side authentication session.
package auth

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/model"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// BootstrapDoneMsg is sent when the initial session determination finishes.
type BootstrapDoneMsg struct {
	Session Session
}

// LoginSuccessMsg is sent after a successful login.
type LoginSuccessMsg struct {
	User *model.User
}

// LoginFailedMsg is sent after a failed login attempt.
type LoginFailedMsg struct {
	Err error
}

// LoggedOutMsg is sent after logout completes locally.
type LoggedOutMsg struct{}

// RegisteredMsg is sent after a successful registration.
type RegisteredMsg struct {
	Message string
}

// RegisterFailedMsg is sent after a failed registration attempt.
type RegisterFailedMsg struct {
	Err error
}

// BootstrapCmd runs Bootstrap and reports the terminal session state.
func BootstrapCmd(m *Manager) tea.Cmd {
	return func() tea.Msg {
		m.Bootstrap(context.Background())
		return BootstrapDoneMsg{Session: m.Session()}
	}
}

// LoginCmd runs a login attempt and reports the outcome.
func LoginCmd(m *Manager, creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		if err := m.Login(context.Background(), creds); err != nil {
			return LoginFailedMsg{Err: err}
		}
		return LoginSuccessMsg{User: m.Session().User}
	}
}

// LogoutCmd runs logout and reports completion.
func LogoutCmd(m *Manager) tea.Cmd {
	return func() tea.Msg {
		m.Logout(context.Background())
		return LoggedOutMsg{}
	}
}

// RegisterCmd runs a registration attempt and reports the outcome.
func RegisterCmd(m *Manager, data model.Registration) tea.Cmd {
	return func() tea.Msg {
		msg, err := m.Register(context.Background(), data)
		if err != nil {
			return RegisterFailedMsg{Err: err}
		}
		return RegisteredMsg{Message: msg}
	}
}
