// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD VIEW
// =============================================================================

// dashboardView is the landing screen after login.
type dashboardView struct {
	theme *styles.Theme
}

func newDashboardView(theme *styles.Theme) *dashboardView {
	return &dashboardView{theme: theme}
}

// View renders a welcome card and navigation hints.
func (v *dashboardView) View(s auth.Session) string {
	var b strings.Builder

	name := "there"
	role := ""
	if s.User != nil {
		name = s.User.DisplayName()
		role = s.User.Role.DisplayName()
	}

	welcome := v.theme.Card.Render(
		v.theme.CardTitle.Render("Signed in as") + "\n" +
			v.theme.CardValue.Render(name) + "\n" +
			v.theme.CardDelta.Render(role))

	shortcuts := v.theme.Card.Render(
		v.theme.CardTitle.Render("Navigation") + "\n" +
			v.theme.ShortcutKey.Render("tab") + v.theme.ShortcutDesc.Render(" next screen") + "\n" +
			v.theme.ShortcutKey.Render("r") + v.theme.ShortcutDesc.Render(" refresh data") + "\n" +
			v.theme.ShortcutKey.Render("ctrl+l") + v.theme.ShortcutDesc.Render(" sign out"))

	tables := v.theme.Card.Render(
		v.theme.CardTitle.Render("Tables") + "\n" +
			v.theme.ShortcutKey.Render("1-9") + v.theme.ShortcutDesc.Render(" sort by column") + "\n" +
			v.theme.ShortcutKey.Render("/") + v.theme.ShortcutDesc.Render(" search") + "\n" +
			v.theme.ShortcutKey.Render("g G") + v.theme.ShortcutDesc.Render(" first/last page") + "\n" +
			v.theme.ShortcutKey.Render("[ ]") + v.theme.ShortcutDesc.Render(" rows per page"))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, welcome, " ", shortcuts, " ", tables))

	if s.User != nil && s.User.LastLogin != nil {
		b.WriteString("\n\n")
		b.WriteString(v.theme.ShortcutDesc.Render(
			fmt.Sprintf("last sign-in %s", s.User.LastLogin.Format("2006-01-02 15:04"))))
	}

	return b.String()
}
