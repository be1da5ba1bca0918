// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// PROFILE VIEW
// =============================================================================

// profileView shows the signed-in user's account details.
type profileView struct {
	theme   *styles.Theme
	client  *api.Client
	loading bool
	errText string
}

func newProfileView(theme *styles.Theme, client *api.Client) *profileView {
	return &profileView{theme: theme, client: client}
}

// HandleKey processes profile screen keys.
func (v *profileView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "r" && !v.loading {
		v.loading = true
		v.errText = ""
		return fetchProfileCmd(v.client)
	}
	return nil
}

// applied is called when a refreshed profile arrives.
func (v *profileView) applied() {
	v.loading = false
	v.errText = ""
}

// fail records a refresh error.
func (v *profileView) fail(err error) {
	v.loading = false
	v.errText = err.Error()
}

// View renders the account details from the current session.
func (v *profileView) View(s auth.Session) string {
	if s.User == nil {
		return v.theme.LoadingText.Render("no profile loaded")
	}
	u := s.User

	var b strings.Builder
	b.WriteString(v.theme.FormTitle.Render("Account"))
	b.WriteString("\n\n")
	b.WriteString(v.renderField("Name", u.DisplayName()))
	b.WriteString(v.renderField("Username", u.Username))
	b.WriteString(v.renderField("Email", u.Email))
	b.WriteString(v.renderField("Role", u.Role.DisplayName()))
	b.WriteString(v.renderField("Joined", u.DateJoined.Format("2006-01-02")))
	if u.LastLogin != nil {
		b.WriteString(v.renderField("Last sign-in", u.LastLogin.Format("2006-01-02 15:04")))
	}
	b.WriteString(v.renderField("Active", activeLabel(u)))

	if v.loading {
		b.WriteString("\n")
		b.WriteString(v.theme.LoadingText.Render("refreshing profile..."))
	}
	if v.errText != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.RenderErrorIndicator(v.errText))
	}

	b.WriteString("\n")
	b.WriteString(v.theme.ShortcutDesc.Render("r refresh - ctrl+l sign out"))

	return v.theme.FormBox.Render(b.String())
}

// renderField renders one label/value row.
func (v *profileView) renderField(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		v.theme.FormLabel.Render(fmt.Sprintf("%-14s", label)),
		v.theme.InputText.Render(value))
}

// activeLabel returns the account status text.
func activeLabel(u *model.User) string {
	if u.IsActive {
		return "yes"
	}
	return "no"
}
