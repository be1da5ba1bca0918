// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN / REGISTER FORM
// =============================================================================

// login form field indexes.
const (
	fieldEmail = iota
	fieldPassword
	loginFieldCount
)

// register form field indexes.
const (
	regFieldUsername = iota
	regFieldEmail
	regFieldFirstName
	regFieldLastName
	regFieldPassword
	regFieldConfirm
	registerFieldCount
)

// loginView is the authentication screen: a login form that can flip into a
// registration form with ctrl+r.
type loginView struct {
	theme *styles.Theme

	registering bool
	inputs      []textinput.Model
	focus       int
	submitting  bool

	errText  string
	infoText string
}

// newLoginView creates the form in login mode.
func newLoginView(theme *styles.Theme) *loginView {
	v := &loginView{theme: theme}
	v.setMode(false)
	return v
}

// setMode rebuilds the input set for login or registration.
func (v *loginView) setMode(registering bool) {
	v.registering = registering
	v.focus = 0
	v.submitting = false

	count := loginFieldCount
	if registering {
		count = registerFieldCount
	}

	v.inputs = make([]textinput.Model, count)
	for i := range v.inputs {
		in := textinput.New()
		in.CharLimit = 120
		in.Prompt = "> "
		v.inputs[i] = in
	}

	if registering {
		v.inputs[regFieldUsername].Placeholder = "username"
		v.inputs[regFieldEmail].Placeholder = "email"
		v.inputs[regFieldFirstName].Placeholder = "first name"
		v.inputs[regFieldLastName].Placeholder = "last name"
		v.inputs[regFieldPassword].Placeholder = "password"
		v.inputs[regFieldPassword].EchoMode = textinput.EchoPassword
		v.inputs[regFieldConfirm].Placeholder = "confirm password"
		v.inputs[regFieldConfirm].EchoMode = textinput.EchoPassword
	} else {
		v.inputs[fieldEmail].Placeholder = "email"
		v.inputs[fieldPassword].Placeholder = "password"
		v.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	}

	v.inputs[0].Focus()
}

// setFocus moves input focus to the given field.
func (v *loginView) setFocus(i int) {
	v.focus = i
	for j := range v.inputs {
		if j == i {
			v.inputs[j].Focus()
		} else {
			v.inputs[j].Blur()
		}
	}
}

// HandleKey processes a key press while the form is visible.
func (v *loginView) HandleKey(msg tea.KeyMsg, manager *auth.Manager) tea.Cmd {
	if v.submitting {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		v.setFocus((v.focus + 1) % len(v.inputs))
		return nil
	case "shift+tab", "up":
		v.setFocus((v.focus - 1 + len(v.inputs)) % len(v.inputs))
		return nil
	case "ctrl+r":
		v.errText = ""
		v.infoText = ""
		v.setMode(!v.registering)
		return nil
	case "enter":
		if v.focus < len(v.inputs)-1 {
			v.setFocus(v.focus + 1)
			return nil
		}
		return v.submit(manager)
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

// submit validates the form and fires the matching auth command.
func (v *loginView) submit(manager *auth.Manager) tea.Cmd {
	v.errText = ""
	v.infoText = ""

	if v.registering {
		data := model.Registration{
			Username:  strings.TrimSpace(v.inputs[regFieldUsername].Value()),
			Email:     strings.TrimSpace(v.inputs[regFieldEmail].Value()),
			FirstName: strings.TrimSpace(v.inputs[regFieldFirstName].Value()),
			LastName:  strings.TrimSpace(v.inputs[regFieldLastName].Value()),
			Password:  v.inputs[regFieldPassword].Value(),
		}
		if data.Username == "" || data.Email == "" || data.Password == "" {
			v.errText = "username, email, and password are required"
			return nil
		}
		if data.Password != v.inputs[regFieldConfirm].Value() {
			v.errText = "passwords do not match"
			return nil
		}
		v.submitting = true
		return auth.RegisterCmd(manager, data)
	}

	creds := model.Credentials{
		Email:    strings.TrimSpace(v.inputs[fieldEmail].Value()),
		Password: v.inputs[fieldPassword].Value(),
	}
	if creds.Email == "" || creds.Password == "" {
		v.errText = "email and password are required"
		return nil
	}
	v.submitting = true
	return auth.LoginCmd(manager, creds)
}

// finish clears the submitting flag and records the outcome text.
func (v *loginView) finish(errText, infoText string) {
	v.submitting = false
	v.errText = errText
	v.infoText = infoText
}

// View renders the form.
func (v *loginView) View() string {
	var b strings.Builder

	title := "Sign in"
	hint := "enter submit - ctrl+r register - ctrl+c quit"
	if v.registering {
		title = "Create account"
		hint = "enter submit - ctrl+r back to sign in - ctrl+c quit"
	}
	b.WriteString(v.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	for i := range v.inputs {
		b.WriteString(v.inputs[i].View())
		b.WriteString("\n")
	}

	if v.submitting {
		b.WriteString("\n")
		b.WriteString(v.theme.LoadingText.Render("contacting server..."))
	}
	if v.errText != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.RenderErrorIndicator(v.errText))
	}
	if v.infoText != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.RenderSuccessIndicator(v.infoText))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.ShortcutDesc.Render(hint))

	return v.theme.FormBox.Render(b.String())
}
