// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/auth"
	"github.com/jeranaias/storefront-tui/internal/config"
	"github.com/jeranaias/storefront-tui/internal/router"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
	"github.com/jeranaias/storefront-tui/internal/util"
)

// =============================================================================
// APPLICATION SHELL
// =============================================================================

// App is the root Bubble Tea model for the storefront TUI.
type App struct {
	theme   *styles.Theme
	cfg     *config.Config
	client  *api.Client
	manager *auth.Manager
	nav     *router.Router

	width  int
	height int

	spin       spinner.Model
	statusText string
	quitting   bool

	login        *loginView
	dashboard    *dashboardView
	products     *productsView
	stores       *storesView
	transactions *transactionsView
	profile      *profileView
}

// NewApp wires the application shell. The manager must already be installed
// as the client's token source.
func NewApp(cfg *config.Config, client *api.Client, manager *auth.Manager) *App {
	theme := styles.NewTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	a := &App{
		theme:   theme,
		cfg:     cfg,
		client:  client,
		manager: manager,
		nav:     router.NewRouter(),
		spin:    sp,
	}
	a.resetViews()
	return a
}

// resetViews builds fresh screens, dropping any cached data.
func (a *App) resetViews() {
	size := a.cfg.UI.PageSize
	a.login = newLoginView(a.theme)
	a.dashboard = newDashboardView(a.theme)
	a.products = newProductsView(a.theme, a.client, size)
	a.stores = newStoresView(a.theme, a.client, size)
	a.transactions = newTransactionsView(a.theme, a.client, size)
	a.profile = newProfileView(a.theme, a.client)
}

// Init starts the session bootstrap and the spinner.
func (a *App) Init() tea.Cmd {
	return tea.Batch(auth.BootstrapCmd(a.manager), a.spin.Tick)
}

// Update is the Bubble Tea message loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.products.table.SetSize(msg.Width)
		a.stores.table.SetSize(msg.Width)
		a.transactions.table.SetSize(msg.Width)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case auth.BootstrapDoneMsg:
		if msg.Session.Authenticated {
			_, route := a.nav.Navigate(msg.Session, router.DefaultRoute)
			return a, a.enterCmd(route.ID)
		}
		a.nav.Navigate(msg.Session, router.RouteLogin)
		return a, nil

	case auth.LoginSuccessMsg:
		a.login.finish("", "")
		a.statusText = ""
		route := a.nav.AfterLogin(a.manager.Session())
		return a, a.enterCmd(route.ID)

	case auth.LoginFailedMsg:
		a.login.finish(loginErrText(msg.Err), "")
		return a, nil

	case auth.RegisteredMsg:
		a.login.setMode(false)
		a.login.finish("", msg.Message)
		return a, nil

	case auth.RegisterFailedMsg:
		a.login.finish(msg.Err.Error(), "")
		return a, nil

	case auth.LoggedOutMsg:
		a.resetViews()
		a.statusText = ""
		a.nav.Navigate(a.manager.Session(), router.RouteLogin)
		return a, nil

	case productsLoadedMsg:
		a.products.apply(msg)
		return a, nil

	case transactionsLoadedMsg:
		a.transactions.apply(msg)
		return a, nil

	case storesLoadedMsg:
		a.stores.apply(msg)
		return a, nil

	case profileLoadedMsg:
		a.profile.applied()
		a.manager.UpdateUser(msg.user)
		return a, nil

	case dataErrMsg:
		return a, a.handleDataErr(msg)

	case ConfigReloadedMsg:
		a.cfg = msg.Config
		a.statusText = "configuration reloaded"
		return a, nil
	}

	return a, nil
}

// handleKey routes key presses: global shortcuts first, then the screen
// the guard says is visible.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	s := a.manager.Session()
	decision := router.Evaluate(s, a.nav.Current())

	switch decision {
	case router.ShowLoading:
		return a, nil

	case router.RedirectLogin:
		return a, a.login.HandleKey(msg, a.manager)

	case router.RedirectHome:
		_, route := a.nav.Navigate(s, router.DefaultRoute)
		return a, a.enterCmd(route.ID)
	}

	// Authenticated shell keys.
	switch msg.String() {
	case "ctrl+l":
		return a, auth.LogoutCmd(a.manager)
	case "tab":
		return a, a.cycleRoute(s, 1)
	case "shift+tab":
		return a, a.cycleRoute(s, -1)
	}

	switch a.nav.Current().ID {
	case router.RouteProducts:
		return a, a.products.HandleKey(msg)
	case router.RouteStores:
		return a, a.stores.HandleKey(msg)
	case router.RouteTransactions:
		return a, a.transactions.HandleKey(msg)
	case router.RouteProfile:
		return a, a.profile.HandleKey(msg)
	}
	return a, nil
}

// cycleRoute moves to the next reachable protected route in menu order,
// skipping screens the current role cannot open.
func (a *App) cycleRoute(s auth.Session, dir int) tea.Cmd {
	routes := a.nav.Protected()
	if len(routes) == 0 {
		return nil
	}

	cur := 0
	for i, r := range routes {
		if r.ID == a.nav.Current().ID {
			cur = i
			break
		}
	}

	for step := 1; step <= len(routes); step++ {
		next := routes[(cur+dir*step%len(routes)+len(routes))%len(routes)]
		decision, route := a.nav.Navigate(s, next.ID)
		if decision == router.Render {
			return a.enterCmd(route.ID)
		}
	}
	return nil
}

// enterCmd fires the entry command of a data-backed screen.
func (a *App) enterCmd(id router.RouteID) tea.Cmd {
	switch id {
	case router.RouteProducts:
		return a.products.Enter()
	case router.RouteStores:
		return a.stores.Enter()
	case router.RouteTransactions:
		return a.transactions.Enter()
	}
	return nil
}

// handleDataErr routes a fetch failure to its screen. An unauthorized error
// means the session died mid-flight; the manager has already cleared it, so
// the guard will show the login form on the next render.
func (a *App) handleDataErr(msg dataErrMsg) tea.Cmd {
	if errors.Is(msg.err, api.ErrUnauthorized) {
		a.statusText = "session expired, sign in again"
		a.nav.Navigate(a.manager.Session(), a.nav.Current().ID)
	}

	switch msg.route {
	case router.RouteProducts:
		a.products.fail(msg.err)
	case router.RouteStores:
		a.stores.fail(msg.err)
	case router.RouteTransactions:
		a.transactions.fail(msg.err)
	case router.RouteProfile:
		a.profile.fail(msg.err)
	}
	return nil
}

// loginErrText maps login failures to user-facing text.
func loginErrText(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "invalid email or password"
	case errors.Is(err, api.ErrNotConfigured):
		return "no server configured, set api.base_url first"
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable, try again shortly"
	}
	return err.Error()
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the screen the navigation guard selects.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	s := a.manager.Session()
	decision := router.Evaluate(s, a.nav.Current())

	switch decision {
	case router.ShowLoading:
		return a.theme.Container.Render(
			a.spin.View() + " " + a.theme.LoadingText.Render("restoring session..."))

	case router.RedirectLogin:
		return a.theme.Container.Render(a.login.View())

	case router.RedirectHome:
		// Render the fallback; the next key press renavigates.
		return a.theme.Container.Render(a.renderShell(s, a.dashboard.View(s)))
	}

	var body string
	switch a.nav.Current().ID {
	case router.RouteProducts:
		body = a.products.View()
	case router.RouteStores:
		body = a.stores.View()
	case router.RouteTransactions:
		body = a.transactions.View()
	case router.RouteProfile:
		body = a.profile.View(s)
	default:
		body = a.dashboard.View(s)
	}
	return a.theme.Container.Render(a.renderShell(s, body))
}

// renderShell wraps a screen body with the header, navigation bar, and
// status line.
func (a *App) renderShell(s auth.Session, body string) string {
	var b strings.Builder
	b.WriteString(a.renderNav(s))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(a.renderStatus(s))
	return b.String()
}

// renderNav renders the route menu, marking the active screen and dimming
// screens the current role cannot open.
func (a *App) renderNav(s auth.Session) string {
	items := make([]string, 0, len(a.nav.Protected())+1)
	items = append(items, a.theme.HeaderBrand.Render("storefront"))

	for _, route := range a.nav.Protected() {
		style := a.theme.NavItem
		switch {
		case route.ID == a.nav.Current().ID:
			style = a.theme.NavItemActive
		case router.Evaluate(s, route) != router.Render:
			style = a.theme.NavItemDisabled
		}
		items = append(items, style.Render(route.Title))
	}
	return a.theme.NavBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

// renderStatus renders the bottom status line.
func (a *App) renderStatus(s auth.Session) string {
	left := a.theme.StatusOnline.Render(styles.StatusIndicators.Active)
	if s.User != nil {
		left += " " + fmt.Sprintf("%s (%s)",
			s.User.DisplayName(), a.theme.StatusRole.Render(s.User.Role.DisplayName()))
	}

	hint := a.theme.ShortcutDesc.Render("tab screens - ctrl+l sign out - ctrl+c quit")
	line := left + "  " + hint
	if a.statusText != "" {
		note := a.statusText
		if a.width > 0 {
			note = util.TruncateWidth(note, a.width/2)
		}
		line += "  " + a.theme.RenderWarningIndicator(note)
	}
	return a.theme.StatusBar.Render(line)
}
