// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/table"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// STORES VIEW (CLIENT-PAGINATED)
// =============================================================================

// storesView lists sales locations. The full set loads once and the table
// sorts, filters, and pages it locally.
type storesView struct {
	theme   *styles.Theme
	client  *api.Client
	table   *table.Model[model.Store]
	loading bool
	loaded  bool
	errText string
}

// storeColumns maps store fields onto table columns.
func storeColumns() []table.Column[model.Store] {
	return []table.Column[model.Store]{
		{ID: "name", Title: "Name", Value: func(s model.Store) string { return s.Name }, Width: 24},
		{ID: "city", Title: "City", Value: func(s model.Store) string { return s.City }, Width: 16},
		{ID: "state", Title: "State", Value: func(s model.Store) string { return s.State }, Width: 8},
		{ID: "phone", Title: "Phone", Value: func(s model.Store) string { return s.Phone }, Width: 16},
		{ID: "active", Title: "Active", Value: func(s model.Store) string {
			if s.IsActive {
				return "yes"
			}
			return "no"
		}, Width: 8},
	}
}

// newStoresView creates the view with an unloaded client-mode table.
func newStoresView(theme *styles.Theme, client *api.Client, pageSize int) *storesView {
	return &storesView{
		theme:  theme,
		client: client,
		table: table.New(storeColumns(), theme, table.Options{
			PageSize:     pageSize,
			SearchColumn: "name",
		}),
	}
}

// Enter triggers the one-time load the first time the view gains focus.
func (v *storesView) Enter() tea.Cmd {
	if v.loaded || v.loading {
		return nil
	}
	v.loading = true
	return fetchStoresCmd(v.client)
}

// Refresh reloads the full store list.
func (v *storesView) Refresh() tea.Cmd {
	v.loading = true
	return fetchStoresCmd(v.client)
}

// HandleKey forwards keys to the table.
func (v *storesView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "r" && !v.table.Searching() {
		return v.Refresh()
	}
	return v.table.HandleKey(msg)
}

// apply installs the fetched rows into the table.
func (v *storesView) apply(msg storesLoadedMsg) {
	v.loading = false
	v.loaded = true
	v.errText = ""
	v.table.SetRows(msg.stores)
}

// fail records a fetch error.
func (v *storesView) fail(err error) {
	v.loading = false
	v.errText = err.Error()
}

// View renders the screen.
func (v *storesView) View() string {
	if v.errText != "" {
		return v.theme.ErrorBox.Render(
			v.theme.ErrorTitle.Render("Could not load stores") + "\n" +
				v.theme.ErrorMessage.Render(v.errText) + "\n" +
				v.theme.ErrorSuggestion.Render("press r to retry"))
	}
	if v.loading && !v.loaded {
		return v.theme.LoadingText.Render("loading stores...")
	}
	return v.table.View()
}
