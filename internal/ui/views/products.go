// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/table"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// PRODUCTS VIEW (SERVER-PAGINATED)
// =============================================================================

// productsView lists the catalog through the server-driven table: every
// page, sort, or search change refetches from the API.
type productsView struct {
	theme   *styles.Theme
	client  *api.Client
	table   *table.Model[model.Product]
	loading bool
	loaded  bool
	errText string
}

// productColumns maps catalog fields onto table columns. Column IDs double
// as the API ordering keys.
func productColumns() []table.Column[model.Product] {
	return []table.Column[model.Product]{
		{ID: "name", Title: "Name", Value: func(p model.Product) string { return p.Name }, Width: 28},
		{ID: "sku", Title: "SKU", Value: func(p model.Product) string { return p.SKU }, Width: 14},
		{ID: "price", Title: "Price", Value: func(p model.Product) string {
			return fmt.Sprintf("%.2f", p.Price)
		}, Width: 10},
		{ID: "category__name", Title: "Category", Value: func(p model.Product) string {
			if p.Category != nil {
				return p.Category.Name
			}
			return "-"
		}, Width: 16},
		{ID: "is_active", Title: "Active", Value: func(p model.Product) string {
			if p.IsActive {
				return "yes"
			}
			return "no"
		}, Width: 8},
	}
}

// newProductsView creates the view with an unloaded server-mode table.
func newProductsView(theme *styles.Theme, client *api.Client, pageSize int) *productsView {
	v := &productsView{theme: theme, client: client}
	v.table = table.New(productColumns(), theme, table.Options{
		ServerPagination: true,
		TotalCount:       -1,
		PageSize:         pageSize,
		SearchColumn:     "name",
		OnChange: func(st table.ViewState) tea.Cmd {
			v.loading = true
			return fetchProductsCmd(client, listOptionsFor(st, "name"))
		},
	})
	return v
}

// Enter triggers the initial fetch the first time the view gains focus.
func (v *productsView) Enter() tea.Cmd {
	if v.loaded || v.loading {
		return nil
	}
	v.loading = true
	return fetchProductsCmd(v.client, listOptionsFor(v.table.State(), "name"))
}

// Refresh refetches the current page.
func (v *productsView) Refresh() tea.Cmd {
	v.loading = true
	return fetchProductsCmd(v.client, listOptionsFor(v.table.State(), "name"))
}

// HandleKey forwards keys to the table.
func (v *productsView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "r" && !v.table.Searching() {
		return v.Refresh()
	}
	return v.table.HandleKey(msg)
}

// apply installs a fetched page into the table.
func (v *productsView) apply(msg productsLoadedMsg) {
	v.loading = false
	v.loaded = true
	v.errText = ""
	v.table.SetRows(msg.page.Results)
	v.table.SetTotalCount(msg.page.Count)
	v.table.SyncPagination(pageIndexFor(msg.opts), v.table.State().PageSize)
}

// fail records a fetch error.
func (v *productsView) fail(err error) {
	v.loading = false
	v.errText = err.Error()
}

// View renders the screen.
func (v *productsView) View() string {
	if v.errText != "" {
		return v.theme.ErrorBox.Render(
			v.theme.ErrorTitle.Render("Could not load products") + "\n" +
				v.theme.ErrorMessage.Render(v.errText) + "\n" +
				v.theme.ErrorSuggestion.Render("press r to retry"))
	}
	if v.loading && !v.loaded {
		return v.theme.LoadingText.Render("loading products...")
	}
	out := v.table.View()
	if v.loading {
		out += "\n" + v.theme.LoadingText.Render("refreshing...")
	}
	return out
}

// =============================================================================
// SHARED LIST HELPERS
// =============================================================================

// listOptionsFor translates table state into API list parameters. Only the
// primary sort criterion is sent; the API orders by a single key.
func listOptionsFor(st table.ViewState, searchColumn string) model.ListOptions {
	opts := model.ListOptions{
		Search:   st.Filters[searchColumn],
		Page:     st.PageIndex + 1,
		PageSize: st.PageSize,
	}
	if len(st.Sort) > 0 {
		opts.SortBy = st.Sort[0].ColumnID
		opts.SortDirection = model.SortAsc
		if st.Sort[0].Desc {
			opts.SortDirection = model.SortDesc
		}
	}
	return opts
}

// pageIndexFor converts the 1-based wire page back to a table page index.
func pageIndexFor(opts model.ListOptions) int {
	if opts.Page > 0 {
		return opts.Page - 1
	}
	return 0
}
