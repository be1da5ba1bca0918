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
// TRANSACTIONS VIEW (SERVER-PAGINATED)
// =============================================================================

// transactionsView lists till movements through the server-driven table.
type transactionsView struct {
	theme   *styles.Theme
	client  *api.Client
	table   *table.Model[model.Transaction]
	loading bool
	loaded  bool
	errText string
}

// transactionColumns maps transaction fields onto table columns. IDs double
// as the API ordering keys.
func transactionColumns() []table.Column[model.Transaction] {
	return []table.Column[model.Transaction]{
		{ID: "transaction_date", Title: "Date", Value: func(t model.Transaction) string {
			return t.TransactionDate.Format("2006-01-02 15:04")
		}, Width: 18},
		{ID: "transaction_type", Title: "Type", Value: func(t model.Transaction) string {
			return string(t.TransactionType)
		}, Width: 12},
		{ID: "amount", Title: "Amount", Value: func(t model.Transaction) string {
			return fmt.Sprintf("%.2f", t.Amount)
		}, Width: 12},
		{ID: "payment_method", Title: "Payment", Value: func(t model.Transaction) string {
			return string(t.PaymentMethod)
		}, Width: 14},
		{ID: "reference_number", Title: "Reference", Value: func(t model.Transaction) string {
			if t.ReferenceNumber == "" {
				return "-"
			}
			return t.ReferenceNumber
		}, Width: 16},
	}
}

// newTransactionsView creates the view with an unloaded server-mode table.
func newTransactionsView(theme *styles.Theme, client *api.Client, pageSize int) *transactionsView {
	v := &transactionsView{theme: theme, client: client}
	v.table = table.New(transactionColumns(), theme, table.Options{
		ServerPagination: true,
		TotalCount:       -1,
		PageSize:         pageSize,
		SearchColumn:     "reference_number",
		OnChange: func(st table.ViewState) tea.Cmd {
			v.loading = true
			return fetchTransactionsCmd(client, listOptionsFor(st, "reference_number"))
		},
	})
	return v
}

// Enter triggers the initial fetch the first time the view gains focus.
func (v *transactionsView) Enter() tea.Cmd {
	if v.loaded || v.loading {
		return nil
	}
	v.loading = true
	return fetchTransactionsCmd(v.client, listOptionsFor(v.table.State(), "reference_number"))
}

// Refresh refetches the current page.
func (v *transactionsView) Refresh() tea.Cmd {
	v.loading = true
	return fetchTransactionsCmd(v.client, listOptionsFor(v.table.State(), "reference_number"))
}

// HandleKey forwards keys to the table.
func (v *transactionsView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "r" && !v.table.Searching() {
		return v.Refresh()
	}
	return v.table.HandleKey(msg)
}

// apply installs a fetched page into the table.
func (v *transactionsView) apply(msg transactionsLoadedMsg) {
	v.loading = false
	v.loaded = true
	v.errText = ""
	v.table.SetRows(msg.page.Results)
	v.table.SetTotalCount(msg.page.Count)
	v.table.SyncPagination(pageIndexFor(msg.opts), v.table.State().PageSize)
}

// fail records a fetch error.
func (v *transactionsView) fail(err error) {
	v.loading = false
	v.errText = err.Error()
}

// View renders the screen.
func (v *transactionsView) View() string {
	if v.errText != "" {
		return v.theme.ErrorBox.Render(
			v.theme.ErrorTitle.Render("Could not load transactions") + "\n" +
				v.theme.ErrorMessage.Render(v.errText) + "\n" +
				v.theme.ErrorSuggestion.Render("press r to retry"))
	}
	if v.loading && !v.loaded {
		return v.theme.LoadingText.Render("loading transactions...")
	}
	out := v.table.View()
	if v.loading {
		out += "\n" + v.theme.LoadingText.Render("refreshing...")
	}
	return out
}
