// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/api"
	"github.com/jeranaias/storefront-tui/internal/config"
	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/router"
)

// =============================================================================
// DATA MESSAGES
// =============================================================================

// productsLoadedMsg carries one fetched page of products.
type productsLoadedMsg struct {
	page *model.Page[model.Product]
	opts model.ListOptions
}

// transactionsLoadedMsg carries one fetched page of transactions.
type transactionsLoadedMsg struct {
	page *model.Page[model.Transaction]
	opts model.ListOptions
}

// storesLoadedMsg carries the full store list.
type storesLoadedMsg struct {
	stores []model.Store
}

// profileLoadedMsg carries a refreshed user profile.
type profileLoadedMsg struct {
	user *model.User
}

// dataErrMsg reports a failed fetch for a route.
type dataErrMsg struct {
	route router.RouteID
	err   error
}

// ConfigReloadedMsg announces that the configuration file changed on disk.
// The watcher in main sends it into the running program.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// FETCH COMMANDS
// =============================================================================

// fetchProductsCmd requests one page of products.
func fetchProductsCmd(client *api.Client, opts model.ListOptions) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListProducts(context.Background(), opts)
		if err != nil {
			return dataErrMsg{route: router.RouteProducts, err: err}
		}
		return productsLoadedMsg{page: page, opts: opts}
	}
}

// fetchTransactionsCmd requests one page of transactions.
func fetchTransactionsCmd(client *api.Client, opts model.ListOptions) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListTransactions(context.Background(), opts)
		if err != nil {
			return dataErrMsg{route: router.RouteTransactions, err: err}
		}
		return transactionsLoadedMsg{page: page, opts: opts}
	}
}

// fetchStoresCmd requests every store. Store counts are small enough to page
// client-side, so this pulls the largest page the API allows.
func fetchStoresCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListStores(context.Background(), model.ListOptions{PageSize: 100})
		if err != nil {
			return dataErrMsg{route: router.RouteStores, err: err}
		}
		return storesLoadedMsg{stores: page.Results}
	}
}

// fetchProfileCmd refreshes the signed-in user's profile.
func fetchProfileCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		user, err := client.Profile(context.Background())
		if err != nil {
			return dataErrMsg{route: router.RouteProfile, err: err}
		}
		return profileLoadedMsg{user: user}
	}
}
