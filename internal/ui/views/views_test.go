// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/storefront-tui/internal/model"
	"github.com/jeranaias/storefront-tui/internal/table"
	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

func TestListOptionsForMapsState(t *testing.T) {
	st := table.NewViewState(20)
	st.PageIndex = 3
	st.SetFilter("name", "latte")
	st.PageIndex = 3 // SetFilter resets; restore for the mapping test
	st.ToggleSort("price")
	st.ToggleSort("price") // descending

	opts := listOptionsFor(st, "name")
	if opts.Page != 4 {
		t.Errorf("Page = %d, want 1-based 4", opts.Page)
	}
	if opts.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", opts.PageSize)
	}
	if opts.Search != "latte" {
		t.Errorf("Search = %q, want latte", opts.Search)
	}
	if opts.SortBy != "price" || opts.SortDirection != model.SortDesc {
		t.Errorf("sort = %s %s, want price desc", opts.SortBy, opts.SortDirection)
	}
}

func TestListOptionsForNoSort(t *testing.T) {
	opts := listOptionsFor(table.NewViewState(10), "name")
	if opts.SortBy != "" {
		t.Errorf("SortBy = %q for unsorted state, want empty", opts.SortBy)
	}
	if opts.Page != 1 {
		t.Errorf("Page = %d, want 1", opts.Page)
	}
}

func TestPageIndexFor(t *testing.T) {
	if got := pageIndexFor(model.ListOptions{Page: 5}); got != 4 {
		t.Errorf("pageIndexFor(5) = %d, want 4", got)
	}
	if got := pageIndexFor(model.ListOptions{}); got != 0 {
		t.Errorf("pageIndexFor(zero) = %d, want 0", got)
	}
}

func TestLoginViewValidation(t *testing.T) {
	v := newLoginView(styles.NewTheme())

	// Enter on the last empty field must not submit.
	v.setFocus(fieldPassword)
	cmd := v.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, nil)
	if cmd != nil {
		t.Error("empty form produced a submit command")
	}
	if v.errText == "" {
		t.Error("empty form did not set an error")
	}
}

func TestLoginViewRegisterPasswordMismatch(t *testing.T) {
	v := newLoginView(styles.NewTheme())
	v.setMode(true)

	v.inputs[regFieldUsername].SetValue("casey")
	v.inputs[regFieldEmail].SetValue("casey@example.com")
	v.inputs[regFieldPassword].SetValue("hunter22")
	v.inputs[regFieldConfirm].SetValue("hunter23")
	v.setFocus(regFieldConfirm)

	cmd := v.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, nil)
	if cmd != nil {
		t.Error("mismatched passwords produced a submit command")
	}
	if !strings.Contains(v.errText, "match") {
		t.Errorf("errText = %q, want password mismatch message", v.errText)
	}
}

func TestLoginViewModeSwitchResetsForm(t *testing.T) {
	v := newLoginView(styles.NewTheme())
	if len(v.inputs) != loginFieldCount {
		t.Fatalf("login mode has %d fields, want %d", len(v.inputs), loginFieldCount)
	}

	v.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlR}, nil)
	if !v.registering {
		t.Fatal("ctrl+r did not enter register mode")
	}
	if len(v.inputs) != registerFieldCount {
		t.Fatalf("register mode has %d fields, want %d", len(v.inputs), registerFieldCount)
	}

	v.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlR}, nil)
	if v.registering {
		t.Error("second ctrl+r did not return to login mode")
	}
}

func TestProductColumnsRenderValues(t *testing.T) {
	p := model.Product{
		Name:     "Espresso Beans",
		SKU:      "SKU-100",
		Price:    12.5,
		IsActive: true,
		Category: &model.Category{Name: "Coffee"},
	}

	got := map[string]string{}
	for _, c := range productColumns() {
		got[c.ID] = c.Value(p)
	}
	if got["name"] != "Espresso Beans" {
		t.Errorf("name = %q", got["name"])
	}
	if got["price"] != "12.50" {
		t.Errorf("price = %q, want 12.50", got["price"])
	}
	if got["category__name"] != "Coffee" {
		t.Errorf("category = %q, want Coffee", got["category__name"])
	}
	if got["is_active"] != "yes" {
		t.Errorf("is_active = %q, want yes", got["is_active"])
	}
}

func TestProductColumnsMissingCategory(t *testing.T) {
	for _, c := range productColumns() {
		if c.ID != "category__name" {
			continue
		}
		if got := c.Value(model.Product{}); got != "-" {
			t.Errorf("category for nil = %q, want -", got)
		}
	}
}
