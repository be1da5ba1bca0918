// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package table

import (
	"fmt"
	"strconv"
	"testing"
)

type item struct {
	Name  string
	Group string
	Qty   int
}

func itemColumns() []Column[item] {
	return []Column[item]{
		{ID: "name", Title: "Name", Value: func(i item) string { return i.Name }},
		{ID: "group", Title: "Group", Value: func(i item) string { return i.Group }},
		{
			ID:    "qty",
			Title: "Qty",
			Value: func(i item) string { return strconv.Itoa(i.Qty) },
			Compare: func(a, b item) int {
				return a.Qty - b.Qty
			},
		},
	}
}

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			Name:  fmt.Sprintf("item-%02d", i),
			Group: []string{"food", "drink", "misc"}[i%3],
			Qty:   (n - i) * 3,
		}
	}
	return items
}

func TestDeriveViewPagination(t *testing.T) {
	rows := makeItems(23)
	st := NewViewState(10)

	v := DeriveView(rows, itemColumns(), st)
	if v.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", v.PageCount)
	}
	if len(v.Rows) != 10 {
		t.Errorf("page 0 has %d rows, want 10", len(v.Rows))
	}

	st.PageIndex = 2
	v = DeriveView(rows, itemColumns(), st)
	if len(v.Rows) != 3 {
		t.Errorf("last page has %d rows, want 3", len(v.Rows))
	}
	if v.Rows[0].Name != "item-20" {
		t.Errorf("last page starts at %q, want item-20", v.Rows[0].Name)
	}
}

func TestDeriveViewClampsPageIndex(t *testing.T) {
	rows := makeItems(23)
	st := NewViewState(10)
	st.PageIndex = 99

	v := DeriveView(rows, itemColumns(), st)
	if v.PageIndex != 2 {
		t.Errorf("PageIndex = %d, want clamp to 2", v.PageIndex)
	}
	if len(v.Rows) != 3 {
		t.Errorf("clamped page has %d rows, want 3", len(v.Rows))
	}
}

func TestDeriveViewDoesNotMutateInput(t *testing.T) {
	rows := makeItems(10)
	first := rows[0].Name
	st := NewViewState(10)
	st.ToggleSort("qty")

	DeriveView(rows, itemColumns(), st)
	if rows[0].Name != first {
		t.Errorf("input slice reordered: rows[0] = %q, want %q", rows[0].Name, first)
	}
}

func TestToggleSortCycle(t *testing.T) {
	rows := makeItems(6)
	cols := itemColumns()
	st := NewViewState(10)

	// First toggle: ascending by qty.
	st.ToggleSort("qty")
	v := DeriveView(rows, cols, st)
	if v.Rows[0].Qty != 3 {
		t.Errorf("ascending first row Qty = %d, want 3", v.Rows[0].Qty)
	}

	// Second toggle: descending.
	st.ToggleSort("qty")
	v = DeriveView(rows, cols, st)
	if v.Rows[0].Qty != 18 {
		t.Errorf("descending first row Qty = %d, want 18", v.Rows[0].Qty)
	}

	// Third toggle: removed; insertion order restored.
	st.ToggleSort("qty")
	if len(st.Sort) != 0 {
		t.Fatalf("sort chain not empty after third toggle: %v", st.Sort)
	}
	v = DeriveView(rows, cols, st)
	for i, row := range v.Rows {
		if row.Name != fmt.Sprintf("item-%02d", i) {
			t.Errorf("row %d = %q, insertion order not restored", i, row.Name)
		}
	}
}

func TestMultiColumnSortIsLexicographic(t *testing.T) {
	rows := []item{
		{Name: "d", Group: "b", Qty: 1},
		{Name: "a", Group: "a", Qty: 2},
		{Name: "c", Group: "b", Qty: 3},
		{Name: "b", Group: "a", Qty: 4},
	}
	st := NewViewState(10)
	st.ToggleSort("group")
	st.ToggleSort("name")

	v := DeriveView(rows, itemColumns(), st)
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if v.Rows[i].Name != w {
			t.Errorf("row %d = %q, want %q", i, v.Rows[i].Name, w)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	rows := []item{
		{Name: "first", Group: "same"},
		{Name: "second", Group: "same"},
		{Name: "third", Group: "same"},
	}
	st := NewViewState(10)
	st.ToggleSort("group")

	v := DeriveView(rows, itemColumns(), st)
	if v.Rows[0].Name != "first" || v.Rows[2].Name != "third" {
		t.Errorf("equal rows reordered: %v", v.Rows)
	}
}

func TestSetFilterResetsPage(t *testing.T) {
	st := NewViewState(10)
	st.PageIndex = 4
	st.SetFilter("name", "item")
	if st.PageIndex != 0 {
		t.Errorf("PageIndex = %d after SetFilter, want 0", st.PageIndex)
	}
}

func TestSetPageSizeResetsPageAndClamps(t *testing.T) {
	st := NewViewState(10)
	st.PageIndex = 2
	st.SetPageSize(50)
	if st.PageIndex != 0 {
		t.Errorf("PageIndex = %d after SetPageSize, want 0", st.PageIndex)
	}
	if st.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", st.PageSize)
	}

	st.SetPageSize(7)
	if st.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d after invalid size, want default %d", st.PageSize, DefaultPageSize)
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	rows := []item{
		{Name: "Espresso Machine"},
		{Name: "drip kettle"},
		{Name: "French Press"},
	}
	st := NewViewState(10)
	st.SetFilter("name", "PRESS")

	v := DeriveView(rows, itemColumns(), st)
	if v.FilteredCount != 2 {
		t.Fatalf("FilteredCount = %d, want 2", v.FilteredCount)
	}
	if v.Rows[0].Name != "Espresso Machine" || v.Rows[1].Name != "French Press" {
		t.Errorf("unexpected filtered rows: %v", v.Rows)
	}

	// Clearing the filter restores everything.
	st.SetFilter("name", "")
	v = DeriveView(rows, itemColumns(), st)
	if v.FilteredCount != 3 {
		t.Errorf("FilteredCount = %d after clear, want 3", v.FilteredCount)
	}
}

func TestFilterCombinesAcrossColumns(t *testing.T) {
	rows := makeItems(12)
	st := NewViewState(100)
	st.SetFilter("group", "food")
	st.SetFilter("name", "0")

	v := DeriveView(rows, itemColumns(), st)
	for _, row := range v.Rows {
		if row.Group != "food" {
			t.Errorf("row %q fails group filter", row.Name)
		}
	}
}

func TestFilterOnUnknownColumnIsIgnored(t *testing.T) {
	rows := makeItems(5)
	st := NewViewState(10)
	st.SetFilter("missing", "whatever")

	v := DeriveView(rows, itemColumns(), st)
	if v.FilteredCount != 5 {
		t.Errorf("FilteredCount = %d, want all 5", v.FilteredCount)
	}
}

func TestEmptyFilteredSet(t *testing.T) {
	rows := makeItems(5)
	st := NewViewState(10)
	st.SetFilter("name", "nomatch")

	v := DeriveView(rows, itemColumns(), st)
	if v.FilteredCount != 0 || len(v.Rows) != 0 {
		t.Errorf("expected empty view, got %d rows", len(v.Rows))
	}
	if v.PageCount != 0 {
		t.Errorf("PageCount = %d for empty set, want 0", v.PageCount)
	}
}

func TestClampPageSize(t *testing.T) {
	for _, opt := range PageSizeOptions {
		if got := ClampPageSize(opt); got != opt {
			t.Errorf("ClampPageSize(%d) = %d", opt, got)
		}
	}
	if got := ClampPageSize(0); got != DefaultPageSize {
		t.Errorf("ClampPageSize(0) = %d, want %d", got, DefaultPageSize)
	}
	if got := ClampPageSize(33); got != DefaultPageSize {
		t.Errorf("ClampPageSize(33) = %d, want %d", got, DefaultPageSize)
	}
}

func TestToggleHidden(t *testing.T) {
	st := NewViewState(10)
	st.ToggleHidden("qty")
	if !st.Hidden["qty"] {
		t.Error("column not hidden after toggle")
	}
	st.ToggleHidden("qty")
	if st.Hidden["qty"] {
		t.Error("column still hidden after second toggle")
	}
}

func TestDeriveViewIsDeterministic(t *testing.T) {
	rows := makeItems(30)
	st := NewViewState(10)
	st.ToggleSort("group")
	st.SetFilter("name", "item")
	st.PageIndex = 1

	a := DeriveView(rows, itemColumns(), st)
	b := DeriveView(rows, itemColumns(), st)
	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		if a.Rows[i] != b.Rows[i] {
			t.Errorf("row %d differs between identical derivations", i)
		}
	}
}
