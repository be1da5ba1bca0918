// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package table provides a reusable, type-parametric data table.
package table

import (
	"sort"
	"strings"
)

// PageSizeOptions is the fixed rows-per-page choice set.
var PageSizeOptions = []int{5, 10, 20, 50, 100}

// DefaultPageSize is used when the caller supplies no page size.
const DefaultPageSize = 10

// =============================================================================
// COLUMN TYPE
// =============================================================================

// Column describes one column over rows of type T.
type Column[T any] struct {
	// ID uniquely identifies the column within the table.
	ID string

	// Title is the header label.
	Title string

	// Value extracts the cell text for a row. It drives rendering and the
	// default sort/filter behavior.
	Value func(row T) string

	// Compare, if set, overrides the default string comparison for sorting.
	// It returns <0, 0, >0 like strings.Compare.
	Compare func(a, b T) int

	// Filter, if set, overrides the default case-insensitive substring
	// containment for this column's filter value.
	Filter func(row T, value string) bool

	// Width is a rendering hint in cells; 0 means size to content.
	Width int
}

// matches applies the column's filter predicate.
func (c Column[T]) matches(row T, value string) bool {
	if c.Filter != nil {
		return c.Filter(row, value)
	}
	return strings.Contains(strings.ToLower(c.Value(row)), strings.ToLower(value))
}

// compare applies the column's sort comparison.
func (c Column[T]) compare(a, b T) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return strings.Compare(c.Value(a), c.Value(b))
}

// =============================================================================
// VIEW STATE
// =============================================================================

// SortCriterion is one (column, direction) element of the sort chain.
type SortCriterion struct {
	ColumnID string
	Desc     bool
}

// ViewState is the ephemeral per-table state driving derivation.
//
// Sort is an ordered chain: rows are compared by the first criterion, ties
// by the second, and so on. An empty chain means insertion order. Filters
// maps column ID to filter value; absent means unfiltered. Hidden maps
// column ID to hidden; absent means shown. The free-text search is stored as
// an ordinary filter on the designated search column.
type ViewState struct {
	Sort      []SortCriterion
	Filters   map[string]string
	Hidden    map[string]bool
	PageIndex int
	PageSize  int
}

// NewViewState creates a state with the given page size (clamped to the
// allowed choice set) and everything else zeroed.
func NewViewState(pageSize int) ViewState {
	return ViewState{
		Filters:  make(map[string]string),
		Hidden:   make(map[string]bool),
		PageSize: ClampPageSize(pageSize),
	}
}

// ClampPageSize snaps a page size to the fixed choice set, defaulting when
// the value matches none.
func ClampPageSize(size int) int {
	for _, opt := range PageSizeOptions {
		if size == opt {
			return size
		}
	}
	return DefaultPageSize
}

// ToggleSort cycles a column through ascending -> descending -> unsorted.
// A column entering the chain is appended, keeping earlier criteria ahead of
// it in the lexicographic order.
func (st *ViewState) ToggleSort(columnID string) {
	for i, c := range st.Sort {
		if c.ColumnID != columnID {
			continue
		}
		if !c.Desc {
			st.Sort[i].Desc = true
			return
		}
		// Third toggle: drop the criterion entirely.
		st.Sort = append(st.Sort[:i], st.Sort[i+1:]...)
		return
	}
	st.Sort = append(st.Sort, SortCriterion{ColumnID: columnID})
}

// SetFilter sets or clears a column filter and resets to the first page.
func (st *ViewState) SetFilter(columnID, value string) {
	if st.Filters == nil {
		st.Filters = make(map[string]string)
	}
	if value == "" {
		delete(st.Filters, columnID)
	} else {
		st.Filters[columnID] = value
	}
	st.PageIndex = 0
}

// SetPageSize changes the rows-per-page and resets to the first page.
func (st *ViewState) SetPageSize(size int) {
	st.PageSize = ClampPageSize(size)
	st.PageIndex = 0
}

// ToggleHidden flips a column's visibility.
func (st *ViewState) ToggleHidden(columnID string) {
	if st.Hidden == nil {
		st.Hidden = make(map[string]bool)
	}
	st.Hidden[columnID] = !st.Hidden[columnID]
}

// =============================================================================
// DERIVATION
// =============================================================================

// View is the result of one derivation pass.
type View[T any] struct {
	// Rows is the visible page, in final order.
	Rows []T

	// PageIndex is the effective (clamped) page index.
	PageIndex int

	// PageCount is the number of pages over the filtered set. Zero when the
	// filtered set is empty.
	PageCount int

	// FilteredCount is the row count after filtering, before pagination.
	FilteredCount int
}

// DeriveView computes the visible page from the full row set. It is pure:
// the input slice is never reordered, and calling it again with equal inputs
// yields an equal result.
//
// Filtering runs first, then sorting, then pagination. The sort is stable:
// rows comparing equal under the active chain keep their original relative
// order, so toggling a sort off restores insertion order exactly.
func DeriveView[T any](rows []T, cols []Column[T], st ViewState) View[T] {
	byID := make(map[string]Column[T], len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}

	// Filter.
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, byID, st.Filters) {
			filtered = append(filtered, row)
		}
	}

	// Sort: lexicographic chain, stable.
	criteria := make([]Column[T], 0, len(st.Sort))
	descs := make([]bool, 0, len(st.Sort))
	for _, c := range st.Sort {
		col, ok := byID[c.ColumnID]
		if !ok {
			continue
		}
		criteria = append(criteria, col)
		descs = append(descs, c.Desc)
	}
	if len(criteria) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			for k, col := range criteria {
				cmp := col.compare(filtered[i], filtered[j])
				if cmp == 0 {
					continue
				}
				if descs[k] {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	// Paginate.
	pageSize := st.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageCount := (len(filtered) + pageSize - 1) / pageSize

	pageIndex := st.PageIndex
	if pageIndex >= pageCount {
		pageIndex = pageCount - 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return View[T]{
		Rows:          filtered[start:end],
		PageIndex:     pageIndex,
		PageCount:     pageCount,
		FilteredCount: len(filtered),
	}
}

// rowMatches reports whether a row passes every active column filter.
// Filters naming unknown columns are ignored.
func rowMatches[T any](row T, byID map[string]Column[T], filters map[string]string) bool {
	for columnID, value := range filters {
		if value == "" {
			continue
		}
		col, ok := byID[columnID]
		if !ok {
			continue
		}
		if !col.matches(row, value) {
			return false
		}
	}
	return true
}
