// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/storefront-tui/internal/ui/styles"
)

// =============================================================================
// TABLE COMPONENT
// =============================================================================

// Options configures a table component.
type Options struct {
	// ServerPagination switches the component to server-driven mode: rows
	// passed to SetRows are rendered as-is (already one page), and paging,
	// sorting, and search changes are reported through OnChange instead of
	// being applied locally.
	ServerPagination bool

	// TotalCount is the server-reported total row count across all pages.
	// Negative means unknown. Only used in server mode.
	TotalCount int

	// OnChange is invoked after any state change that requires a refetch in
	// server mode (page, page size, sort, search). Nil disables callbacks.
	OnChange func(st ViewState) tea.Cmd

	// SearchColumn is the column ID the free-text search box filters on.
	SearchColumn string

	// PageSize is the initial rows-per-page, clamped to PageSizeOptions.
	PageSize int
}

// Model is an interactive data table over rows of type T.
//
// It is parent-driven: the owning view forwards key messages to HandleKey
// and embeds View() in its own output. The component never talks to the
// network; server mode callers refetch through Options.OnChange.
type Model[T any] struct {
	cols  []Column[T]
	rows  []T
	state ViewState
	opts  Options
	theme *styles.Theme

	cursor    int
	width     int
	searching bool
	search    textinput.Model
}

// New creates a table over the given columns.
func New[T any](cols []Column[T], theme *styles.Theme, opts Options) *Model[T] {
	search := textinput.New()
	search.Placeholder = "search..."
	search.Prompt = "/ "
	search.CharLimit = 120

	return &Model[T]{
		cols:   cols,
		state:  NewViewState(opts.PageSize),
		opts:   opts,
		theme:  theme,
		search: search,
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetRows replaces the row set. In client mode this is the full data set;
// in server mode it is the current page as returned by the server.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = 0
	}
}

// SetSize sets the component width in cells.
func (m *Model[T]) SetSize(width int) {
	m.width = width
}

// SetTotalCount updates the server-reported total row count. Negative means
// unknown, which disables forward paging in server mode.
func (m *Model[T]) SetTotalCount(n int) {
	m.opts.TotalCount = n
}

// SyncPagination resyncs the display page and page size from the caller,
// for server mode where the response is the source of truth.
func (m *Model[T]) SyncPagination(pageIndex, pageSize int) {
	m.state.PageIndex = pageIndex
	m.state.PageSize = ClampPageSize(pageSize)
}

// State returns a copy of the current view state.
func (m *Model[T]) State() ViewState {
	return m.state
}

// Searching reports whether the search box currently owns key input.
func (m *Model[T]) Searching() bool {
	return m.searching
}

// SelectedRow returns the row under the cursor on the visible page.
func (m *Model[T]) SelectedRow() (T, bool) {
	var zero T
	visible := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return zero, false
	}
	return visible[m.cursor], true
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// HandleKey processes a key message. The returned command is non-nil only
// when a server-mode refetch is needed.
func (m *Model[T]) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}
	case "left", "h":
		return m.prevPage()
	case "right", "l":
		return m.nextPage()
	case "g", "home":
		return m.firstPage()
	case "G", "end":
		return m.lastPage()
	case "[":
		return m.cyclePageSize(-1)
	case "]":
		return m.cyclePageSize(1)
	case "/":
		if m.opts.SearchColumn != "" {
			m.searching = true
			m.search.Focus()
		}
	case "esc":
		if m.activeSearchValue() != "" {
			return m.commitSearch("")
		}
	default:
		// Digits 1-9 toggle sort on the corresponding visible column.
		if n := digitKey(msg.String()); n > 0 {
			if id, ok := m.columnIDAt(n - 1); ok {
				return m.toggleSort(id)
			}
		}
	}
	return nil
}

// handleSearchKey routes keys to the search input while it has focus.
func (m *Model[T]) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m.commitSearch(m.search.Value())
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.activeSearchValue())
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// digitKey returns the numeric value of a single-digit key, or 0.
func digitKey(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}

// columnIDAt returns the ID of the i-th visible column.
func (m *Model[T]) columnIDAt(i int) (string, bool) {
	visible := m.visibleColumns()
	if i < 0 || i >= len(visible) {
		return "", false
	}
	return visible[i].ID, true
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

// toggleSort advances a column through the ascending/descending/unsorted
// cycle and, in server mode, requests a refetch from the first page.
func (m *Model[T]) toggleSort(columnID string) tea.Cmd {
	m.state.ToggleSort(columnID)
	if m.opts.ServerPagination {
		m.state.PageIndex = 0
		return m.changed()
	}
	return nil
}

// commitSearch applies a search value to the designated column.
func (m *Model[T]) commitSearch(value string) tea.Cmd {
	if m.opts.SearchColumn == "" {
		return nil
	}
	m.search.SetValue(value)
	m.state.SetFilter(m.opts.SearchColumn, value)
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// activeSearchValue returns the committed search value.
func (m *Model[T]) activeSearchValue() string {
	return m.state.Filters[m.opts.SearchColumn]
}

// prevPage moves one page back.
func (m *Model[T]) prevPage() tea.Cmd {
	if m.state.PageIndex == 0 {
		return nil
	}
	m.state.PageIndex--
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// nextPage moves one page forward when a next page is known to exist.
func (m *Model[T]) nextPage() tea.Cmd {
	if !m.hasNextPage() {
		return nil
	}
	m.state.PageIndex++
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// firstPage jumps back to page zero.
func (m *Model[T]) firstPage() tea.Cmd {
	if m.state.PageIndex == 0 {
		return nil
	}
	m.state.PageIndex = 0
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// lastPage jumps to the final page. In server mode an unknown total makes
// the boundary unreachable, same as nextPage.
func (m *Model[T]) lastPage() tea.Cmd {
	last := m.lastPageIndex()
	if last < 0 || m.state.PageIndex == last {
		return nil
	}
	m.state.PageIndex = last
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// lastPageIndex returns the index of the final page, or -1 when it is not
// known.
func (m *Model[T]) lastPageIndex() int {
	if m.opts.ServerPagination {
		if m.opts.TotalCount < 0 {
			return -1
		}
		return pageCountFor(m.opts.TotalCount, m.state.PageSize) - 1
	}
	v := DeriveView(m.rows, m.cols, m.state)
	return v.PageCount - 1
}

// hasNextPage reports whether forward paging is allowed. In server mode an
// unknown total disables it outright.
func (m *Model[T]) hasNextPage() bool {
	if m.opts.ServerPagination {
		if m.opts.TotalCount < 0 {
			return false
		}
		return (m.state.PageIndex+1)*m.state.PageSize < m.opts.TotalCount
	}
	v := DeriveView(m.rows, m.cols, m.state)
	return v.PageIndex+1 < v.PageCount
}

// cyclePageSize steps through the fixed page-size options.
func (m *Model[T]) cyclePageSize(dir int) tea.Cmd {
	cur := 0
	for i, opt := range PageSizeOptions {
		if opt == m.state.PageSize {
			cur = i
			break
		}
	}
	next := cur + dir
	if next < 0 || next >= len(PageSizeOptions) {
		return nil
	}
	m.state.SetPageSize(PageSizeOptions[next])
	m.cursor = 0
	if m.opts.ServerPagination {
		return m.changed()
	}
	return nil
}

// changed emits the server-mode refetch callback.
func (m *Model[T]) changed() tea.Cmd {
	if m.opts.OnChange == nil {
		return nil
	}
	return m.opts.OnChange(m.state)
}

// =============================================================================
// RENDERING
// =============================================================================

// visibleColumns returns the columns not hidden by the view state, in
// declaration order.
func (m *Model[T]) visibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(m.cols))
	for _, c := range m.cols {
		if !m.state.Hidden[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// visibleRows returns the rows to render: the derived page in client mode,
// the given rows verbatim in server mode.
func (m *Model[T]) visibleRows() []T {
	if m.opts.ServerPagination {
		return m.rows
	}
	return DeriveView(m.rows, m.cols, m.state).Rows
}

// View renders the table: header, rows, and a pagination footer.
func (m *Model[T]) View() string {
	cols := m.visibleColumns()
	rows := m.visibleRows()

	widths := m.columnWidths(cols, rows)
	var b strings.Builder

	if m.searching || m.activeSearchValue() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHeader(cols, widths))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(m.renderEmpty(widths))
	} else {
		for i, row := range rows {
			b.WriteString(m.renderRow(cols, widths, row, i == m.cursor))
			if i < len(rows)-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// columnWidths computes per-column widths: the explicit hint when set,
// otherwise the widest of title and visible cells.
func (m *Model[T]) columnWidths(cols []Column[T], rows []T) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		w := runewidth.StringWidth(c.Title) + 2 // room for sort marker
		for _, row := range rows {
			if cw := runewidth.StringWidth(c.Value(row)); cw > w {
				w = cw
			}
		}
		widths[i] = w
	}
	return widths
}

// renderHeader renders the column titles with sort markers.
func (m *Model[T]) renderHeader(cols []Column[T], widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		title := c.Title
		style := m.theme.TableHeader
		if marker := m.sortMarker(c.ID); marker != "" {
			title += " " + marker
			style = m.theme.TableHeaderSort
		}
		cells[i] = style.Render(pad(title, widths[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// sortMarker returns the ASCII direction marker for a sorted column.
func (m *Model[T]) sortMarker(columnID string) string {
	for _, c := range m.state.Sort {
		if c.ColumnID == columnID {
			if c.Desc {
				return "v"
			}
			return "^"
		}
	}
	return ""
}

// renderRow renders one data row.
func (m *Model[T]) renderRow(cols []Column[T], widths []int, row T, selected bool) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = m.theme.TableCell.Render(pad(c.Value(row), widths[i]))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if selected {
		return m.theme.TableRowSelected.Render(line)
	}
	return line
}

// renderEmpty renders the single full-width placeholder row.
func (m *Model[T]) renderEmpty(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w + 2 // cell padding
	}
	return m.theme.TableEmpty.Width(total).Render("No results.")
}

// renderFooter renders the page indicator and navigation hints.
func (m *Model[T]) renderFooter() string {
	page := m.state.PageIndex + 1
	var pages string
	if m.opts.ServerPagination {
		if m.opts.TotalCount < 0 {
			pages = "?"
		} else {
			pages = fmt.Sprintf("%d", pageCountFor(m.opts.TotalCount, m.state.PageSize))
		}
	} else {
		v := DeriveView(m.rows, m.cols, m.state)
		pages = fmt.Sprintf("%d", v.PageCount)
		page = v.PageIndex + 1
	}

	prev := m.theme.PagerButton.Render("< prev")
	if m.state.PageIndex == 0 {
		prev = m.theme.PagerDisabled.Render("< prev")
	}
	next := m.theme.PagerButton.Render("next >")
	if !m.hasNextPage() {
		next = m.theme.PagerDisabled.Render("next >")
	}

	info := m.theme.TableFooter.Render(
		fmt.Sprintf("page %d/%s  %d per page", page, pages, m.state.PageSize))
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, " ", info, " ", next)
}

// pageCountFor computes the page count over a known total.
func pageCountFor(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (total + pageSize - 1) / pageSize
}

// pad truncates or right-pads a cell to the target display width.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}
