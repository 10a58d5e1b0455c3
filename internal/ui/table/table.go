// Package table wraps the bubbles table so that its columns always follow an
// ordered list of visible columns.
package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/pkg/columns"
)

// Column and Row are re-exported so callers need not import bubbles.
type Column = bubtable.Column
type Row = bubtable.Row

// Model displays rows of V under the current column layout.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V

	layout []columns.Column
	hints  map[columns.Column]formatter.ColumnHint

	cell    func(V, columns.Column) string
	keyFunc func(V) string

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a table. cell renders one value under one column and
// keyFunc extracts the text matched by SetFilter.
func NewModel[V any](cell func(V, columns.Column) string, keyFunc func(V) string) *Model[V] {
	t := bubtable.New(
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.
		PaddingLeft(0).
		PaddingRight(0)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	t.SetStyles(s)

	return &Model[V]{
		table:    t,
		styles:   s,
		rows:     []V{},
		filtered: []V{},
		layout:   []columns.Column{},
		cell:     cell,
		keyFunc:  keyFunc,
		width:    80,
		height:   10,
		focused:  true,
	}
}

// SetLayout replaces the displayed columns, in order, and re-renders rows.
func (m *Model[V]) SetLayout(cols []columns.Column, hints map[columns.Column]formatter.ColumnHint) {
	m.layout = append([]columns.Column(nil), cols...)
	m.hints = hints
	m.refresh()
}

// Layout returns the displayed columns in order.
func (m *Model[V]) Layout() []columns.Column {
	return append([]columns.Column(nil), m.layout...)
}

// Columns returns the bubbles column definitions currently in use.
func (m *Model[V]) Columns() []Column {
	return m.table.Columns()
}

// SetRows replaces the row data.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.refresh()
}

// Rows returns the rows left after filtering.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// AllRows returns every row.
func (m *Model[V]) AllRows() []V {
	return m.rows
}

// SetFilter keeps rows whose key starts with filter (case-insensitive).
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.refresh()
}

func (m *Model[V]) Filter() string {
	return m.filter
}

func (m *Model[V]) ClearFilter() {
	m.SetFilter("")
}

// ColumnsFor sizes one bubbles column per visible column. Each column gets
// its natural width (header vs. widest cell) under hints, shrunk to fit
// width when width > 0.
func ColumnsFor(cols []columns.Column, cells [][]string, hints map[columns.Column]formatter.ColumnHint, width int) []Column {
	headers := make([]string, len(cols))
	hs := make([]formatter.ColumnHint, len(cols))
	for i, c := range cols {
		headers[i] = formatter.Header(c, hints)
		hs[i] = hints[c]
	}
	widths := formatter.ColumnWidths(headers, cells, width, hs)
	out := make([]Column, len(cols))
	for i := range cols {
		out[i] = Column{Title: headers[i], Width: widths[i]}
	}
	return out
}

func (m *Model[V]) refresh() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		want := strings.ToLower(m.filter)
		m.filtered = []V{}
		for _, row := range m.rows {
			if strings.HasPrefix(strings.ToLower(m.keyFunc(row)), want) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	cells := make([][]string, len(m.filtered))
	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		r := make(Row, len(m.layout))
		for j, c := range m.layout {
			r[j] = m.cell(row, c)
		}
		cells[i] = r
		tableRows[i] = r
	}

	// Rows must be cleared before shrinking the column count, otherwise
	// bubbles renders stale cells against the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(ColumnsFor(m.layout, cells, m.hints, m.width))
	m.table.SetRows(tableRows)
	m.applyColorScheme()

	if len(m.filtered) > 0 && (m.Cursor() < 0 || m.Cursor() >= len(m.filtered)) {
		m.SetCursor(0)
	}
}

func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the row under the cursor, or nil when empty.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize sets the table dimensions and re-fits the columns to width.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	m.refresh()
}

func (m *Model[V]) SetHeight(height int) {
	m.SetSize(m.width, height)
}

func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

func (m *Model[V]) Focused() bool {
	return m.focused
}

// SetNoColor enables/disables color output.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets custom theme colors. nil leaves a color unchanged.
func (m *Model[V]) SetColors(headerFG, headerBG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles

	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground().UnsetBold().UnsetBorderForeground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.headerBG != nil {
			s.Header = s.Header.Background(m.headerBG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}

	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards navigation keys to the bubbles table.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model[V]) View() string {
	return m.table.View()
}

// Height returns the rendered height including the header.
func (m *Model[V]) Height() int {
	return lipgloss.Height(m.View())
}

// Width returns the rendered width.
func (m *Model[V]) Width() int {
	return lipgloss.Width(m.View())
}

func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[cols=%d, rows=%d, filtered=%d, cursor=%d, filter=%q]",
		len(m.layout), len(m.rows), len(m.filtered), m.Cursor(), m.filter)
}
