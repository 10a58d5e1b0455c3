// Package formatter renders rows for an ordered list of visible columns. The
// column order is whatever the caller passes in; nothing here reorders it.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

// Row is one record that can be projected onto any column.
type Row interface {
	// Cell returns the display text for c.
	Cell(c columns.Column) string
	// Value returns the typed value for c, used by structured outputs.
	Value(c columns.Column) any
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	separatorStyle = lipgloss.NewStyle().Faint(true)
)

const (
	sepWidth    = 2
	minColWidth = 3
	ellipsis    = "…"
)

// TableOptions configures RenderTable.
type TableOptions struct {
	// NoColor disables ANSI styling.
	NoColor bool

	// MaxWidth is the total width budget. 0 = natural width.
	MaxWidth int

	// RowNumbers prefixes each row with its 1-based index.
	RowNumbers bool

	// Hints holds per-column hints keyed by column.
	Hints map[columns.Column]ColumnHint
}

// Header returns the header text for c under hints.
func Header(c columns.Column, hints map[columns.Column]ColumnHint) string {
	if h, ok := hints[c]; ok && h.DisplayName != "" {
		return h.DisplayName
	}
	return c.Label()
}

// RenderTable renders rows as an aligned text table with one column per entry
// of cols, in that order. It returns "" when cols is empty.
func RenderTable(cols []columns.Column, rows []Row, opts TableOptions) string {
	if len(cols) == 0 {
		return ""
	}

	headers := make([]string, len(cols))
	hints := make([]ColumnHint, len(cols))
	for i, c := range cols {
		headers[i] = Header(c, opts.Hints)
		hints[i] = opts.Hints[c]
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			cells[r][i] = row.Cell(c)
		}
	}
	return RenderGrid(headers, cells, hints, opts)
}

// RenderGrid renders pre-formatted cells under headers. hints are positional;
// opts.Hints is ignored.
func RenderGrid(headers []string, cells [][]string, hints []ColumnHint, opts TableOptions) string {
	if len(headers) == 0 {
		return ""
	}

	rowNumWidth := 0
	if opts.RowNumbers {
		rowNumWidth = len(fmt.Sprintf("%d", len(cells)))
		if rowNumWidth < 1 {
			rowNumWidth = 1
		}
	}

	available := 0
	if opts.MaxWidth > 0 {
		available = opts.MaxWidth
		if opts.RowNumbers {
			available -= rowNumWidth + sepWidth
		}
	}
	widths := ColumnWidths(headers, cells, available, hints)

	var b strings.Builder
	b.WriteString(renderLine("#", headers, widths, rowNumWidth, opts.RowNumbers, hints, func(s string) string {
		if opts.NoColor {
			return s
		}
		return headerStyle.Render(s)
	}))
	b.WriteString("\n")

	total := 0
	for i, w := range widths {
		total += w
		if i > 0 {
			total += sepWidth
		}
	}
	if opts.RowNumbers {
		total += rowNumWidth + sepWidth
	}
	sep := strings.Repeat("─", total)
	if !opts.NoColor {
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(sep)
	b.WriteString("\n")

	for r, row := range cells {
		b.WriteString(renderLine(fmt.Sprintf("%d", r+1), row, widths, rowNumWidth, opts.RowNumbers, hints, nil))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLine(num string, values []string, widths []int, numWidth int, showNum bool, hints []ColumnHint, style func(string) string) string {
	parts := make([]string, 0, len(values)+1)
	if showNum {
		parts = append(parts, runewidth.FillLeft(num, numWidth))
	}
	for i, v := range values {
		w := widths[i]
		v = truncate(v, w)
		if hints != nil && hints[i].Align == "right" {
			v = runewidth.FillLeft(v, w)
		} else {
			v = runewidth.FillRight(v, w)
		}
		parts = append(parts, v)
	}
	line := strings.TrimRight(strings.Join(parts, strings.Repeat(" ", sepWidth)), " ")
	if style != nil {
		line = style(line)
	}
	return line
}

// ColumnWidths computes the width of each column: the widest of header and
// cells, capped by hint MaxWidth, then shrunk lowest-priority first until the
// total (with separators) fits available. available <= 0 means unlimited.
func ColumnWidths(headers []string, rows [][]string, available int, hints []ColumnHint) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if i < len(widths) {
				if w := lipgloss.Width(v); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i := range widths {
		if i < len(hints) && hints[i].MaxWidth > 0 && widths[i] > hints[i].MaxWidth {
			widths[i] = hints[i].MaxWidth
		}
	}
	if available <= 0 || len(widths) == 0 {
		return widths
	}
	return shrink(widths, available-(len(widths)-1)*sepWidth, hints)
}

// shrink reduces widths to fit usable, taking from the lowest-priority
// columns first and, within a priority, from the widest. No column drops
// below minColWidth.
func shrink(widths []int, usable int, hints []ColumnHint) []int {
	total := 0
	for _, w := range widths {
		total += w
	}
	excess := total - usable
	if excess <= 0 {
		return widths
	}

	idx := make([]int, len(widths))
	for i := range idx {
		idx[i] = i
	}
	priority := func(i int) int {
		if i < len(hints) {
			return hints[i].Priority
		}
		return 0
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := priority(idx[a]), priority(idx[b])
		if pa != pb {
			return pa < pb
		}
		return widths[idx[a]] > widths[idx[b]]
	})

	for _, i := range idx {
		if excess <= 0 {
			break
		}
		give := widths[i] - minColWidth
		if give <= 0 {
			continue
		}
		if give > excess {
			give = excess
		}
		widths[i] -= give
		excess -= give
	}
	return widths
}

func truncate(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, ellipsis)
}
