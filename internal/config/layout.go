package config

import (
	"fmt"

	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/pkg/columns"
)

// Validate checks that every name resolves and that the order has no
// duplicates, without touching a registry.
func (l Layout) Validate() error {
	order, err := columns.ParseList(l.Columns)
	if err != nil {
		return fmt.Errorf("layout.columns: %w", err)
	}
	if err := columns.New().Configure(order...); err != nil {
		return fmt.Errorf("layout.columns: %w", err)
	}
	if _, err := columns.ParseList(l.Hidden); err != nil {
		return fmt.Errorf("layout.hidden: %w", err)
	}
	return nil
}

// Apply configures reg with the layout order, then hides each hidden column.
// A failed Configure leaves reg as it was.
func (l Layout) Apply(reg columns.Layout) error {
	order, err := columns.ParseList(l.Columns)
	if err != nil {
		return fmt.Errorf("layout.columns: %w", err)
	}
	hide, err := columns.ParseList(l.Hidden)
	if err != nil {
		return fmt.Errorf("layout.hidden: %w", err)
	}
	if err := reg.Configure(order...); err != nil {
		return fmt.Errorf("configure columns: %w", err)
	}
	for _, c := range hide {
		if err := reg.Hide(c); err != nil {
			return fmt.Errorf("hide %s: %w", c, err)
		}
	}
	return nil
}

// ColumnHints converts the display hints to formatter hints keyed by column.
// Unknown names are reported rather than dropped.
func (d Display) ColumnHints() (map[columns.Column]formatter.ColumnHint, error) {
	out := make(map[columns.Column]formatter.ColumnHint, len(d.Hints))
	for name, h := range d.Hints {
		c, err := columns.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("display.hints: %w", err)
		}
		out[c] = formatter.ColumnHint{
			MaxWidth:    h.MaxWidth,
			Priority:    h.Priority,
			Align:       h.Align,
			DisplayName: h.DisplayName,
		}
	}
	return out, nil
}
