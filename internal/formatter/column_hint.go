package formatter

// ColumnHint carries per-column rendering hints from the display config.
type ColumnHint struct {
	// MaxWidth caps the column width in cells. 0 = no cap.
	MaxWidth int

	// Priority controls which columns give up width first when the table
	// must shrink. Lower values shrink first.
	Priority int

	// Align is "right" or "left" (default).
	Align string

	// DisplayName replaces the column label in the header.
	DisplayName string
}
