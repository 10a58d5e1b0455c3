// Package config loads the column layout and display settings, merging an
// optional user file over the embedded defaults.
package config

// File is the on-disk config document, in YAML or TOML.
type File struct {
	App     AppConfig `yaml:"app" toml:"app"`
	Layout  Layout    `yaml:"layout" toml:"layout"`
	Display Display   `yaml:"display" toml:"display"`
}

// AppConfig carries the metadata shown by `colorder version`.
type AppConfig struct {
	Name        string `yaml:"name,omitempty" toml:"name,omitempty"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// Layout names the visible columns in display order, then the columns to
// hide from that order. Names are anything columns.Parse accepts.
//
// A nil Columns means "not set" and keeps the lower layer's layout; an empty
// list hides every column.
type Layout struct {
	Columns []string `yaml:"columns" toml:"columns"`
	Hidden  []string `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
}

// Display controls rendering. Pointer fields distinguish "unset" from the
// zero value when merging.
type Display struct {
	NoColor  *bool           `yaml:"no_color,omitempty" toml:"no_color,omitempty"`
	MaxWidth *int            `yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	Hints    map[string]Hint `yaml:"hints,omitempty" toml:"hints,omitempty"`
}

// Hint is a per-column rendering hint keyed by column name.
type Hint struct {
	Align       string `yaml:"align,omitempty" toml:"align,omitempty"`
	MaxWidth    int    `yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	Priority    int    `yaml:"priority,omitempty" toml:"priority,omitempty"`
	DisplayName string `yaml:"display_name,omitempty" toml:"display_name,omitempty"`
}

// NoColorEnabled returns the effective no_color setting.
func (d Display) NoColorEnabled() bool {
	return d.NoColor != nil && *d.NoColor
}

// MaxWidthValue returns the effective max_width setting (0 = unlimited).
func (d Display) MaxWidthValue() int {
	if d.MaxWidth == nil {
		return 0
	}
	return *d.MaxWidth
}
