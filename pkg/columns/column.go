// Package columns owns the fixed set of account table columns and the
// registry that tracks which of them are visible and in what order.
package columns

import (
	"fmt"
	"strings"
)

// Column identifies one member of the closed set of table columns.
// Values outside [0, Count) are unknown and rejected by the registry.
type Column int

const (
	Customer Column = iota
	BankName
	AccountNumber
	Amount

	numColumns
)

// Count is the number of column identities.
const Count = int(numColumns)

type definition struct {
	name  string // Go identifier, accepted by Parse
	key   string // stable machine name used in config files and flags
	label string // human-readable header text
}

var definitions = [numColumns]definition{
	Customer:      {name: "Customer", key: "customer", label: "Customer"},
	BankName:      {name: "BankName", key: "bank-name", label: "Bank Name"},
	AccountNumber: {name: "AccountNumber", key: "account-number", label: "Account Number"},
	Amount:        {name: "Amount", key: "amount", label: "Available Amount"},
}

// All returns every column in declaration order.
func All() []Column {
	out := make([]Column, Count)
	for i := range out {
		out[i] = Column(i)
	}
	return out
}

// Valid reports whether c is a member of the column set.
func (c Column) Valid() bool {
	return c >= 0 && c < numColumns
}

// Label returns the human-readable header text, or "" for an unknown column.
func (c Column) Label() string {
	if !c.Valid() {
		return ""
	}
	return definitions[c].label
}

// Key returns the machine name used in config files and CLI flags.
func (c Column) Key() string {
	if !c.Valid() {
		return ""
	}
	return definitions[c].key
}

func (c Column) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return definitions[c].key
}

// MarshalText encodes the column as its key.
func (c Column) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &UnknownColumnError{Column: c}
	}
	return []byte(c.Key()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (c *Column) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse resolves a column from its key ("bank-name"), its label ("Bank Name")
// or its identifier ("BankName"). Matching ignores case, spaces, dashes and
// underscores.
func Parse(name string) (Column, error) {
	want := normalize(name)
	if want != "" {
		for i, def := range definitions {
			if want == normalize(def.key) || want == normalize(def.label) || want == normalize(def.name) {
				return Column(i), nil
			}
		}
	}
	return -1, &UnknownColumnError{Column: -1, Name: name}
}

// ParseList resolves each name with Parse, stopping at the first failure.
func ParseList(names []string) ([]Column, error) {
	out := make([]Column, 0, len(names))
	for _, n := range names {
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
