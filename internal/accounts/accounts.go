// Package accounts holds the rows shown in the account table and loads them
// from YAML, JSON or CSV input.
package accounts

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

// Account is one table row.
type Account struct {
	Customer      string  `yaml:"customer" json:"customer"`
	BankName      string  `yaml:"bank-name" json:"bank-name"`
	AccountNumber string  `yaml:"account-number" json:"account-number"`
	Amount        float64 `yaml:"amount" json:"amount"`
}

// Cell returns the display text for c. Amounts use two decimals.
func (a Account) Cell(c columns.Column) string {
	switch c {
	case columns.Customer:
		return a.Customer
	case columns.BankName:
		return a.BankName
	case columns.AccountNumber:
		return a.AccountNumber
	case columns.Amount:
		return strconv.FormatFloat(a.Amount, 'f', 2, 64)
	}
	return ""
}

// Value returns the typed value for c.
func (a Account) Value(c columns.Column) any {
	if c == columns.Amount {
		return a.Amount
	}
	return a.Cell(c)
}

// Fields returns every column value keyed by column key with dashes replaced
// by underscores, so CEL can address them as row.bank_name.
func (a Account) Fields() map[string]any {
	out := make(map[string]any, columns.Count)
	for _, c := range columns.All() {
		out[FieldName(c)] = a.Value(c)
	}
	return out
}

// FieldName is the identifier form of a column key used by Fields.
func FieldName(c columns.Column) string {
	return strings.ReplaceAll(c.Key(), "-", "_")
}

// Format is an input encoding.
type Format string

const (
	FormatYAML Format = "yaml" // also accepts JSON
	FormatCSV  Format = "csv"
)

// FormatForPath picks the input format from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatYAML
}

// Load reads all accounts from r.
func Load(r io.Reader, format Format) ([]Account, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if format == FormatCSV {
		return parseCSV(data)
	}
	return parseYAML(data)
}

// parseYAML accepts either a bare list or a document with an "accounts" list.
// JSON is a subset of YAML, so it goes through the same path.
func parseYAML(data []byte) ([]Account, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Account{}, nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.MappingNode {
		var doc struct {
			Accounts []Account `yaml:"accounts"`
		}
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse accounts: %w", err)
		}
		if doc.Accounts == nil {
			return nil, fmt.Errorf("failed to parse accounts: no accounts list")
		}
		return doc.Accounts, nil
	}
	var out []Account
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	if out == nil {
		out = []Account{}
	}
	return out, nil
}

// parseCSV maps header cells to columns with columns.Parse, so headers may
// be keys or labels. Columns absent from the header stay empty.
func parseCSV(data []byte) ([]Account, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return []Account{}, nil
	}

	header := make([]columns.Column, len(records[0]))
	seen := make(map[columns.Column]bool, len(records[0]))
	for i, name := range records[0] {
		c, err := columns.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("CSV header: %w", err)
		}
		if seen[c] {
			return nil, fmt.Errorf("CSV header: %w", &columns.DuplicateColumnError{Column: c})
		}
		seen[c] = true
		header[i] = c
	}

	out := make([]Account, 0, len(records)-1)
	for line, rec := range records[1:] {
		var a Account
		for i, c := range header {
			if i >= len(rec) {
				break
			}
			if err := a.set(c, rec[i]); err != nil {
				return nil, fmt.Errorf("CSV line %d: %w", line+2, err)
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (a *Account) set(c columns.Column, v string) error {
	switch c {
	case columns.Customer:
		a.Customer = v
	case columns.BankName:
		a.BankName = v
	case columns.AccountNumber:
		a.AccountNumber = v
	case columns.Amount:
		v = strings.TrimSpace(v)
		if v == "" {
			a.Amount = 0
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Label(), err)
		}
		a.Amount = f
	}
	return nil
}

// Sample returns demo rows used when no input is given.
func Sample() []Account {
	return []Account{
		{Customer: "Ada Lovelace", BankName: "Analytical Savings", AccountNumber: "GB29 NWBK 6016 1331 9268 19", Amount: 1815.42},
		{Customer: "Grace Hopper", BankName: "Harbor Federal", AccountNumber: "US12 3456 7890 1234", Amount: 23750.00},
		{Customer: "Alan Turing", BankName: "Bletchley Mutual", AccountNumber: "GB82 WEST 1234 5698 7654 32", Amount: 12.5},
		{Customer: "Edsger Dijkstra", BankName: "Rijks Credit", AccountNumber: "NL91 ABNA 0417 1643 00", Amount: 640.0},
	}
}
