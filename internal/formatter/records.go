package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is a row projected onto the visible columns, in column order.
type Record []Field

// Records projects rows onto cols, keyed by column key.
func Records(cols []columns.Column, rows []Row) []Record {
	out := make([]Record, len(rows))
	for r, row := range rows {
		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[i] = Field{Key: c.Key(), Value: row.Value(c)}
		}
		out[r] = rec
	}
	return out
}

// MarshalJSON writes the fields as an object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Key, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML emits a mapping node so YAML output keeps column order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r {
		var val yaml.Node
		if err := val.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&val,
		)
	}
	return node, nil
}

func (r Record) asMap() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		m[f.Key] = f.Value
	}
	return m
}

// RenderJSON renders records as an indented JSON array.
func RenderJSON(cols []columns.Column, rows []Row) (string, error) {
	recs := Records(cols, rows)
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// RenderYAML renders records as a YAML sequence.
func RenderYAML(cols []columns.Column, rows []Row) (string, error) {
	recs := Records(cols, rows)
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderTOML renders records as an array of tables under "accounts". TOML
// tables are unordered, so the column order is recorded in "columns".
func RenderTOML(cols []columns.Column, rows []Row) (string, error) {
	recs := Records(cols, rows)
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key()
	}
	tables := make([]map[string]any, len(recs))
	for i, r := range recs {
		tables[i] = r.asMap()
	}
	doc := struct {
		Columns  []string         `toml:"columns"`
		Accounts []map[string]any `toml:"accounts"`
	}{Columns: keys, Accounts: tables}
	data, err := toml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderCSV renders a header of column labels followed by one line per row.
func RenderCSV(cols []columns.Column, rows []Row) (string, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label()
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = row.Cell(c)
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// RenderMarkdown renders a GitHub-style pipe table. Right-aligned hints
// become right-aligned columns.
func RenderMarkdown(cols []columns.Column, rows []Row, hints map[columns.Column]ColumnHint) string {
	if len(cols) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("|")
	for _, c := range cols {
		b.WriteString(" " + escapeMarkdownCell(Header(c, hints)) + " |")
	}
	b.WriteString("\n|")
	for _, c := range cols {
		if hints[c].Align == "right" {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("|")
		for _, c := range cols {
			b.WriteString(" " + escapeMarkdownCell(row.Cell(c)) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHTML renders the markdown table through gomarkdown.
func RenderHTML(cols []columns.Column, rows []Row, hints map[columns.Column]ColumnHint) string {
	md := RenderMarkdown(cols, rows, hints)
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
