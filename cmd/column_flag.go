package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

var _ pflag.Value = (*columnListValue)(nil)

// columnListValue is a pflag.Value holding a comma-separated column list.
// Repeating the flag appends.
type columnListValue struct {
	cols []columns.Column
	set  bool
}

func (v *columnListValue) String() string {
	keys := make([]string, len(v.cols))
	for i, c := range v.cols {
		keys[i] = c.Key()
	}
	return strings.Join(keys, ",")
}

func (v *columnListValue) Set(s string) error {
	v.set = true
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	cols, err := columns.ParseList(names)
	if err != nil {
		return err
	}
	v.cols = append(v.cols, cols...)
	return nil
}

func (v *columnListValue) Type() string {
	return "columns"
}

// Changed reports whether the flag was given, even as an empty list.
func (v *columnListValue) Changed() bool {
	return v.set
}

func (v *columnListValue) Columns() []columns.Column {
	return append([]columns.Column(nil), v.cols...)
}
