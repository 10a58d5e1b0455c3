package cmd

import (
	"fmt"

	"github.com/oakwood-commons/colorder/internal/accounts"
	"github.com/oakwood-commons/colorder/internal/formatter"
	"github.com/oakwood-commons/colorder/pkg/columns"
	"github.com/oakwood-commons/colorder/pkg/settings"
)

func toRows(in []accounts.Account) []formatter.Row {
	out := make([]formatter.Row, len(in))
	for i, a := range in {
		out[i] = a
	}
	return out
}

// renderAccounts renders rows in the requested output format using only the
// visible columns, in order.
func renderAccounts(output string, visible []columns.Column, rows []accounts.Account, opts formatter.TableOptions) (string, error) {
	r := toRows(rows)
	switch output {
	case settings.OutputTable:
		if len(visible) == 0 {
			return "", nil
		}
		return formatter.RenderTable(visible, r, opts), nil
	case settings.OutputYAML:
		return formatter.RenderYAML(visible, r)
	case settings.OutputJSON:
		return formatter.RenderJSON(visible, r)
	case settings.OutputTOML:
		return formatter.RenderTOML(visible, r)
	case settings.OutputCSV:
		return formatter.RenderCSV(visible, r)
	case settings.OutputMarkdown:
		return formatter.RenderMarkdown(visible, r, opts.Hints), nil
	case settings.OutputHTML:
		return formatter.RenderHTML(visible, r, opts.Hints), nil
	case settings.OutputTree:
		return formatter.RenderTree(visible, r, opts.Hints), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", output)
	}
}
