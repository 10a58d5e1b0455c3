package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

// RenderTree renders each row as a branch labelled with its first visible
// cell. The remaining visible columns become "Header: value" leaves, in
// column order.
func RenderTree(cols []columns.Column, rows []Row, hints map[columns.Column]ColumnHint) string {
	if len(cols) == 0 {
		return ""
	}
	tree := treeprint.NewWithRoot(fmt.Sprintf("%d rows", len(rows)))
	for _, row := range rows {
		branch := tree.AddBranch(row.Cell(cols[0]))
		for _, c := range cols[1:] {
			branch.AddNode(Header(c, hints) + ": " + row.Cell(c))
		}
	}
	return tree.String()
}
