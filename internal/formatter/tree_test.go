package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

func TestRenderTree(t *testing.T) {
	cols := []columns.Column{columns.Amount, columns.Customer}
	out := RenderTree(cols, sampleRows(), map[columns.Column]ColumnHint{
		columns.Customer: {DisplayName: "Client"},
	})

	assert.True(t, strings.HasPrefix(out, "2 rows\n"), out)
	assert.Contains(t, out, "12.5")
	assert.Contains(t, out, "Client: Ada")
	assert.NotContains(t, out, "Bank")
	assert.Less(t, strings.Index(out, "Client: Ada"), strings.Index(out, "Client: Grace"))
}

func TestRenderTree_NoColumns(t *testing.T) {
	assert.Empty(t, RenderTree(nil, sampleRows(), nil))
}
