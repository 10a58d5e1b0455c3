package formatter

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

type testRow struct {
	customer, bank, number string
	amount                 float64
}

func (r testRow) Cell(c columns.Column) string {
	switch c {
	case columns.Customer:
		return r.customer
	case columns.BankName:
		return r.bank
	case columns.AccountNumber:
		return r.number
	case columns.Amount:
		return strconv.FormatFloat(r.amount, 'f', -1, 64)
	}
	return ""
}

func (r testRow) Value(c columns.Column) any {
	if c == columns.Amount {
		return r.amount
	}
	return r.Cell(c)
}

func sampleRows() []Row {
	return []Row{
		testRow{customer: "Ada", bank: "Harbor", number: "001", amount: 12.5},
		testRow{customer: "Grace", bank: "Rijks", number: "002", amount: 7},
	}
}

func TestRenderTable_FollowsColumnOrder(t *testing.T) {
	cols := []columns.Column{columns.Amount, columns.Customer}
	out := RenderTable(cols, sampleRows(), TableOptions{NoColor: true})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Available Amount  Customer", lines[0])
	assert.Equal(t, strings.Repeat("─", len("Available Amount  Customer")), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "12.5"))
	assert.True(t, strings.HasSuffix(lines[2], "Ada"))
	assert.NotContains(t, out, "Bank Name")
	assert.Less(t, strings.Index(lines[0], "Available Amount"), strings.Index(lines[0], "Customer"))
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, sampleRows(), TableOptions{NoColor: true}))

	out := RenderTable([]columns.Column{columns.Customer}, nil, TableOptions{NoColor: true})
	assert.Equal(t, "Customer\n────────\n", out)
}

func TestRenderTable_Hints(t *testing.T) {
	cols := []columns.Column{columns.Customer, columns.Amount}
	out := RenderTable(cols, sampleRows(), TableOptions{
		NoColor: true,
		Hints: map[columns.Column]ColumnHint{
			columns.Amount:   {Align: "right", DisplayName: "Amt"},
			columns.Customer: {MaxWidth: 3},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Cu…   Amt", lines[0])
	assert.Equal(t, "Ada  12.5", lines[2])
	assert.Equal(t, "Gr…     7", lines[3])
}

func TestRenderTable_RowNumbers(t *testing.T) {
	out := RenderTable([]columns.Column{columns.Customer}, sampleRows(), TableOptions{NoColor: true, RowNumbers: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "#  Customer", lines[0])
	assert.Equal(t, "1  Ada", lines[2])
	assert.Equal(t, "2  Grace", lines[3])
}

func TestRenderTable_MaxWidth(t *testing.T) {
	cols := []columns.Column{columns.Customer, columns.BankName, columns.AccountNumber}
	out := RenderTable(cols, sampleRows(), TableOptions{NoColor: true, MaxWidth: 30})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 30, line)
	}
}

func TestRenderTable_Color(t *testing.T) {
	out := RenderTable([]columns.Column{columns.Customer}, sampleRows(), TableOptions{})
	assert.Contains(t, out, "Customer")
	assert.Contains(t, out, "Ada")
}

func TestColumnWidths(t *testing.T) {
	headers := []string{"aaaa", "bb", "cccccccccc"}
	rows := [][]string{{"x", "yyyyyy", "z"}}

	assert.Equal(t, []int{4, 6, 10}, ColumnWidths(headers, rows, 0, nil))

	// 20 usable after two separators of 2: widest gives first.
	assert.Equal(t, []int{4, 6, 6}, ColumnWidths(headers, rows, 20, nil))

	// Priority wins over width.
	hints := []ColumnHint{{Priority: 0}, {Priority: 0}, {Priority: 5}}
	assert.Equal(t, []int{3, 3, 10}, ColumnWidths(headers, rows, 20, hints))

	// Never below the minimum.
	assert.Equal(t, []int{3, 3, 3}, ColumnWidths(headers, rows, 1, nil))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Bank Name", Header(columns.BankName, nil))
	assert.Equal(t, "Bank", Header(columns.BankName, map[columns.Column]ColumnHint{columns.BankName: {DisplayName: "Bank"}}))
}

func TestRenderGrid(t *testing.T) {
	out := RenderGrid(
		[]string{"KEY", "POS"},
		[][]string{{"customer", "0"}, {"amount", "-"}},
		[]ColumnHint{{}, {Align: "right"}},
		TableOptions{NoColor: true},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "KEY       POS", lines[0])
	assert.Equal(t, "customer    0", lines[2])
	assert.Equal(t, "amount      -", lines[3])

	out = RenderGrid(
		[]string{"KEY", "N"},
		[][]string{{"customer", "10"}},
		[]ColumnHint{{}, {Align: "right"}},
		TableOptions{NoColor: true},
	)
	lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "KEY        N", lines[0])
	assert.Equal(t, "customer  10", lines[2])

	assert.Empty(t, RenderGrid(nil, nil, nil, TableOptions{}))
}
