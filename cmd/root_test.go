package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

// runCLI executes a fresh command tree with an isolated config directory and
// returns everything written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origPiped := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() { stdinIsPiped = origPiped })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeJSONRecords(t *testing.T, out string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	return recs
}

func TestRoot_DefaultLayoutTable(t *testing.T) {
	out, err := runCLI(t, "", "--no-color")
	require.NoError(t, err)

	header := strings.SplitN(out, "\n", 2)[0]
	iCustomer := strings.Index(header, "Customer")
	iBank := strings.Index(header, "Bank Name")
	iNumber := strings.Index(header, "Account Number")
	iAmount := strings.Index(header, "Available Amount")
	require.True(t, iCustomer >= 0 && iBank >= 0 && iNumber >= 0 && iAmount >= 0, header)
	assert.Less(t, iCustomer, iBank)
	assert.Less(t, iBank, iNumber)
	assert.Less(t, iNumber, iAmount)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestRoot_ColumnsFlagSetsOrder(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "amount,customer", "--no-color")
	require.NoError(t, err)

	header := strings.SplitN(out, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "Available Amount"), header)
	assert.Contains(t, header, "Customer")
	assert.NotContains(t, out, "Bank Name")
	assert.NotContains(t, out, "Analytical Savings")
}

func TestRoot_HideCompactsOutput(t *testing.T) {
	out, err := runCLI(t, "", "--hide", "bank-name", "--hide", "Account Number", "-o", "json")
	require.NoError(t, err)

	recs := decodeJSONRecords(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, map[string]any{"customer": "Ada Lovelace", "amount": 1815.42}, recs[0])

	// key order in the document follows the layout
	assert.Less(t, strings.Index(out, `"customer"`), strings.Index(out, `"amount"`))
}

func TestRoot_ColumnsThenHide(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "bank-name,amount,customer", "--hide", "amount", "-o", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Bank Name,Customer", lines[0])
	assert.Equal(t, "Analytical Savings,Ada Lovelace", lines[1])
}

func TestRoot_EmptyColumnsHidesEverything(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "", "--no-color")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runCLI(t, "", "--columns", "", "-o", "json")
	require.NoError(t, err)
	recs := decodeJSONRecords(t, out)
	require.Len(t, recs, 4)
	assert.Empty(t, recs[0])
}

func TestRoot_DuplicateColumnRejected(t *testing.T) {
	_, err := runCLI(t, "", "--columns", "amount,customer,Available Amount")
	require.Error(t, err)
	assert.ErrorIs(t, err, columns.ErrDuplicateColumn)
	assert.Contains(t, err.Error(), "Available Amount")
}

func TestRoot_UnknownColumnRejected(t *testing.T) {
	_, err := runCLI(t, "", "--hide", "balance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown column "balance"`)
}

func TestRoot_HidingTwiceIsHarmless(t *testing.T) {
	out, err := runCLI(t, "", "--hide", "amount,amount", "-o", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Customer,Bank Name,Account Number\n"), out)
}

func TestRoot_InvalidOutput(t *testing.T) {
	_, err := runCLI(t, "", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --output "xml"`)
}

func TestRoot_Filter(t *testing.T) {
	out, err := runCLI(t, "", "--filter", "row.amount > 1000", "--columns", "customer", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Customer\nAda Lovelace\nGrace Hopper\n", out)

	_, err = runCLI(t, "", "--filter", "row.amount +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--filter")
}

func TestRoot_StdinYAML(t *testing.T) {
	in := `
accounts:
  - customer: Linus
    bank-name: Nordic Bank
    account-number: FI21 1234 5600 0007 85
    amount: 42
`
	out, err := runCLI(t, in, "-", "--columns", "customer,amount", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- customer: Linus\n  amount: 42\n", out)
}

func TestRoot_CSVFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "accounts.csv", "Customer,Available Amount\nBarbara,10.5\n")

	out, err := runCLI(t, "", path, "--columns", "amount,customer", "-o", "json")
	require.NoError(t, err)
	recs := decodeJSONRecords(t, out)
	require.Len(t, recs, 1)
	assert.Equal(t, map[string]any{"amount": 10.5, "customer": "Barbara"}, recs[0])
}

func TestRoot_MissingFile(t *testing.T) {
	_, err := runCLI(t, "", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")
}

func TestRoot_ConfigFileLayout(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "colorder.yaml", `
layout:
  columns: [amount, bank-name, customer]
  hidden: [bank-name]
`)
	out, err := runCLI(t, "", "--config-file", cfg, "-o", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Available Amount,Customer\n"), out)

	// --columns replaces the configured layout, hidden list included
	out, err = runCLI(t, "", "--config-file", cfg, "--columns", "bank-name", "-o", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Bank Name\n"), out)
}

func TestRoot_InvalidConfigLayout(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "colorder.yaml", "layout:\n  columns: [amount, amount]\n")
	_, err := runCLI(t, "", "--config-file", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, columns.ErrDuplicateColumn)
}

func TestRoot_MarkdownUsesHints(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "customer,amount", "-o", "markdown")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "| Customer | Available Amount |", lines[0])
	assert.Equal(t, "| --- | ---: |", lines[1])
}

func TestRoot_Snapshot(t *testing.T) {
	out, err := runCLI(t, "", "--snapshot", "--no-color", "--width", "120", "--height", "20", "--press", "<Right>x")
	require.NoError(t, err)
	assert.Contains(t, out, "columns: Customer | [Account Number] | Available Amount")
	assert.Contains(t, out, "hid Bank Name")
	assert.NotContains(t, out, "Analytical Savings")
	assert.Contains(t, out, "Ada Lovelace")

	var header, ada string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Available Amount") && !strings.Contains(line, "columns:"):
			header = line
		case strings.Contains(line, "Ada Lovelace"):
			ada = line
		}
	}
	require.NotEmpty(t, header)
	require.NotEmpty(t, ada)
	assert.Contains(t, ada, "1815.42")
	assert.Greater(t, strings.Index(ada, "1815.42"), strings.Index(ada, "Ada Lovelace"))
	assert.GreaterOrEqual(t, strings.Index(ada, "1815.42"), strings.Index(header, "Available Amount"))
}

func TestColumnsCommand(t *testing.T) {
	out, err := runCLI(t, "", "columns", "--columns", "amount,customer,bank-name", "--hide", "customer", "-o", "json")
	require.NoError(t, err)

	var got []columnStatus
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, columns.Count)

	keys := make([]string, len(got))
	for i, s := range got {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{"amount", "bank-name", "customer", "account-number"}, keys)

	require.NotNil(t, got[0].Position)
	assert.Equal(t, 0, *got[0].Position)
	require.NotNil(t, got[1].Position)
	assert.Equal(t, 1, *got[1].Position)
	assert.False(t, got[2].Visible)
	assert.Nil(t, got[2].Position)
}

func TestColumnsCommand_Table(t *testing.T) {
	out, err := runCLI(t, "", "columns", "--hide", "amount")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2+columns.Count)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.True(t, strings.HasPrefix(lines[2], "customer"))
	assert.True(t, strings.HasPrefix(lines[5], "amount"))
	assert.True(t, strings.HasSuffix(lines[5], "-"))
}

func TestColumnsCommand_RejectsOtherOutputs(t *testing.T) {
	_, err := runCLI(t, "", "columns", "-o", "csv")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	out, err := runCLI(t, "", "config", "get", "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[layout]")
	assert.Contains(t, out, "amount")

	out, err = runCLI(t, "", "config", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "layout:")

	_, err = runCLI(t, "", "config", "get", "-o", "csv")
	require.Error(t, err)

	out, err = runCLI(t, "", "config", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "bank-name")

	out, err = runCLI(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "(built-in defaults)\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "colorder v"), out)
}

func TestColumnListValue(t *testing.T) {
	var v columnListValue
	assert.False(t, v.Changed())
	assert.Equal(t, "columns", v.Type())

	require.NoError(t, v.Set("amount, Bank Name"))
	require.NoError(t, v.Set("customer"))
	assert.True(t, v.Changed())
	assert.Equal(t, []columns.Column{columns.Amount, columns.BankName, columns.Customer}, v.Columns())
	assert.Equal(t, "amount,bank-name,customer", v.String())

	err := v.Set("nope")
	assert.ErrorIs(t, err, columns.ErrUnknownColumn)

	var empty columnListValue
	require.NoError(t, empty.Set(""))
	assert.True(t, empty.Changed())
	assert.Empty(t, empty.Columns())
}

func TestResolveInputFormat(t *testing.T) {
	f, err := resolveInputFormat("", "data.CSV")
	require.NoError(t, err)
	assert.EqualValues(t, "csv", f)

	f, err = resolveInputFormat("json", "data.csv")
	require.NoError(t, err)
	assert.EqualValues(t, "yaml", f)

	_, err = resolveInputFormat("xml", "")
	assert.Error(t, err)
}

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestProgramOptions_NotPiped(t *testing.T) {
	orig := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() { stdinIsPiped = orig })

	opts, cleanup := programOptions()
	assert.Nil(t, opts)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestProgramOptions_PipedUsesTTY(t *testing.T) {
	origPiped, origOpen := stdinIsPiped, openTerminalIOFn
	t.Cleanup(func() {
		stdinIsPiped = origPiped
		openTerminalIOFn = origOpen
	})

	inFile, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	outFile, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)

	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) { return inFile, outFile, nil }

	opts, cleanup := programOptions()
	assert.Len(t, opts, 2)
	cleanup()
}

func TestRoot_TreeOutput(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "customer,amount", "-o", "tree")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "4 rows\n"), out)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Available Amount: 1815.42")
	assert.NotContains(t, out, "Bank Name")
}

func TestRoot_Limiting(t *testing.T) {
	out, err := runCLI(t, "", "--columns", "customer", "--offset", "1", "--limit", "2", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Customer\nGrace Hopper\nAlan Turing\n", out)

	out, err = runCLI(t, "", "--columns", "customer", "--tail", "1", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Customer\nEdsger Dijkstra\n", out)

	_, err = runCLI(t, "", "--limit", "1", "--tail", "1")
	assert.ErrorContains(t, err, "mutually exclusive")
}
