package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colorder/pkg/columns"
)

func TestAccount_Cells(t *testing.T) {
	a := Account{Customer: "Ada", BankName: "Harbor", AccountNumber: "GB29", Amount: 12.5}
	assert.Equal(t, "Ada", a.Cell(columns.Customer))
	assert.Equal(t, "Harbor", a.Cell(columns.BankName))
	assert.Equal(t, "GB29", a.Cell(columns.AccountNumber))
	assert.Equal(t, "12.50", a.Cell(columns.Amount))
	assert.Equal(t, "", a.Cell(columns.Column(42)))

	assert.Equal(t, 12.5, a.Value(columns.Amount))
	assert.Equal(t, "Ada", a.Value(columns.Customer))

	assert.Equal(t, map[string]any{
		"customer":       "Ada",
		"bank_name":      "Harbor",
		"account_number": "GB29",
		"amount":         12.5,
	}, a.Fields())
}

func TestLoad_YAMLList(t *testing.T) {
	in := `
- customer: Ada
  bank-name: Harbor
  account-number: "001"
  amount: 100
- customer: Bob
  amount: 2.25
`
	got, err := Load(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Account{Customer: "Ada", BankName: "Harbor", AccountNumber: "001", Amount: 100}, got[0])
	assert.Equal(t, 2.25, got[1].Amount)
}

func TestLoad_JSONDocument(t *testing.T) {
	in := `{"accounts": [{"customer": "Ada", "bank-name": "Harbor", "account-number": "7", "amount": 3.5}]}`
	got, err := Load(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []Account{{Customer: "Ada", BankName: "Harbor", AccountNumber: "7", Amount: 3.5}}, got)
}

func TestLoad_Empty(t *testing.T) {
	got, err := Load(strings.NewReader("  \n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Load(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_YAMLErrors(t *testing.T) {
	_, err := Load(strings.NewReader("name: x"), FormatYAML)
	assert.ErrorContains(t, err, "no accounts list")

	_, err = Load(strings.NewReader("- amount: lots"), FormatYAML)
	assert.ErrorContains(t, err, "failed to parse accounts")
}

func TestLoad_CSV(t *testing.T) {
	in := "Available Amount,Customer,bank-name\n10.5,Ada,Harbor\n,Bob,Rijks\n"
	got, err := Load(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []Account{
		{Customer: "Ada", BankName: "Harbor", Amount: 10.5},
		{Customer: "Bob", BankName: "Rijks"},
	}, got)
}

func TestLoad_CSVErrors(t *testing.T) {
	_, err := Load(strings.NewReader("customer,iban\nAda,x\n"), FormatCSV)
	assert.ErrorIs(t, err, columns.ErrUnknownColumn)

	_, err = Load(strings.NewReader("customer,amount\nAda,ten\n"), FormatCSV)
	assert.ErrorContains(t, err, "CSV line 2")

	_, err = Load(strings.NewReader("customer,Customer\nAda,Grace\n"), FormatCSV)
	require.ErrorIs(t, err, columns.ErrDuplicateColumn)
	assert.ErrorContains(t, err, "CSV header")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatForPath("data/ACCOUNTS.CSV"))
	assert.Equal(t, FormatYAML, FormatForPath("accounts.json"))
	assert.Equal(t, FormatYAML, FormatForPath("accounts.yaml"))
}

func TestSample(t *testing.T) {
	s := Sample()
	require.NotEmpty(t, s)
	for _, a := range s {
		assert.NotEmpty(t, a.Customer)
		assert.NotEmpty(t, a.AccountNumber)
	}
}
