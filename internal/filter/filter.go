// Package filter selects account rows with a CEL predicate over the row's
// fields, e.g. `row.amount > 100.0 && row.bank_name.startsWith("Harbor")`.
package filter

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/colorder/internal/accounts"
)

// RowVariable is the name rows are bound to in expressions.
const RowVariable = "row"

// Filter is a compiled row predicate.
type Filter struct {
	expr   string
	fields []string
	prg    cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(RowVariable, cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	fields, err := selectedFields(ast)
	if err != nil {
		return nil, fmt.Errorf("inspect expression: %w", err)
	}
	if err := checkFields(fields); err != nil {
		return nil, err
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter must be a boolean expression, got %v", out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Filter{expr: expr, fields: fields, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Fields returns the row fields the expression reads, sorted.
func (f *Filter) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Match evaluates the predicate for one account.
func (f *Filter) Match(a accounts.Account) (bool, error) {
	val, _, err := f.prg.Eval(map[string]any{RowVariable: a.Fields()})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %v, not bool", f.expr, val.Type())
	}
	return bool(b), nil
}

// Apply returns the accounts that match, in input order. A nil Filter keeps
// every row.
func (f *Filter) Apply(rows []accounts.Account) ([]accounts.Account, error) {
	if f == nil {
		return rows, nil
	}
	out := make([]accounts.Account, 0, len(rows))
	for i, a := range rows {
		ok, err := f.Match(a)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}
