package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/oakwood-commons/colorder/internal/accounts"
	"github.com/oakwood-commons/colorder/pkg/columns"
)

// knownFields returns the identifiers rows expose, e.g. "bank_name".
func knownFields() map[string]bool {
	out := make(map[string]bool, columns.Count)
	for _, c := range columns.All() {
		out[accounts.FieldName(c)] = true
	}
	return out
}

// selectedFields lists the fields read as row.<name>, sorted and unique.
// Index access (row["name"]) is left to evaluation.
func selectedFields(ast *cel.Ast) ([]string, error) {
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	walkSelects(parsed.GetExpr(), seen)
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func walkSelects(expr *exprpb.Expr, seen map[string]bool) {
	if expr == nil {
		return
	}
	switch expr.ExprKind.(type) {
	case *exprpb.Expr_SelectExpr:
		sel := expr.GetSelectExpr()
		if id := sel.GetOperand().GetIdentExpr(); id != nil && id.GetName() == RowVariable {
			seen[sel.GetField()] = true
			return
		}
		walkSelects(sel.GetOperand(), seen)
	case *exprpb.Expr_CallExpr:
		call := expr.GetCallExpr()
		walkSelects(call.GetTarget(), seen)
		for _, arg := range call.GetArgs() {
			walkSelects(arg, seen)
		}
	case *exprpb.Expr_ListExpr:
		for _, el := range expr.GetListExpr().GetElements() {
			walkSelects(el, seen)
		}
	case *exprpb.Expr_StructExpr:
		for _, entry := range expr.GetStructExpr().GetEntries() {
			walkSelects(entry.GetMapKey(), seen)
			walkSelects(entry.GetValue(), seen)
		}
	case *exprpb.Expr_ComprehensionExpr:
		comp := expr.GetComprehensionExpr()
		walkSelects(comp.GetIterRange(), seen)
		walkSelects(comp.GetAccuInit(), seen)
		walkSelects(comp.GetLoopCondition(), seen)
		walkSelects(comp.GetLoopStep(), seen)
		walkSelects(comp.GetResult(), seen)
	}
}

// checkFields rejects row.<name> references to fields rows do not have.
func checkFields(fields []string) error {
	known := knownFields()
	for _, f := range fields {
		if !known[f] {
			names := make([]string, 0, len(known))
			for k := range known {
				names = append(names, k)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown field %s.%s (fields: %s)", RowVariable, f, strings.Join(names, ", "))
		}
	}
	return nil
}
