package lineage

import (
	"strings"

	"github.com/leapstack-labs/leaplineage/pkg/parser"
)

// renderExpr renders an expression back to SQL text for Edge.Expression.
// The rendering is normalized (single spaces, upper-cased keywords), not a
// byte-faithful reproduction of the input.
func renderExpr(expr parser.Expr) string {
	switch x := expr.(type) {
	case nil:
		return ""

	case *parser.ColumnRef:
		if x.Table != "" {
			return x.Table + "." + x.Column
		}
		return x.Column

	case *parser.Literal:
		if x.Type == parser.LiteralString {
			return "'" + strings.ReplaceAll(x.Value, "'", "''") + "'"
		}
		return x.Value

	case *parser.BinaryExpr:
		return renderExpr(x.Left) + " " + x.Op.String() + " " + renderExpr(x.Right)

	case *parser.UnaryExpr:
		if x.Op == parser.TOKEN_NOT {
			return "NOT " + renderExpr(x.Expr)
		}
		return x.Op.String() + renderExpr(x.Expr)

	case *parser.ParenExpr:
		return "(" + renderExpr(x.Expr) + ")"

	case *parser.FuncCall:
		return renderFuncCall(x)

	case *parser.CaseExpr:
		return renderCase(x)

	case *parser.CastExpr:
		return "CAST(" + renderExpr(x.Expr) + " AS " + x.TypeName + ")"

	case *parser.InExpr:
		var b strings.Builder
		b.WriteString(renderExpr(x.Expr))
		if x.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN (")
		if x.Query != nil {
			b.WriteString("...")
		} else {
			b.WriteString(renderExprList(x.Values))
		}
		b.WriteString(")")
		return b.String()

	case *parser.BetweenExpr:
		not := ""
		if x.Not {
			not = " NOT"
		}
		return renderExpr(x.Expr) + not + " BETWEEN " + renderExpr(x.Low) + " AND " + renderExpr(x.High)

	case *parser.IsNullExpr:
		if x.Not {
			return renderExpr(x.Expr) + " IS NOT NULL"
		}
		return renderExpr(x.Expr) + " IS NULL"

	case *parser.IsBoolExpr:
		var b strings.Builder
		b.WriteString(renderExpr(x.Expr))
		b.WriteString(" IS ")
		if x.Not {
			b.WriteString("NOT ")
		}
		if x.Value {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
		return b.String()

	case *parser.LikeExpr:
		op := "LIKE"
		if x.Op == parser.TOKEN_ILIKE {
			op = "ILIKE"
		}
		if x.Not {
			op = "NOT " + op
		}
		return renderExpr(x.Expr) + " " + op + " " + renderExpr(x.Pattern)

	case *parser.StarExpr:
		if x.Table != "" {
			return x.Table + ".*"
		}
		return "*"

	case *parser.SubqueryExpr:
		return "(...)"

	case *parser.ExistsExpr:
		return "EXISTS (...)"

	default:
		return ""
	}
}

func renderFuncCall(fn *parser.FuncCall) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(fn.Name))
	b.WriteString("(")
	if fn.Star {
		b.WriteString("*")
	} else {
		if fn.Distinct {
			b.WriteString("DISTINCT ")
		}
		b.WriteString(renderExprList(fn.Args))
	}
	b.WriteString(")")
	if fn.Filter != nil {
		b.WriteString(" FILTER (WHERE ")
		b.WriteString(renderExpr(fn.Filter))
		b.WriteString(")")
	}
	if fn.Window != nil {
		b.WriteString(" OVER (")
		b.WriteString(renderWindow(fn.Window))
		b.WriteString(")")
	}
	return b.String()
}

func renderWindow(w *parser.WindowSpec) string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+renderExprList(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		items := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			items[i] = renderExpr(o.Expr)
			if o.Desc {
				items[i] += " DESC"
			}
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}
	if w.Frame != nil {
		parts = append(parts, string(w.Frame.Type)+" ...")
	}
	return strings.Join(parts, " ")
}

func renderCase(c *parser.CaseExpr) string {
	var b strings.Builder
	b.WriteString("CASE")
	if c.Operand != nil {
		b.WriteString(" ")
		b.WriteString(renderExpr(c.Operand))
	}
	for _, w := range c.Whens {
		b.WriteString(" WHEN ")
		b.WriteString(renderExpr(w.Condition))
		b.WriteString(" THEN ")
		b.WriteString(renderExpr(w.Result))
	}
	if c.Else != nil {
		b.WriteString(" ELSE ")
		b.WriteString(renderExpr(c.Else))
	}
	b.WriteString(" END")
	return b.String()
}

func renderExprList(exprs []parser.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = renderExpr(e)
	}
	return strings.Join(parts, ", ")
}
