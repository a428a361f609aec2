package format

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// keywordOperators maps word operators to their keywords.
var keywordOperators = map[ast.BinaryOperator][]token.TokenType{
	ast.OpAnd:     {token.AND},
	ast.OpOr:      {token.OR},
	ast.OpLike:    {token.LIKE},
	ast.OpNotLike: {token.NOT, token.LIKE},
	ast.OpIs:      {token.IS},
	ast.OpIsNot:   {token.IS, token.NOT},
}

func (p *Printer) formatExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		p.formatLiteral(e)
	case *ast.Parameter:
		p.write(e.Placeholder)
	case *ast.ColumnReference:
		for i, id := range e.Path {
			if i > 0 {
				p.write(".")
			}
			p.formatIdent(id)
		}
	case *ast.BinaryExpression:
		p.formatExpr(e.Left)
		p.space()
		if kws, ok := keywordOperators[e.Operator]; ok {
			p.kw(kws...)
		} else {
			p.write(string(e.Operator))
		}
		p.space()
		p.formatExpr(e.Right)
	case *ast.UnaryExpression:
		p.formatUnary(e)
	case *ast.GroupedExpression:
		p.write("(")
		p.formatExpr(e.Expression)
		p.write(")")
	case *ast.InListExpression:
		p.formatInList(e)
	case *ast.BetweenExpression:
		p.formatExpr(e.Operand)
		p.space()
		if e.Negated {
			p.kw(token.NOT)
			p.space()
		}
		p.kw(token.BETWEEN)
		p.space()
		p.formatExpr(e.Start)
		p.space()
		p.kw(token.AND)
		p.space()
		p.formatExpr(e.End)
	case *ast.ExistsExpression:
		p.kw(token.EXISTS)
		p.space()
		p.nested(e.Statement)
	case *ast.SubqueryExpression:
		p.nested(e.Statement)
	case *ast.FunctionCall:
		p.formatFunctionCall(e)
	case *ast.CaseExpression:
		p.formatCase(e)
	case *ast.RawFragment:
		p.write(e.SQLText)
	}
}

func (p *Printer) formatLiteral(lit *ast.Literal) {
	switch lit.Type {
	case ast.LiteralString:
		p.write("'" + strings.ReplaceAll(lit.Value, "'", "''") + "'")
	case ast.LiteralBoolean, ast.LiteralNull:
		p.keyword(lit.Value)
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatUnary(e *ast.UnaryExpression) {
	switch e.Operator {
	case ast.OpNot:
		p.kw(token.NOT)
		p.space()
	case ast.OpMinus:
		p.write("-")
		// "--" would start a comment
		if inner, ok := e.Operand.(*ast.UnaryExpression); ok && inner.Operator == ast.OpMinus {
			p.space()
		}
	}
	p.formatExpr(e.Operand)
}

func (p *Printer) formatInList(e *ast.InListExpression) {
	p.formatExpr(e.Operand)
	p.space()
	if e.Negated {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.IN)
	p.space()
	if len(e.Items) == 1 {
		if sub, ok := e.Items[0].(*ast.SubqueryExpression); ok {
			p.nested(sub.Statement)
			return
		}
	}
	p.write("(")
	p.formatExprList(e.Items)
	p.write(")")
}

func (p *Printer) formatFunctionCall(fn *ast.FunctionCall) {
	p.formatIdent(fn.Name)
	p.write("(")
	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}
	for i, arg := range fn.Arguments {
		if i > 0 {
			p.write(", ")
		}
		if _, ok := arg.(*ast.AllColumns); ok {
			p.write("*")
			continue
		}
		p.formatExpr(arg)
	}
	p.write(")")

	switch over := fn.Over.(type) {
	case *ast.WindowReference:
		p.space()
		p.kw(token.OVER)
		p.space()
		p.formatIdent(over.Name)
	case *ast.WindowSpecification:
		p.space()
		p.kw(token.OVER)
		p.space()
		p.formatWindowSpec(over)
	}
}

func (p *Printer) formatCase(c *ast.CaseExpression) {
	p.kw(token.CASE)
	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}
	for _, b := range c.Branches {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(b.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(b.Result)
	}
	if c.ElseResult != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.ElseResult)
	}
	p.space()
	p.kw(token.END)
}

// formatWindowSpec prints a parenthesized window specification on one line.
func (p *Printer) formatWindowSpec(spec *ast.WindowSpecification) {
	p.write("(")
	sep := func(started *bool) {
		if *started {
			p.space()
		}
		*started = true
	}
	started := false

	if spec.Name != nil {
		sep(&started)
		p.formatIdent(spec.Name)
	}
	if len(spec.PartitionBy) > 0 {
		sep(&started)
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatExprList(spec.PartitionBy)
	}
	if len(spec.OrderBy) > 0 {
		sep(&started)
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(spec.OrderBy), func(i int) { p.formatOrderingTerm(spec.OrderBy[i]) }, ",", false)
	}
	if f := spec.Frame; f != nil {
		sep(&started)
		switch f.Unit {
		case ast.FrameRows:
			p.kw(token.ROWS)
		case ast.FrameRange:
			p.kw(token.RANGE)
		case ast.FrameGroups:
			p.kw(token.GROUPS)
		}
		p.space()
		if f.End == nil {
			p.formatFrameBound(f.Start)
		} else {
			p.kw(token.BETWEEN)
			p.space()
			p.formatFrameBound(f.Start)
			p.space()
			p.kw(token.AND)
			p.space()
			p.formatFrameBound(f.End)
		}
	}
	p.write(")")
}

func (p *Printer) formatFrameBound(b *ast.FrameBound) {
	switch b.BoundType {
	case ast.BoundUnboundedPreceding:
		p.kw(token.UNBOUNDED, token.PRECEDING)
	case ast.BoundUnboundedFollowing:
		p.kw(token.UNBOUNDED, token.FOLLOWING)
	case ast.BoundCurrentRow:
		p.kw(token.CURRENT, token.ROW)
	case ast.BoundPreceding:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.PRECEDING)
	case ast.BoundFollowing:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.FOLLOWING)
	}
}

func (p *Printer) formatExprList(exprs []ast.Expression) {
	p.formatList(len(exprs), func(i int) { p.formatExpr(exprs[i]) }, ",", false)
}

func (p *Printer) formatIdentList(ids []*ast.Identifier) {
	p.write("(")
	p.formatList(len(ids), func(i int) { p.formatIdent(ids[i]) }, ",", false)
	p.write(")")
}

// formatIdent prints a name, re-quoting it with double quotes when it was
// quoted in the source.
func (p *Printer) formatIdent(id *ast.Identifier) {
	if id == nil {
		return
	}
	if id.Quoted {
		p.write(`"` + strings.ReplaceAll(id.Name, `"`, `""`) + `"`)
		return
	}
	p.write(id.Name)
}
