package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Expression conversion.
//
// Operator chains (OR, AND, additive, multiplicative, JSON) are flat lists
// of operands separated by operator terminals and fold to the left:
// a - b - c becomes (a - b) - c.

// Expression converts an expression CST node.
func (v Visitor) Expression(n *cst.Node) (ast.Expression, error) {
	if n == nil {
		return nil, &InvariantError{Production: "expression", Message: "missing expression"}
	}

	switch n.Kind {
	case cst.Raw:
		return &ast.RawFragment{SQLText: n.Text}, nil
	case cst.OrExpression, cst.AndExpression,
		cst.AdditiveExpression, cst.MultiplicativeExpr, cst.JSONExpression:
		return v.chain(n)
	case cst.AtomicPredicate:
		return v.predicate(n)
	case cst.UnaryExpression:
		if len(n.Children) != 2 {
			return nil, invariant(n.Kind, errMissing, "operand")
		}
		operand, err := v.Expression(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: ast.OpMinus, Operand: operand}, nil
	case cst.Literal:
		return literal(n)
	case cst.Parameter:
		if len(n.Children) == 0 {
			return nil, invariant(n.Kind, errMissing, "placeholder")
		}
		return &ast.Parameter{
			Placeholder: n.Children[0].Token.Literal,
			Position:    ast.UnresolvedPosition,
		}, nil
	case cst.ColumnReference:
		return columnReference(n)
	case cst.ParenExpression:
		inner := n.NonTerminals()
		if len(inner) != 1 {
			return nil, invariant(n.Kind, errMissing, "expression")
		}
		expr, err := v.Expression(inner[0])
		if err != nil {
			return nil, err
		}
		return &ast.GroupedExpression{Expression: expr}, nil
	case cst.SubqueryExpression:
		stmt, err := v.subquery(n)
		if err != nil {
			return nil, err
		}
		return &ast.SubqueryExpression{Statement: stmt}, nil
	case cst.FunctionCall:
		return v.functionCall(n)
	case cst.CaseExpression:
		return v.caseExpression(n)
	default:
		return nil, invariant(n.Kind, errUnexpectedNode, "node in expression")
	}
}

func (v Visitor) chain(n *cst.Node) (ast.Expression, error) {
	c := n.Children
	if len(c)%2 == 0 {
		return nil, invariant(n.Kind, "operator without right operand")
	}

	left, err := v.Expression(c[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i+1 < len(c); i += 2 {
		op, err := binaryOperator(n.Kind, c[i])
		if err != nil {
			return nil, err
		}
		right, err := v.Expression(c[i+1])
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func binaryOperator(kind cst.Kind, n *cst.Node) (ast.BinaryOperator, error) {
	switch n.Token.Type {
	case token.PLUS:
		return ast.OpAdd, nil
	case token.MINUS:
		return ast.OpSub, nil
	case token.STAR:
		return ast.OpMul, nil
	case token.SLASH:
		return ast.OpDiv, nil
	case token.PERCENT:
		return ast.OpMod, nil
	case token.ARROW:
		return ast.OpJSONGet, nil
	case token.DARROW:
		return ast.OpJSONGetTxt, nil
	case token.EQ:
		return ast.OpEq, nil
	case token.NE:
		if n.Token.Literal == "<>" {
			return ast.OpNotEqAlt, nil
		}
		return ast.OpNotEq, nil
	case token.LT:
		return ast.OpLt, nil
	case token.LE:
		return ast.OpLtEq, nil
	case token.GT:
		return ast.OpGt, nil
	case token.GE:
		return ast.OpGtEq, nil
	case token.AND:
		return ast.OpAnd, nil
	case token.OR:
		return ast.OpOr, nil
	default:
		return "", invariant(kind, errUnknownOperator, n.Token.Literal)
	}
}

// predicate converts an AtomicPredicate. The first terminal after the
// left operand, skipping an optional NOT, selects the predicate form.
func (v Visitor) predicate(n *cst.Node) (ast.Expression, error) {
	c := n.Children
	if len(c) == 0 {
		return nil, invariant(n.Kind, errMissing, "operand")
	}

	switch {
	case c[0].IsTerminal(token.NOT):
		if len(c) != 2 {
			return nil, invariant(n.Kind, errMissing, "negated predicate")
		}
		operand, err := v.Expression(c[1])
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: ast.OpNot, Operand: operand}, nil

	case c[0].IsTerminal(token.EXISTS):
		if len(c) != 2 || c[1].Kind != cst.SubqueryExpression {
			return nil, invariant(n.Kind, errMissing, "EXISTS subquery")
		}
		stmt, err := v.subquery(c[1])
		if err != nil {
			return nil, err
		}
		return &ast.ExistsExpression{Statement: stmt}, nil
	}

	left, err := v.Expression(c[0])
	if err != nil || len(c) == 1 {
		return left, err
	}

	i := 1
	negated := c[i].IsTerminal(token.NOT)
	if negated {
		i++
	}
	if i >= len(c) {
		return nil, invariant(n.Kind, errMissing, "predicate operator")
	}
	operand := func(j int) (ast.Expression, error) {
		if j >= len(c) {
			return nil, invariant(n.Kind, errMissing, "operand")
		}
		return v.Expression(c[j])
	}

	switch op := c[i]; op.Token.Type {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		bop, err := binaryOperator(n.Kind, op)
		if err != nil {
			return nil, err
		}
		right, err := operand(i + 1)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: left, Operator: bop, Right: right}, nil

	case token.BETWEEN:
		start, err := operand(i + 1)
		if err != nil {
			return nil, err
		}
		end, err := operand(i + 3)
		if err != nil {
			return nil, err
		}
		return &ast.BetweenExpression{Operand: left, Start: start, End: end, Negated: negated}, nil

	case token.IN:
		in := &ast.InListExpression{Operand: left, Negated: negated}
		if i+1 < len(c) && c[i+1].Kind == cst.SubqueryExpression {
			sub, err := v.Expression(c[i+1])
			if err != nil {
				return nil, err
			}
			in.Items = []ast.Expression{sub}
			return in, nil
		}
		list := n.Child(cst.ExpressionList)
		if list == nil {
			return nil, invariant(n.Kind, errMissing, "IN list")
		}
		if in.Items, err = v.expressionList(list); err != nil {
			return nil, err
		}
		return in, nil

	case token.LIKE:
		pattern, err := operand(i + 1)
		if err != nil {
			return nil, err
		}
		bop := ast.OpLike
		if negated {
			bop = ast.OpNotLike
		}
		return &ast.BinaryExpression{Left: left, Operator: bop, Right: pattern}, nil

	case token.IS:
		bop := ast.OpIs
		if n.TokenIndex(token.NOT) > i {
			bop = ast.OpIsNot
		}
		null := &ast.Literal{Type: ast.LiteralNull, Value: "null"}
		return &ast.BinaryExpression{Left: left, Operator: bop, Right: null}, nil

	default:
		return nil, invariant(n.Kind, errUnknownOperator, op.Token.Literal)
	}
}

// subquery converts the statement of a SubqueryExpression.
func (v Visitor) subquery(n *cst.Node) (ast.Statement, error) {
	sel := n.Child(cst.SelectStatement)
	if sel == nil {
		return nil, invariant(n.Kind, errMissing, "query")
	}
	return v.selectStatement(sel)
}

func (v Visitor) expressionList(n *cst.Node) ([]ast.Expression, error) {
	if n == nil {
		return nil, nil
	}
	var exprs []ast.Expression
	for _, c := range n.NonTerminals() {
		e, err := v.Expression(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func literal(n *cst.Node) (*ast.Literal, error) {
	if len(n.Children) == 0 {
		return nil, invariant(n.Kind, errMissing, "value")
	}
	tok := n.Children[0].Token
	switch tok.Type {
	case token.NUMBER:
		return &ast.Literal{Type: ast.LiteralNumber, Value: tok.Literal}, nil
	case token.STRING:
		s := tok.Literal
		if len(s) >= 2 {
			s = s[1 : len(s)-1]
		}
		return &ast.Literal{Type: ast.LiteralString, Value: strings.ReplaceAll(s, "''", "'")}, nil
	case token.TRUE:
		return &ast.Literal{Type: ast.LiteralBoolean, Value: "true"}, nil
	case token.FALSE:
		return &ast.Literal{Type: ast.LiteralBoolean, Value: "false"}, nil
	case token.NULL:
		return &ast.Literal{Type: ast.LiteralNull, Value: "null"}, nil
	default:
		return nil, invariant(n.Kind, errUnexpectedNode, tok.Type)
	}
}

func columnReference(n *cst.Node) (*ast.ColumnReference, error) {
	ref := &ast.ColumnReference{}
	for _, c := range n.Children {
		if c.IsTerminal(token.DOT) {
			continue
		}
		ref.Path = append(ref.Path, identifier(c))
	}
	if len(ref.Path) == 0 || len(ref.Path) > 2 {
		return nil, invariant(n.Kind, "column path of length %d", len(ref.Path))
	}
	return ref, nil
}
