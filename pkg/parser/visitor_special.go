package parser

import (
	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Function calls, CASE and window conversion.

func (v Visitor) functionCall(n *cst.Node) (*ast.FunctionCall, error) {
	if len(n.Children) == 0 {
		return nil, invariant(n.Kind, errMissing, "function name")
	}
	fn := &ast.FunctionCall{
		Name:     identifier(n.Children[0]),
		Distinct: n.HasToken(token.DISTINCT),
	}

	if n.HasToken(token.STAR) {
		fn.Arguments = []ast.Expression{&ast.AllColumns{}}
	} else {
		args, err := v.expressionList(n.Child(cst.ExpressionList))
		if err != nil {
			return nil, err
		}
		fn.Arguments = args
	}

	if over := n.Child(cst.WindowClause); over != nil {
		w, err := v.windowClause(over)
		if err != nil {
			return nil, err
		}
		fn.Over = w
	}
	return fn, nil
}

// caseExpression converts CASE [operand] (WHEN cond THEN result)+ [ELSE
// result] END. Every WHEN must be paired with a THEN.
func (v Visitor) caseExpression(n *cst.Node) (*ast.CaseExpression, error) {
	var (
		expr    = &ast.CaseExpression{}
		conds   []ast.Expression
		results []ast.Expression
	)

	c := n.Children
	for i := 0; i < len(c); i++ {
		if c[i].Kind != cst.Terminal {
			if i == 1 {
				operand, err := v.Expression(c[i])
				if err != nil {
					return nil, err
				}
				expr.Operand = operand
			}
			continue
		}

		switch c[i].Token.Type {
		case token.WHEN, token.THEN, token.ELSE:
		default:
			continue
		}
		if i+1 >= len(c) || c[i+1].Kind == cst.Terminal {
			return nil, invariant(n.Kind, "%s without expression", c[i].Token.Type)
		}
		e, err := v.Expression(c[i+1])
		if err != nil {
			return nil, err
		}
		switch c[i].Token.Type {
		case token.WHEN:
			conds = append(conds, e)
		case token.THEN:
			results = append(results, e)
		case token.ELSE:
			expr.ElseResult = e
		}
		i++
	}

	if len(conds) == 0 {
		return nil, invariant(n.Kind, errMissing, "WHEN branch")
	}
	if len(conds) != len(results) {
		return nil, invariant(n.Kind, "%d WHEN conditions but %d THEN results", len(conds), len(results))
	}
	for i := range conds {
		expr.Branches = append(expr.Branches, &ast.CaseBranch{Condition: conds[i], Result: results[i]})
	}
	return expr, nil
}

// windowClause converts OVER name or OVER (specification).
func (v Visitor) windowClause(n *cst.Node) (ast.WindowOver, error) {
	if spec := n.Child(cst.WindowSpecification); spec != nil {
		return v.windowSpecification(spec)
	}
	if len(n.Children) == 2 && n.Children[1].IsTerminal(token.IDENT) {
		return &ast.WindowReference{Name: identifier(n.Children[1])}, nil
	}
	return nil, invariant(n.Kind, errMissing, "window name or specification")
}

func (v Visitor) windowSpecification(n *cst.Node) (*ast.WindowSpecification, error) {
	spec := &ast.WindowSpecification{}
	for _, c := range n.Children {
		var err error
		switch {
		case c.IsTerminal(token.IDENT):
			spec.Name = identifier(c)
		case c.Kind == cst.PartitionByClause:
			spec.PartitionBy, err = v.expressionList(c.Child(cst.ExpressionList))
		case c.Kind == cst.OrderByClause:
			spec.OrderBy, err = v.orderBy(c)
		case c.Kind == cst.FrameClause:
			spec.Frame, err = v.windowFrame(c)
		}
		if err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func (v Visitor) windowFrame(n *cst.Node) (*ast.WindowFrame, error) {
	if len(n.Children) == 0 {
		return nil, invariant(n.Kind, errMissing, "frame unit")
	}
	frame := &ast.WindowFrame{}
	switch unit := n.Children[0].Token; unit.Type {
	case token.ROWS:
		frame.Unit = ast.FrameRows
	case token.RANGE:
		frame.Unit = ast.FrameRange
	case token.GROUPS:
		frame.Unit = ast.FrameGroups
	default:
		return nil, invariant(n.Kind, "unknown frame unit %q", unit.Literal)
	}

	bounds := n.ChildrenOf(cst.FrameBound)
	if len(bounds) == 0 || len(bounds) > 2 {
		return nil, invariant(n.Kind, "%d frame bounds", len(bounds))
	}
	start, err := v.frameBound(bounds[0])
	if err != nil {
		return nil, err
	}
	frame.Start = start
	if len(bounds) == 2 {
		if frame.End, err = v.frameBound(bounds[1]); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func (v Visitor) frameBound(n *cst.Node) (*ast.FrameBound, error) {
	c := n.Children
	if len(c) != 2 {
		return nil, invariant(n.Kind, errMissing, "bound direction")
	}

	switch {
	case c[0].IsTerminal(token.UNBOUNDED) && c[1].IsTerminal(token.PRECEDING):
		return &ast.FrameBound{BoundType: ast.BoundUnboundedPreceding}, nil
	case c[0].IsTerminal(token.UNBOUNDED) && c[1].IsTerminal(token.FOLLOWING):
		return &ast.FrameBound{BoundType: ast.BoundUnboundedFollowing}, nil
	case c[0].IsTerminal(token.CURRENT):
		return &ast.FrameBound{BoundType: ast.BoundCurrentRow}, nil
	}

	offset, err := v.Expression(c[0])
	if err != nil {
		return nil, err
	}
	switch {
	case c[1].IsTerminal(token.PRECEDING):
		return &ast.FrameBound{BoundType: ast.BoundPreceding, Offset: offset}, nil
	case c[1].IsTerminal(token.FOLLOWING):
		return &ast.FrameBound{BoundType: ast.BoundFollowing, Offset: offset}, nil
	default:
		return nil, invariant(n.Kind, "unknown bound direction %q", c[1].Token.Literal)
	}
}

func (v Visitor) windowDefinitions(n *cst.Node) ([]*ast.WindowDefinition, error) {
	var defs []*ast.WindowDefinition
	for _, c := range n.ChildrenOf(cst.WindowDefinition) {
		spec := c.Child(cst.WindowSpecification)
		if spec == nil || len(c.Children) == 0 {
			return nil, invariant(c.Kind, errMissing, "window specification")
		}
		s, err := v.windowSpecification(spec)
		if err != nil {
			return nil, err
		}
		defs = append(defs, &ast.WindowDefinition{Name: identifier(c.Children[0]), Specification: s})
	}
	return defs, nil
}
