package ast

import "reflect"

// Walk traverses an AST depth-first in lexical order and calls fn for each
// node. If fn returns false, the children of that node are skipped.
//
// Lexical order follows the SQL text: for a SELECT the WITH clause comes
// first, then the projection, FROM relations with their joins, WHERE,
// GROUP BY, HAVING, WINDOW, ORDER BY, LIMIT and OFFSET.
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Parameters returns every parameter under node in lexical order.
func Parameters(node Node) []*Parameter {
	var params []*Parameter
	Walk(node, func(n Node) bool {
		if p, ok := n.(*Parameter); ok {
			params = append(params, p)
		}
		return true
	})
	return params
}

// RawFragments returns every raw fragment under node in lexical order.
func RawFragments(node Node) []*RawFragment {
	var raws []*RawFragment
	Walk(node, func(n Node) bool {
		if r, ok := n.(*RawFragment); ok {
			raws = append(raws, r)
		}
		return true
	})
	return raws
}

// Children returns the direct, non-nil children of node in lexical order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *SegmentedStatement:
		for _, s := range n.Segments {
			add(s)
		}

	case *StatementSegment:
		add(n.Statement)

	case *SelectStatement:
		add(n.With)
		for _, item := range n.Projection {
			add(item)
		}
		for _, fc := range n.FromClauses {
			add(fc)
		}
		add(n.Where)
		for _, e := range n.GroupBy {
			add(e)
		}
		add(n.Having)
		for _, w := range n.Windows {
			add(w)
		}
		for _, o := range n.OrderBy {
			add(o)
		}
		add(n.Limit, n.Offset)

	case *CompoundSelect:
		add(n.With, n.First)
		for _, b := range n.Branches {
			add(b)
		}
		for _, o := range n.OrderBy {
			add(o)
		}
		add(n.Limit, n.Offset)

	case *CompoundBranch:
		add(n.Select)

	case *WithClause:
		for _, cte := range n.CTEs {
			add(cte)
		}

	case *CommonTableExpression:
		add(n.Name)
		for _, c := range n.Columns {
			add(c)
		}
		add(n.Statement)

	case *InsertStatement:
		add(n.Target)
		for _, c := range n.Columns {
			add(c)
		}
		add(n.Source, n.OnConflict)

	case *InsertValues:
		for _, row := range n.Rows {
			for _, e := range row {
				add(e)
			}
		}

	case *InsertSelect:
		add(n.Statement)

	case *OnConflictClause:
		add(n.Target, n.Action)

	case *ConflictTarget:
		for _, e := range n.Expressions {
			add(e)
		}

	case *OnConflictDoUpdate:
		for _, a := range n.Assignments {
			add(a)
		}
		add(n.Where)

	case *UpdateStatement:
		add(n.Target)
		for _, a := range n.Assignments {
			add(a)
		}
		add(n.Where)

	case *DeleteStatement:
		add(n.Target, n.Where)

	case *Assignment:
		add(n.Column, n.Value)

	case *SelectQualifiedStar:
		add(n.Qualifier)

	case *SelectExpression:
		add(n.Expression, n.Alias)

	case *FromClause:
		add(n.Relation)
		for _, j := range n.Joins {
			add(j)
		}

	case *Join:
		add(n.Relation, n.On)
		for _, u := range n.Using {
			add(u)
		}

	case *TableReference:
		add(n.Schema, n.Name, n.Alias)

	case *Subquery:
		add(n.Statement, n.Alias)

	case *OrderingTerm:
		add(n.Expression)

	case *ColumnReference:
		for _, id := range n.Path {
			add(id)
		}

	case *BinaryExpression:
		add(n.Left, n.Right)

	case *UnaryExpression:
		add(n.Operand)

	case *GroupedExpression:
		add(n.Expression)

	case *InListExpression:
		add(n.Operand)
		for _, item := range n.Items {
			add(item)
		}

	case *BetweenExpression:
		add(n.Operand, n.Start, n.End)

	case *ExistsExpression:
		add(n.Statement)

	case *FunctionCall:
		add(n.Name)
		for _, arg := range n.Arguments {
			add(arg)
		}
		add(n.Over)

	case *CaseExpression:
		add(n.Operand)
		for _, b := range n.Branches {
			add(b)
		}
		add(n.ElseResult)

	case *CaseBranch:
		add(n.Condition, n.Result)

	case *SubqueryExpression:
		add(n.Statement)

	case *WindowReference:
		add(n.Name)

	case *WindowSpecification:
		add(n.Name)
		for _, e := range n.PartitionBy {
			add(e)
		}
		for _, o := range n.OrderBy {
			add(o)
		}
		add(n.Frame)

	case *WindowFrame:
		add(n.Start, n.End)

	case *FrameBound:
		add(n.Offset)

	case *WindowDefinition:
		add(n.Name, n.Specification)
	}
	return out
}

// isNil reports whether n is nil or an interface holding a nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
