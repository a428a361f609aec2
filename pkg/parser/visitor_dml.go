package parser

import (
	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// INSERT, UPDATE and DELETE conversion.

func (v Visitor) insertStatement(n *cst.Node) (*ast.InsertStatement, error) {
	name := n.Child(cst.QualifiedName)
	if name == nil || len(name.Children) == 0 {
		return nil, invariant(n.Kind, errMissing, "target table")
	}
	stmt := &ast.InsertStatement{
		Target:  tableReference(name),
		Columns: columnNames(n.Child(cst.ColumnNameList)),
	}

	switch {
	case n.Child(cst.ValuesClause) != nil:
		values := &ast.InsertValues{}
		for _, row := range n.Child(cst.ValuesClause).ChildrenOf(cst.ValuesRow) {
			exprs, err := v.expressionList(row.Child(cst.ExpressionList))
			if err != nil {
				return nil, err
			}
			values.Rows = append(values.Rows, exprs)
		}
		if len(values.Rows) == 0 {
			return nil, invariant(cst.ValuesClause, errMissing, "row")
		}
		stmt.Source = values
	case n.Child(cst.SelectStatement) != nil:
		sel, err := v.selectStatement(n.Child(cst.SelectStatement))
		if err != nil {
			return nil, err
		}
		stmt.Source = &ast.InsertSelect{Statement: sel}
	default:
		return nil, invariant(n.Kind, errMissing, "VALUES or SELECT source")
	}

	if oc := n.Child(cst.OnConflictClause); oc != nil {
		clause, err := v.onConflict(oc)
		if err != nil {
			return nil, err
		}
		stmt.OnConflict = clause
	}
	return stmt, nil
}

// onConflict converts ON CONFLICT [target] DO NOTHING | DO UPDATE SET ...
func (v Visitor) onConflict(n *cst.Node) (*ast.OnConflictClause, error) {
	clause := &ast.OnConflictClause{}

	if t := n.Child(cst.ConflictTarget); t != nil {
		exprs, err := v.expressionList(t.Child(cst.ExpressionList))
		if err != nil {
			return nil, err
		}
		clause.Target = &ast.ConflictTarget{Expressions: exprs}
	}

	switch {
	case n.HasToken(token.NOTHING):
		clause.Action = &ast.OnConflictDoNothing{}
	case n.HasToken(token.UPDATE):
		assignments, err := v.assignments(n.Kind, n.Child(cst.AssignmentList))
		if err != nil {
			return nil, err
		}
		where, err := v.clauseValue(n.Child(cst.WhereClause))
		if err != nil {
			return nil, err
		}
		clause.Action = &ast.OnConflictDoUpdate{Assignments: assignments, Where: where}
	default:
		return nil, invariant(n.Kind, errMissing, "conflict action")
	}
	return clause, nil
}

func (v Visitor) updateStatement(n *cst.Node) (*ast.UpdateStatement, error) {
	tbl := target(n.Child(cst.TableOrSubquery))
	if tbl == nil {
		return nil, invariant(n.Kind, errMissing, "target table")
	}
	assignments, err := v.assignments(n.Kind, n.Child(cst.AssignmentList))
	if err != nil {
		return nil, err
	}
	where, err := v.clauseValue(n.Child(cst.WhereClause))
	if err != nil {
		return nil, err
	}
	return &ast.UpdateStatement{Target: tbl, Assignments: assignments, Where: where}, nil
}

func (v Visitor) deleteStatement(n *cst.Node) (*ast.DeleteStatement, error) {
	tbl := target(n.Child(cst.TableOrSubquery))
	if tbl == nil {
		return nil, invariant(n.Kind, errMissing, "target table")
	}
	where, err := v.clauseValue(n.Child(cst.WhereClause))
	if err != nil {
		return nil, err
	}
	return &ast.DeleteStatement{Target: tbl, Where: where}, nil
}

// assignments converts an AssignmentList, which must hold at least one
// assignment.
func (v Visitor) assignments(owner cst.Kind, n *cst.Node) ([]*ast.Assignment, error) {
	if n == nil {
		return nil, invariant(owner, errMissing, "assignments")
	}
	var out []*ast.Assignment
	for _, a := range n.ChildrenOf(cst.Assignment) {
		if len(a.Children) != 3 {
			return nil, invariant(a.Kind, errMissing, "column or value")
		}
		value, err := v.Expression(a.Children[2])
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Assignment{Column: identifier(a.Children[0]), Value: value})
	}
	if len(out) == 0 {
		return nil, invariant(owner, errMissing, "assignments")
	}
	return out, nil
}
