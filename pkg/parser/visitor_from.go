package parser

import (
	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// FROM clause conversion: from items, relations, joins.

func (v Visitor) fromClause(n *cst.Node) ([]*ast.FromClause, error) {
	var items []*ast.FromClause
	for _, c := range n.ChildrenOf(cst.FromItem) {
		item, err := v.fromItem(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, invariant(n.Kind, errMissing, "relation")
	}
	return items, nil
}

func (v Visitor) fromItem(n *cst.Node) (*ast.FromClause, error) {
	if len(n.Children) == 0 {
		return nil, invariant(n.Kind, errMissing, "relation")
	}
	rel, err := v.relation(n.Children[0], nil)
	if err != nil {
		return nil, err
	}

	item := &ast.FromClause{Relation: rel}
	for _, c := range n.ChildrenOf(cst.JoinClause) {
		join, err := v.join(c)
		if err != nil {
			return nil, err
		}
		item.Joins = append(item.Joins, join)
	}
	return item, nil
}

// relation converts a table reference, derived table, nested relation or
// raw region. A non-nil outer alias overrides the alias of the relation
// it wraps.
func (v Visitor) relation(n *cst.Node, outer *ast.Identifier) (ast.Relation, error) {
	switch n.Kind {
	case cst.Raw:
		return &ast.RawFragment{SQLText: n.Text}, nil
	case cst.TableOrSubquery:
	default:
		return nil, invariant(n.Kind, errUnexpectedNode, "relation")
	}

	as := alias(n.Child(cst.Alias))
	if outer != nil {
		as = outer
	}

	if name := n.Child(cst.QualifiedName); name != nil {
		ref := tableReference(name)
		ref.Alias = as
		return ref, nil
	}

	if sel := n.Child(cst.SelectStatement); sel != nil {
		stmt, err := v.selectStatement(sel)
		if err != nil {
			return nil, err
		}
		return &ast.Subquery{Statement: stmt, Alias: as}, nil
	}

	if inner := n.Child(cst.TableOrSubquery); inner != nil {
		return v.relation(inner, as)
	}
	return nil, invariant(n.Kind, errMissing, "table name or subquery")
}

// tableReference converts a QualifiedName: name or schema "." name.
func tableReference(n *cst.Node) *ast.TableReference {
	c := n.Children
	if len(c) == 3 {
		return &ast.TableReference{Schema: identifier(c[0]), Name: identifier(c[2])}
	}
	return &ast.TableReference{Name: identifier(c[0])}
}

// target converts the table of an UPDATE or DELETE.
func target(n *cst.Node) *ast.TableReference {
	if n == nil {
		return nil
	}
	name := n.Child(cst.QualifiedName)
	if name == nil || len(name.Children) == 0 {
		return nil
	}
	ref := tableReference(name)
	ref.Alias = alias(n.Child(cst.Alias))
	return ref
}

func (v Visitor) join(n *cst.Node) (*ast.Join, error) {
	join := &ast.Join{JoinType: ast.JoinInner}

	if jt := n.Child(cst.JoinType); jt != nil && len(jt.Children) > 0 {
		switch op := jt.Children[0].Token; op.Type {
		case token.INNER:
			join.JoinType = ast.JoinInner
		case token.LEFT:
			join.JoinType = ast.JoinLeft
		case token.RIGHT:
			join.JoinType = ast.JoinRight
		case token.FULL:
			join.JoinType = ast.JoinFull
		default:
			return nil, invariant(jt.Kind, "unknown join type %q", op.Literal)
		}
	}

	for i, c := range n.Children {
		switch {
		case c.Kind == cst.TableOrSubquery || c.Kind == cst.Raw:
			rel, err := v.relation(c, nil)
			if err != nil {
				return nil, err
			}
			join.Relation = rel
		case c.IsTerminal(token.ON):
			if i+1 >= len(n.Children) {
				return nil, invariant(n.Kind, errMissing, "join condition")
			}
			on, err := v.Expression(n.Children[i+1])
			if err != nil {
				return nil, err
			}
			join.On = on
		case c.Kind == cst.ColumnNameList:
			join.Using = columnNames(c)
		}
	}

	if join.Relation == nil {
		return nil, invariant(n.Kind, errMissing, "relation")
	}
	return join, nil
}
