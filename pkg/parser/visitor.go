package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/cst"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Visitor converts a concrete syntax tree into AST nodes. It has one
// conversion method per grammar production and holds no state, so the
// zero value is ready to use and safe for concurrent use.
//
// Conversion never modifies the CST. Parameters are created with
// ast.UnresolvedPosition; positions are assigned by the resolver.
type Visitor struct{}

// Statement converts a Statement or statement-kind CST node. A root kind
// the visitor does not handle yields an error wrapping ErrUnsupported; a
// node missing a required part yields an *InvariantError.
func (v Visitor) Statement(n *cst.Node) (ast.Statement, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: empty tree", ErrUnsupported)
	}

	switch n.Kind {
	case cst.Statement:
		body := n.NonTerminals()
		if len(body) == 0 {
			return nil, invariant(n.Kind, errMissing, "statement body")
		}
		return v.Statement(body[0])
	case cst.SelectStatement:
		return v.selectStatement(n)
	case cst.InsertStatement:
		return v.insertStatement(n)
	case cst.UpdateStatement:
		return v.updateStatement(n)
	case cst.DeleteStatement:
		return v.deleteStatement(n)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind)
	}
}

// ---------- SELECT ----------

// selectStatement converts a possibly compound SELECT. Without a compound
// operator the trailing clauses belong to the single core; otherwise they
// belong to the compound as a whole.
func (v Visitor) selectStatement(n *cst.Node) (ast.Statement, error) {
	var (
		with    *ast.WithClause
		cores   []*ast.SelectStatement
		ops     []ast.CompoundOperator
		orderBy []*ast.OrderingTerm
		limit   ast.Expression
		offset  ast.Expression
		err     error
	)

	for _, c := range n.Children {
		switch c.Kind {
		case cst.WithClause:
			with, err = v.withClause(c)
		case cst.SelectCore:
			var core *ast.SelectStatement
			core, err = v.selectCore(c)
			cores = append(cores, core)
		case cst.CompoundOperator:
			var op ast.CompoundOperator
			op, err = v.compoundOperator(c)
			ops = append(ops, op)
		case cst.OrderByClause:
			orderBy, err = v.orderBy(c)
		case cst.LimitClause:
			limit, err = v.clauseValue(c)
		case cst.OffsetClause:
			offset, err = v.clauseValue(c)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(cores) == 0 {
		return nil, invariant(n.Kind, errMissing, "select core")
	}

	if len(ops) == 0 {
		core := cores[0]
		core.With = with
		core.OrderBy = orderBy
		core.Limit = limit
		core.Offset = offset
		return core, nil
	}

	if len(ops) != len(cores)-1 {
		return nil, invariant(n.Kind, "%d compound operators for %d select cores", len(ops), len(cores))
	}

	first := cores[0]
	first.OrderBy = nil
	first.Limit = nil
	first.Offset = nil

	branches := make([]*ast.CompoundBranch, len(ops))
	for i, op := range ops {
		branches[i] = &ast.CompoundBranch{Operator: op, Select: cores[i+1]}
	}

	return &ast.CompoundSelect{
		With:     with,
		First:    first,
		Branches: branches,
		OrderBy:  orderBy,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (v Visitor) compoundOperator(n *cst.Node) (ast.CompoundOperator, error) {
	if len(n.Children) == 0 {
		return "", invariant(n.Kind, errMissing, "operator")
	}
	switch op := n.Children[0].Token; op.Type {
	case token.UNION:
		if n.HasToken(token.ALL) {
			return ast.CompoundUnionByVersion, nil
		}
		return ast.CompoundUnion, nil
	case token.INTERSECT:
		return ast.CompoundIntersect, nil
	case token.EXCEPT:
		return ast.CompoundExcept, nil
	default:
		return "", invariant(n.Kind, errUnknownOperator, op.Literal)
	}
}

func (v Visitor) withClause(n *cst.Node) (*ast.WithClause, error) {
	with := &ast.WithClause{Recursive: n.HasToken(token.RECURSIVE)}
	for _, c := range n.ChildrenOf(cst.CommonTableExpression) {
		cte, err := v.commonTableExpression(c)
		if err != nil {
			return nil, err
		}
		with.CTEs = append(with.CTEs, cte)
	}
	if len(with.CTEs) == 0 {
		return nil, invariant(n.Kind, errMissing, "common table expression")
	}
	return with, nil
}

func (v Visitor) commonTableExpression(n *cst.Node) (*ast.CommonTableExpression, error) {
	if len(n.Children) == 0 || n.Children[0].Kind != cst.Terminal {
		return nil, invariant(n.Kind, errMissing, "name")
	}
	body := n.Child(cst.SelectStatement)
	if body == nil {
		return nil, invariant(n.Kind, errMissing, "query")
	}
	stmt, err := v.selectStatement(body)
	if err != nil {
		return nil, err
	}
	return &ast.CommonTableExpression{
		Name:      identifier(n.Children[0]),
		Columns:   columnNames(n.Child(cst.ColumnNameList)),
		Statement: stmt,
	}, nil
}

func (v Visitor) selectCore(n *cst.Node) (*ast.SelectStatement, error) {
	sel := &ast.SelectStatement{Distinct: n.HasToken(token.DISTINCT)}

	for _, c := range n.Children {
		var err error
		switch c.Kind {
		case cst.ResultColumn:
			var item ast.SelectItem
			item, err = v.resultColumn(c)
			sel.Projection = append(sel.Projection, item)
		case cst.FromClause:
			sel.FromClauses, err = v.fromClause(c)
		case cst.WhereClause:
			sel.Where, err = v.clauseValue(c)
		case cst.GroupByClause:
			sel.GroupBy, err = v.expressionList(c.Child(cst.ExpressionList))
		case cst.HavingClause:
			sel.Having, err = v.clauseValue(c)
		case cst.WindowDefinitionList:
			sel.Windows, err = v.windowDefinitions(c)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(sel.Projection) == 0 {
		return nil, invariant(n.Kind, errMissing, "result column")
	}
	return sel, nil
}

func (v Visitor) resultColumn(n *cst.Node) (ast.SelectItem, error) {
	c := n.Children
	switch {
	case len(c) == 1 && c[0].IsTerminal(token.STAR):
		return &ast.SelectStar{}, nil
	case len(c) == 3 && c[1].IsTerminal(token.DOT) && c[2].IsTerminal(token.STAR):
		return &ast.SelectQualifiedStar{Qualifier: identifier(c[0])}, nil
	case len(c) == 0:
		return nil, invariant(n.Kind, errMissing, "expression")
	}

	expr, err := v.Expression(c[0])
	if err != nil {
		return nil, err
	}
	return &ast.SelectExpression{Expression: expr, Alias: alias(n.Child(cst.Alias))}, nil
}

func (v Visitor) orderBy(n *cst.Node) ([]*ast.OrderingTerm, error) {
	var terms []*ast.OrderingTerm
	for _, c := range n.ChildrenOf(cst.OrderingTerm) {
		if len(c.Children) == 0 {
			return nil, invariant(c.Kind, errMissing, "expression")
		}
		expr, err := v.Expression(c.Children[0])
		if err != nil {
			return nil, err
		}
		term := &ast.OrderingTerm{Expression: expr}
		switch {
		case c.HasToken(token.ASC):
			term.Direction = ast.SortAsc
		case c.HasToken(token.DESC):
			term.Direction = ast.SortDesc
		}
		switch {
		case c.HasToken(token.FIRST):
			term.Nulls = ast.NullsFirst
		case c.HasToken(token.LAST):
			term.Nulls = ast.NullsLast
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// clauseValue converts the single operand of WHERE, HAVING, LIMIT or
// OFFSET. Raw operands become raw fragments.
func (v Visitor) clauseValue(n *cst.Node) (ast.Expression, error) {
	if n == nil {
		return nil, nil
	}
	operands := n.NonTerminals()
	if len(operands) == 0 {
		return nil, invariant(n.Kind, errMissing, "operand")
	}
	return v.Expression(operands[0])
}

// ---------- Names ----------

// identifier converts a name terminal. Double-quoted and bracketed names
// are unescaped and marked quoted; bare names are kept verbatim.
func identifier(n *cst.Node) *ast.Identifier {
	if n == nil {
		return nil
	}
	return identifierFromLiteral(n.Token.Literal)
}

func identifierFromLiteral(lit string) *ast.Identifier {
	if len(lit) >= 2 {
		switch lit[0] {
		case '"':
			return &ast.Identifier{Name: unescape(lit[1:len(lit)-1], '"'), Quoted: true}
		case '[':
			return &ast.Identifier{Name: unescape(lit[1:len(lit)-1], ']'), Quoted: true}
		}
	}
	return &ast.Identifier{Name: lit}
}

// unescape collapses doubled quote characters.
func unescape(s string, quote byte) string {
	if strings.IndexByte(s, quote) < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		sb.WriteByte(s[i])
		if s[i] == quote && i+1 < len(s) && s[i+1] == quote {
			i++
		}
	}
	return sb.String()
}

// alias returns the name of an Alias node, which is its last child.
func alias(n *cst.Node) *ast.Identifier {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return identifier(n.Children[len(n.Children)-1])
}

// columnNames converts the names of a ColumnNameList.
func columnNames(n *cst.Node) []*ast.Identifier {
	if n == nil {
		return nil
	}
	var cols []*ast.Identifier
	for _, c := range n.Children {
		if c.Kind != cst.Terminal {
			continue
		}
		switch c.Token.Type {
		case token.LPAREN, token.RPAREN, token.COMMA:
			continue
		}
		cols = append(cols, identifier(c))
	}
	return cols
}
