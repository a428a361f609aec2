package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Statement parsing: statement root, WITH clause, CTEs, SELECT body,
// result columns, ORDER BY, LIMIT, OFFSET.
//
// Grammar:
//
//	statement     → (select_stmt | insert_stmt | update_stmt | delete_stmt) [";"] EOF
//	select_stmt   → [with_clause] select_core (compound_op select_core)*
//	                [order_by] [limit] [offset]
//	with_clause   → WITH [RECURSIVE] cte ("," cte)*
//	cte           → name [column_list] AS "(" select_stmt ")"
//	compound_op   → UNION [ALL|DISTINCT] | INTERSECT | EXCEPT
//	select_core   → SELECT [DISTINCT|ALL] result_column ("," result_column)*
//	                [FROM from_list] [WHERE cond] [GROUP BY expr_list]
//	                [HAVING cond] [WINDOW window_def ("," window_def)*]
//	result_column → "*" | name "." "*" | expr [[AS] alias]
//	order_by      → ORDER BY ordering_term ("," ordering_term)*
//	ordering_term → expr [ASC|DESC] [NULLS FIRST|LAST]
//	limit         → LIMIT (expr | raw)
//	offset        → OFFSET (expr | raw)

// parseStatement parses a complete SQL statement and requires the whole
// input to be consumed.
func (p *Parser) parseStatement() *Node {
	var body *Node
	switch p.token().Type {
	case token.SELECT, token.WITH:
		body = p.parseSelectStatement()
	case token.INSERT:
		body = p.parseInsertStatement()
	case token.UPDATE:
		body = p.parseUpdateStatement()
	case token.DELETE:
		body = p.parseDeleteStatement()
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "statement"))
		return nil
	}
	if body == nil {
		return nil
	}

	stmt := NewNode(Statement, body)
	stmt.Append(p.match(token.SEMICOLON))

	if !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token().Type))
		return nil
	}
	return stmt
}

// parseSelectStatement parses a possibly compound SELECT.
func (p *Parser) parseSelectStatement() *Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	n := NewNode(SelectStatement)

	if p.check(token.WITH) {
		with := p.parseWithClause()
		if with == nil {
			return nil
		}
		n.Append(with)
	}

	core := p.parseSelectCore()
	if core == nil {
		return nil
	}
	n.Append(core)

	for p.checkAny(token.UNION, token.INTERSECT, token.EXCEPT) {
		n.Append(p.parseCompoundOperator())
		core := p.parseSelectCore()
		if core == nil {
			return nil
		}
		n.Append(core)
	}

	if p.check(token.ORDER) {
		orderBy := p.parseOrderByClause()
		if orderBy == nil {
			return nil
		}
		n.Append(orderBy)
	}

	if p.check(token.LIMIT) {
		limit := p.parseValueClause(LimitClause, "limit value")
		if limit == nil {
			return nil
		}
		n.Append(limit)
	}

	if p.check(token.OFFSET) {
		offset := p.parseValueClause(OffsetClause, "offset value")
		if offset == nil {
			return nil
		}
		n.Append(offset)
	}

	return n
}

// parseWithClause parses a WITH clause with CTEs.
func (p *Parser) parseWithClause() *Node {
	n := NewNode(WithClause, p.expect(token.WITH))
	n.Append(p.match(token.RECURSIVE))

	for {
		cte := p.parseCTE()
		if cte == nil {
			return nil
		}
		n.Append(cte)

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}

// parseCTE parses a single common table expression.
func (p *Parser) parseCTE() *Node {
	name := p.parseName("CTE name")
	if name == nil {
		return nil
	}
	n := NewNode(CommonTableExpression, name)

	if p.check(token.LPAREN) {
		cols := p.parseColumnNameList()
		if cols == nil {
			return nil
		}
		n.Append(cols)
	}

	as := p.expect(token.AS)
	if as == nil {
		return nil
	}
	n.Append(as)

	lparen := p.expect(token.LPAREN)
	if lparen == nil {
		return nil
	}
	n.Append(lparen)

	sel := p.parseSelectStatement()
	if sel == nil {
		return nil
	}
	n.Append(sel)

	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	n.Append(rparen)
	return n
}

// parseCompoundOperator parses UNION [ALL|DISTINCT], INTERSECT or EXCEPT.
func (p *Parser) parseCompoundOperator() *Node {
	n := NewNode(CompoundOperator, p.nextToken())
	if n.Children[0].Token.Type == token.UNION {
		if all := p.match(token.ALL); all != nil {
			n.Append(all)
		} else {
			n.Append(p.match(token.DISTINCT))
		}
	}
	return n
}

// parseSelectCore parses a single SELECT clause.
func (p *Parser) parseSelectCore() *Node {
	sel := p.expect(token.SELECT)
	if sel == nil {
		return nil
	}
	n := NewNode(SelectCore, sel)

	// DISTINCT / ALL
	if distinct := p.match(token.DISTINCT); distinct != nil {
		n.Append(distinct)
	} else {
		n.Append(p.match(token.ALL))
	}

	for {
		col := p.parseResultColumn()
		if col == nil {
			return nil
		}
		n.Append(col)

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}

	type clause struct {
		tok   token.TokenType
		parse func() *Node
	}
	clauses := []clause{
		{token.FROM, p.parseFromClause},
		{token.WHERE, func() *Node { return p.parseConditionClause(WhereClause) }},
		{token.GROUP, p.parseGroupByClause},
		{token.HAVING, func() *Node { return p.parseConditionClause(HavingClause) }},
		{token.WINDOW, p.parseWindowDefinitionList},
	}
	for _, c := range clauses {
		if !p.check(c.tok) {
			continue
		}
		node := c.parse()
		if node == nil {
			return nil
		}
		n.Append(node)
	}

	return n
}

// parseResultColumn parses a single SELECT item.
func (p *Parser) parseResultColumn() *Node {
	if p.check(token.STAR) {
		return NewNode(ResultColumn, p.nextToken())
	}

	// table.* using 3-token lookahead
	if isName(p.token()) && p.checkPeek(token.DOT) && p.peekN(2).Type == token.STAR {
		return NewNode(ResultColumn, p.nextToken(), p.nextToken(), p.nextToken())
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return NewNode(ResultColumn, expr, p.parseAlias())
}

// parseOrderByClause parses ORDER BY ordering_term ("," ordering_term)*.
func (p *Parser) parseOrderByClause() *Node {
	n := NewNode(OrderByClause, p.expect(token.ORDER))
	by := p.expect(token.BY)
	if by == nil {
		return nil
	}
	n.Append(by)

	for {
		term := p.parseOrderingTerm()
		if term == nil {
			return nil
		}
		n.Append(term)

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}

// parseOrderingTerm parses a single ORDER BY item.
func (p *Parser) parseOrderingTerm() *Node {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	n := NewNode(OrderingTerm, expr)

	// ASC / DESC
	if p.checkAny(token.ASC, token.DESC) {
		n.Append(p.nextToken())
	}

	// NULLS FIRST / LAST
	if p.check(token.NULLS) {
		n.Append(p.nextToken())
		if !p.checkAny(token.FIRST, token.LAST) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "FIRST or LAST"))
			return nil
		}
		n.Append(p.nextToken())
	}
	return n
}

// parseValueClause parses LIMIT or OFFSET followed by a value. A value the
// expression grammar cannot handle is kept as a raw region.
func (p *Parser) parseValueClause(kind Kind, what string) *Node {
	n := NewNode(kind, p.nextToken())
	value := p.parseExprOrRaw(isClauseBoundary, what)
	if value == nil {
		return nil
	}
	n.Append(value)
	return n
}

// parseConditionClause parses WHERE or HAVING followed by a condition. A
// condition the expression grammar cannot handle is kept as a raw region.
func (p *Parser) parseConditionClause(kind Kind) *Node {
	n := NewNode(kind, p.nextToken())
	cond := p.parseExprOrRaw(isClauseBoundary, "condition")
	if cond == nil {
		return nil
	}
	n.Append(cond)
	return n
}

// parseGroupByClause parses GROUP BY expr_list.
func (p *Parser) parseGroupByClause() *Node {
	n := NewNode(GroupByClause, p.expect(token.GROUP))
	by := p.expect(token.BY)
	if by == nil {
		return nil
	}
	n.Append(by)

	list := p.parseExpressionList()
	if list == nil {
		return nil
	}
	n.Append(list)
	return n
}

// parseExpressionList parses expr ("," expr)*.
func (p *Parser) parseExpressionList() *Node {
	n := NewNode(ExpressionList)
	for {
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		n.Append(expr)

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}
