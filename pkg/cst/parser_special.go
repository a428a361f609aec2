package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Primary and special expression parsing: literals, parameters, column
// references, function calls, CASE, parenthesized expressions, subqueries
// and window specifications.
//
// Grammar:
//
//	primary       → literal | PARAM | column_ref | func_call | case_expr | paren_expr
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → name ["." name]
//	func_call     → name "(" [DISTINCT] ["*" | expr_list] ")" [OVER window]
//	case_expr     → CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
//	paren_expr    → "(" expr ")" | "(" select_stmt ")"
//	window        → name | window_spec
//	window_spec   → "(" [IDENT] [PARTITION BY expr_list] [order_by] [frame] ")"
//	frame         → (ROWS|RANGE|GROUPS) (BETWEEN frame_bound AND frame_bound | frame_bound)
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW
//	              | value PRECEDING | value FOLLOWING
//	window_list   → WINDOW name AS window_spec ("," name AS window_spec)*

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() *Node {
	switch p.token().Type {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL:
		return NewNode(Literal, p.nextToken())

	case token.PARAM:
		return NewNode(Parameter, p.nextToken())

	case token.CASE:
		return p.parseCaseExpression()

	case token.LPAREN:
		return p.parseParenthesized()
	}

	if isName(p.token()) {
		if p.checkPeek(token.LPAREN) {
			return p.parseFunctionCall()
		}
		n := NewNode(ColumnReference, p.nextToken())
		if p.check(token.DOT) && isQualifiedPart(p.peekN(1)) {
			n.Append(p.nextToken())
			n.Append(p.nextToken())
		}
		return n
	}

	p.addError(fmt.Sprintf(ErrExpectedExpr, p.token().Type))
	return nil
}

// parseParenthesized parses "(" expr ")" or "(" select_stmt ")".
func (p *Parser) parseParenthesized() *Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	lparen := p.expect(token.LPAREN)
	if lparen == nil {
		return nil
	}

	kind := ParenExpression
	var inner *Node
	if p.checkAny(token.SELECT, token.WITH) {
		kind = SubqueryExpression
		inner = p.parseSelectStatement()
	} else {
		inner = p.parseExpr()
	}
	if inner == nil {
		return nil
	}

	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	return NewNode(kind, lparen, inner, rparen)
}

// parseCaseExpression parses a CASE expression.
func (p *Parser) parseCaseExpression() *Node {
	n := NewNode(CaseExpression, p.expect(token.CASE))

	// Simple CASE: CASE expr WHEN ...
	if !p.check(token.WHEN) {
		operand := p.parseExpr()
		if operand == nil {
			return nil
		}
		n.Append(operand)
	}

	if !p.check(token.WHEN) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, token.WHEN))
		return nil
	}
	for p.check(token.WHEN) {
		n.Append(p.nextToken())
		cond := p.parseExpr()
		if cond == nil {
			return nil
		}
		n.Append(cond)

		then := p.expect(token.THEN)
		if then == nil {
			return nil
		}
		n.Append(then)

		result := p.parseExpr()
		if result == nil {
			return nil
		}
		n.Append(result)
	}

	if p.check(token.ELSE) {
		n.Append(p.nextToken())
		elseResult := p.parseExpr()
		if elseResult == nil {
			return nil
		}
		n.Append(elseResult)
	}

	end := p.expect(token.END)
	if end == nil {
		return nil
	}
	n.Append(end)
	return n
}

// parseFunctionCall parses a function call with an optional OVER clause.
func (p *Parser) parseFunctionCall() *Node {
	n := NewNode(FunctionCall, p.nextToken(), p.expect(token.LPAREN))

	switch {
	case p.check(token.STAR):
		n.Append(p.nextToken())
	case !p.check(token.RPAREN):
		n.Append(p.match(token.DISTINCT))
		args := p.parseExpressionList()
		if args == nil {
			return nil
		}
		n.Append(args)
	}

	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	n.Append(rparen)

	if p.check(token.OVER) {
		over := p.parseWindowClause()
		if over == nil {
			return nil
		}
		n.Append(over)
	}
	return n
}

// parseWindowClause parses OVER name or OVER window_spec.
func (p *Parser) parseWindowClause() *Node {
	n := NewNode(WindowClause, p.expect(token.OVER))

	if p.check(token.IDENT) {
		n.Append(p.nextToken())
		return n
	}

	spec := p.parseWindowSpecification()
	if spec == nil {
		return nil
	}
	n.Append(spec)
	return n
}

// parseWindowSpecification parses a parenthesized window specification.
func (p *Parser) parseWindowSpecification() *Node {
	lparen := p.expect(token.LPAREN)
	if lparen == nil {
		return nil
	}
	n := NewNode(WindowSpecification, lparen)

	// Base window name
	n.Append(p.match(token.IDENT))

	// PARTITION BY
	if p.check(token.PARTITION) {
		partition := NewNode(PartitionByClause, p.nextToken())
		by := p.expect(token.BY)
		if by == nil {
			return nil
		}
		partition.Append(by)
		list := p.parseExpressionList()
		if list == nil {
			return nil
		}
		partition.Append(list)
		n.Append(partition)
	}

	// ORDER BY
	if p.check(token.ORDER) {
		orderBy := p.parseOrderByClause()
		if orderBy == nil {
			return nil
		}
		n.Append(orderBy)
	}

	// Frame specification
	if p.checkAny(token.ROWS, token.RANGE, token.GROUPS) {
		frame := p.parseFrameClause()
		if frame == nil {
			return nil
		}
		n.Append(frame)
	}

	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	n.Append(rparen)
	return n
}

// parseFrameClause parses a window frame specification.
func (p *Parser) parseFrameClause() *Node {
	n := NewNode(FrameClause, p.nextToken())

	if p.check(token.BETWEEN) {
		n.Append(p.nextToken())
		start := p.parseFrameBound()
		if start == nil {
			return nil
		}
		n.Append(start)
		and := p.expect(token.AND)
		if and == nil {
			return nil
		}
		n.Append(and)
		end := p.parseFrameBound()
		if end == nil {
			return nil
		}
		n.Append(end)
		return n
	}

	start := p.parseFrameBound()
	if start == nil {
		return nil
	}
	n.Append(start)
	return n
}

// parseFrameBound parses a frame bound.
func (p *Parser) parseFrameBound() *Node {
	switch {
	case p.check(token.UNBOUNDED):
		n := NewNode(FrameBound, p.nextToken())
		if !p.checkAny(token.PRECEDING, token.FOLLOWING) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "PRECEDING or FOLLOWING"))
			return nil
		}
		n.Append(p.nextToken())
		return n

	case p.check(token.CURRENT) && p.checkPeek(token.ROW):
		return NewNode(FrameBound, p.nextToken(), p.nextToken())
	}

	offset := p.parseValue()
	if offset == nil {
		return nil
	}
	if !p.checkAny(token.PRECEDING, token.FOLLOWING) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "PRECEDING or FOLLOWING"))
		return nil
	}
	return NewNode(FrameBound, offset, p.nextToken())
}

// parseWindowDefinitionList parses WINDOW name AS window_spec ("," ...)*.
func (p *Parser) parseWindowDefinitionList() *Node {
	n := NewNode(WindowDefinitionList, p.expect(token.WINDOW))
	for {
		name := p.parseName("window name")
		if name == nil {
			return nil
		}
		as := p.expect(token.AS)
		if as == nil {
			return nil
		}
		spec := p.parseWindowSpecification()
		if spec == nil {
			return nil
		}
		n.Append(NewNode(WindowDefinition, name, as, spec))

		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	return n
}
