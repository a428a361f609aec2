package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Expression parsing by precedence level, loosest first.
//
// Grammar:
//
//	expr       → and_expr (OR and_expr)*
//	and_expr   → predicate (AND predicate)*
//	predicate  → NOT predicate
//	           | EXISTS subquery
//	           | value cmp_op value
//	           | value [NOT] BETWEEN value AND value
//	           | value [NOT] IN (subquery | "(" expr_list ")")
//	           | value [NOT] LIKE value
//	           | value IS [NOT] NULL
//	           | value
//	cmp_op     → "=" | "!=" | "<>" | "<" | ">" | "<=" | ">="
//	value      → mul_expr (("+" | "-") mul_expr)*
//	mul_expr   → json_expr (("*" | "/" | "%") json_expr)*
//	json_expr  → unary (("->" | "->>") unary)*
//	unary      → "-" unary | primary
//
// Chains with a single operand are not wrapped, so an expression node is
// only an OrExpression when OR actually occurs. Every predicate is wrapped
// in an AtomicPredicate.

// parseExpr parses an expression.
func (p *Parser) parseExpr() *Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	return p.parseChain(OrExpression, p.parseAndExpr, token.OR)
}

// parseAndExpr parses predicates joined by AND.
func (p *Parser) parseAndExpr() *Node {
	return p.parseChain(AndExpression, p.parsePredicate, token.AND)
}

// parseChain parses operand (op operand)* and wraps the result in a node
// of the given kind when at least one operator is present.
func (p *Parser) parseChain(kind Kind, operand func() *Node, ops ...token.TokenType) *Node {
	first := operand()
	if first == nil {
		return nil
	}
	if !p.checkAny(ops...) {
		return first
	}

	n := NewNode(kind, first)
	for p.checkAny(ops...) {
		n.Append(p.nextToken())
		next := operand()
		if next == nil {
			return nil
		}
		n.Append(next)
	}
	return n
}

// parsePredicate parses an atomic predicate.
func (p *Parser) parsePredicate() *Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	switch {
	case p.check(token.NOT):
		not := p.nextToken()
		inner := p.parsePredicate()
		if inner == nil {
			return nil
		}
		return NewNode(AtomicPredicate, not, inner)

	case p.check(token.EXISTS):
		exists := p.nextToken()
		if !p.check(token.LPAREN) || !p.checkPeek(token.SELECT) && !p.checkPeek(token.WITH) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, "subquery"))
			return nil
		}
		sub := p.parseParenthesized()
		if sub == nil {
			return nil
		}
		return NewNode(AtomicPredicate, exists, sub)
	}

	left := p.parseValue()
	if left == nil {
		return nil
	}
	n := NewNode(AtomicPredicate, left)

	// [NOT] BETWEEN / IN / LIKE
	if p.check(token.NOT) {
		switch p.peekN(1).Type {
		case token.BETWEEN, token.IN, token.LIKE:
			n.Append(p.nextToken())
		default:
			return n
		}
	}

	switch p.token().Type {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		n.Append(p.nextToken())
		right := p.parseValue()
		if right == nil {
			return nil
		}
		n.Append(right)

	case token.BETWEEN:
		n.Append(p.nextToken())
		low := p.parseValue()
		if low == nil {
			return nil
		}
		n.Append(low)
		and := p.expect(token.AND)
		if and == nil {
			return nil
		}
		n.Append(and)
		high := p.parseValue()
		if high == nil {
			return nil
		}
		n.Append(high)

	case token.IN:
		n.Append(p.nextToken())
		if !p.check(token.LPAREN) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, token.LPAREN))
			return nil
		}
		if p.checkPeek(token.SELECT) || p.checkPeek(token.WITH) {
			sub := p.parseParenthesized()
			if sub == nil {
				return nil
			}
			n.Append(sub)
			break
		}
		n.Append(p.nextToken())
		list := p.parseExpressionList()
		if list == nil {
			return nil
		}
		n.Append(list)
		rparen := p.expect(token.RPAREN)
		if rparen == nil {
			return nil
		}
		n.Append(rparen)

	case token.LIKE:
		n.Append(p.nextToken())
		pattern := p.parseValue()
		if pattern == nil {
			return nil
		}
		n.Append(pattern)

	case token.IS:
		n.Append(p.nextToken())
		n.Append(p.match(token.NOT))
		null := p.expect(token.NULL)
		if null == nil {
			return nil
		}
		n.Append(null)
	}

	return n
}

// parseValue parses an additive expression.
func (p *Parser) parseValue() *Node {
	return p.parseChain(AdditiveExpression, p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() *Node {
	return p.parseChain(MultiplicativeExpr, p.parseJSON, token.STAR, token.SLASH, token.PERCENT)
}

func (p *Parser) parseJSON() *Node {
	return p.parseChain(JSONExpression, p.parseUnary, token.ARROW, token.DARROW)
}

// parseUnary parses prefix minus.
func (p *Parser) parseUnary() *Node {
	if !p.check(token.MINUS) {
		return p.parsePrimary()
	}
	if !p.enter() {
		return nil
	}
	defer p.leave()

	minus := p.nextToken()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return NewNode(UnaryExpression, minus, operand)
}
