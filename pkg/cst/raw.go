package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Raw regions.
//
// Where a relation, a condition or a LIMIT/OFFSET value does not fit the
// grammar, the parser keeps the exact source text up to the next clause
// boundary at parenthesis depth 0 as a Raw node. The statement around the
// region is still parsed normally.

// isClauseBoundary reports whether t ends a condition or value region.
func isClauseBoundary(t token.TokenType) bool {
	switch t {
	case token.EOF, token.SEMICOLON, token.RPAREN,
		token.WHERE, token.GROUP, token.HAVING, token.WINDOW, token.ORDER,
		token.LIMIT, token.OFFSET, token.ON,
		token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	return false
}

// isRelationBoundary reports whether t ends a relation region.
func isRelationBoundary(t token.TokenType) bool {
	switch t {
	case token.COMMA, token.USING, token.JOIN,
		token.INNER, token.LEFT, token.RIGHT, token.FULL:
		return true
	}
	return isClauseBoundary(t)
}

// parseRaw captures tokens up to a boundary at depth 0. The region must not
// be empty.
func (p *Parser) parseRaw(boundary func(token.TokenType) bool, what string) *Node {
	start := p.pos
	depth := 0
	for !p.check(token.EOF) {
		t := p.token().Type
		if depth == 0 && boundary(t) {
			break
		}
		switch t {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		p.pos++
	}

	if p.pos == start {
		p.addError(fmt.Sprintf(ErrEmptyRegion, what))
		return nil
	}

	span := token.Span{Start: p.tokens[start].Pos, End: p.tokens[p.pos-1].End}
	return &Node{Kind: Raw, Text: span.Text(p.src), Span: span}
}

// parseExprOrRaw parses an expression that must be followed by a boundary,
// falling back to a raw region when it is not.
func (p *Parser) parseExprOrRaw(boundary func(token.TokenType) bool, what string) *Node {
	m := p.mark()
	if expr := p.parseExpr(); expr != nil && boundary(p.token().Type) {
		return expr
	}
	p.reset(m)
	return p.parseRaw(boundary, what)
}
