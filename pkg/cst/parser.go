package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Grammar overview
//
// The parser is a recursive descent parser over the full token slice of
// the input. Productions return nil on failure after recording an error;
// the few places that try alternatives save and restore the cursor.
//
//	statement      → (select_stmt | insert_stmt | update_stmt | delete_stmt) [";"] EOF
//	select_stmt    → [with_clause] select_core (compound_op select_core)*
//	                 [order_by] [limit] [offset]
//	select_core    → SELECT [DISTINCT|ALL] result_column ("," result_column)*
//	                 [from_clause] [where] [group_by] [having] [window_list]
//
// See each file for the grammar rules of that section.

// maxDepth bounds expression and subquery nesting.
const maxDepth = 512

// Provider produces a concrete syntax tree for SQL text, or nil when the
// grammar rejects the input. Implementations must be safe for concurrent
// use.
type Provider interface {
	ParseCST(sql string) *Node
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(sql string) *Node

// ParseCST calls f(sql).
func (f ProviderFunc) ParseCST(sql string) *Node {
	return f(sql)
}

type defaultProvider struct{}

func (defaultProvider) ParseCST(sql string) *Node {
	return ParseCST(sql)
}

// Default is the grammar shipped with this package.
var Default Provider = defaultProvider{}

// ParseCST parses sql with the default grammar. It returns nil if the input
// is not a single statement the grammar accepts.
func ParseCST(sql string) *Node {
	root, err := ParseWithError(sql)
	if err != nil {
		return nil
	}
	return root
}

// ParseWithError parses sql with the default grammar and reports the
// furthest error reached when the input is rejected.
func ParseWithError(sql string) (*Node, error) {
	p := newParser(sql)
	root := p.parseStatement()
	if root == nil {
		return nil, p.furthestError()
	}
	return root, nil
}

// ParseExpression parses sql as a single expression.
func ParseExpression(sql string) (*Node, error) {
	p := newParser(sql)
	expr := p.parseExpr()
	if expr != nil && !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, token.EOF))
		expr = nil
	}
	if expr == nil {
		return nil, p.furthestError()
	}
	return expr, nil
}

// Parser holds the state of a single parse.
type Parser struct {
	src    string
	tokens []token.Token
	pos    int
	depth  int
	errors []*ParseError
}

func newParser(sql string) *Parser {
	tokens, _ := Tokenize(sql)
	return &Parser{src: sql, tokens: tokens}
}

// ---------- Token Helpers ----------

// token returns the current token.
func (p *Parser) token() token.Token {
	return p.tokens[p.pos]
}

// peekN returns the token n positions ahead, clamped to EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// nextToken consumes the current token and returns it as a terminal.
func (p *Parser) nextToken() *Node {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return NewTerminal(tok)
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token().Type == t
}

// checkPeek returns true if the next token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peekN(1).Type == t
}

// checkAny returns true if the current token is any of the given types.
func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

// match consumes the current token if it matches and returns its terminal,
// or nil.
func (p *Parser) match(t token.TokenType) *Node {
	if p.check(t) {
		return p.nextToken()
	}
	return nil
}

// expect consumes the current token if it matches, otherwise adds an error
// and returns nil.
func (p *Parser) expect(t token.TokenType) *Node {
	if p.check(t) {
		return p.nextToken()
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Type, t))
	return nil
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token().Pos,
		Message: msg,
	})
}

// furthestError returns the error recorded at the largest offset.
func (p *Parser) furthestError() error {
	var best *ParseError
	for _, err := range p.errors {
		if best == nil || err.Pos.Offset > best.Pos.Offset {
			best = err
		}
	}
	if best == nil {
		return &ParseError{Pos: p.token().Pos, Message: "invalid statement"}
	}
	return best
}

// mark returns the current cursor for a later reset.
func (p *Parser) mark() int {
	return p.pos
}

// reset rewinds the cursor to a mark.
func (p *Parser) reset(m int) {
	p.pos = m
}

// enter increments the nesting depth, failing when it exceeds maxDepth.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxDepth {
		p.addError("expression nested too deeply")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- Identifier Helpers ----------

// isName returns true if tok can be used as a plain name: an identifier or a
// soft keyword.
func isName(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsSoftKeyword(tok.Type)
}

// isQualifiedPart returns true if tok can follow a "." in a qualified name.
// Any keyword is unambiguous there, so t.order and o.end are names.
func isQualifiedPart(tok token.Token) bool {
	return isName(tok) || token.IsKeyword(tok.Type)
}

// parseName parses a name terminal.
func (p *Parser) parseName(what string) *Node {
	if isName(p.token()) {
		return p.nextToken()
	}
	p.addError("expected " + what)
	return nil
}

// parseAlias parses an optional alias: AS name, or a bare identifier.
// Soft keywords are only accepted after AS. Returns nil without consuming
// anything when no alias follows.
func (p *Parser) parseAlias() *Node {
	if p.check(token.AS) {
		if !isName(p.peekN(1)) {
			p.addError("expected alias after AS")
			return nil
		}
		return NewNode(Alias, p.nextToken(), p.nextToken())
	}
	if p.check(token.IDENT) {
		return NewNode(Alias, p.nextToken())
	}
	return nil
}

// parseColumnNameList parses "(" name ("," name)* ")".
func (p *Parser) parseColumnNameList() *Node {
	lparen := p.expect(token.LPAREN)
	if lparen == nil {
		return nil
	}
	n := NewNode(ColumnNameList, lparen)
	for {
		name := p.parseName("column name")
		if name == nil {
			return nil
		}
		n.Append(name)
		comma := p.match(token.COMMA)
		if comma == nil {
			break
		}
		n.Append(comma)
	}
	rparen := p.expect(token.RPAREN)
	if rparen == nil {
		return nil
	}
	n.Append(rparen)
	return n
}

// parseQualifiedName parses name ["." name].
func (p *Parser) parseQualifiedName() *Node {
	first := p.parseName("table name")
	if first == nil {
		return nil
	}
	n := NewNode(QualifiedName, first)
	if p.check(token.DOT) && isQualifiedPart(p.peekN(1)) {
		n.Append(p.nextToken())
		n.Append(p.nextToken())
	}
	return n
}
