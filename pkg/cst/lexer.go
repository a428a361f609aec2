package cst

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Lexer tokenizes SQL input.
//
// Token literals are the exact source text of each token, so quoted
// strings and identifiers keep their delimiters and escapes. The lexer
// never fails: unterminated quotes and unknown bytes become ILLEGAL
// tokens and lexing continues.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// atEOF reports whether the whole input has been consumed. A NUL byte
// inside the input is not EOF.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos, End: pos}
	}

	var typ token.TokenType

	switch l.ch {
	case '+':
		typ = token.PLUS
		l.readChar()
	case '-':
		l.readChar()
		typ = token.MINUS
		if l.ch == '>' {
			l.readChar()
			typ = token.ARROW
			if l.ch == '>' {
				l.readChar()
				typ = token.DARROW
			}
		}
	case '*':
		typ = token.STAR
		l.readChar()
	case '/':
		typ = token.SLASH
		l.readChar()
	case '%':
		typ = token.PERCENT
		l.readChar()
	case '=':
		typ = token.EQ
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
	case '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			typ = token.LE
		case '>':
			l.readChar()
			typ = token.NE
		default:
			typ = token.LT
		}
	case '>':
		l.readChar()
		typ = token.GT
		if l.ch == '=' {
			l.readChar()
			typ = token.GE
		}
	case '!':
		l.readChar()
		typ = token.ILLEGAL
		if l.ch == '=' {
			l.readChar()
			typ = token.NE
		}
	case '|':
		l.readChar()
		typ = token.ILLEGAL
		if l.ch == '|' {
			l.readChar()
			typ = token.DPIPE
		}
	case '.':
		if isDigit(l.peekChar()) {
			typ = token.NUMBER
			l.readNumber()
		} else {
			typ = token.DOT
			l.readChar()
		}
	case ',':
		typ = token.COMMA
		l.readChar()
	case ';':
		typ = token.SEMICOLON
		l.readChar()
	case '(':
		typ = token.LPAREN
		l.readChar()
	case ')':
		typ = token.RPAREN
		l.readChar()
	case '?':
		typ = token.PARAM
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	case '\'':
		typ = token.STRING
		if !l.readQuoted('\'') {
			typ = token.ILLEGAL
		}
	case '"':
		typ = token.IDENT
		if !l.readQuoted('"') {
			typ = token.ILLEGAL
		}
	case '[':
		typ = token.IDENT
		if !l.readQuoted(']') {
			typ = token.ILLEGAL
		}
	default:
		switch {
		case isIdentStart(l.ch):
			start := l.pos
			l.readIdentifier()
			typ = token.LookupIdent(strings.ToLower(l.input[start:l.pos]))
		case isDigit(l.ch):
			typ = token.NUMBER
			l.readNumber()
		default:
			typ = token.ILLEGAL
			l.readChar()
		}
	}

	end := l.currentPos()
	return token.Token{
		Type:    typ,
		Literal: l.input[pos.Offset:end.Offset],
		Pos:     pos,
		End:     end,
	}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isSpace(l.ch) && !l.atEOF() {
			l.readChar()
		}

		// Line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}

		// Block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()

	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startPos.Offset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment. An unterminated block
// comment runs to the end of input.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			break
		}
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startPos.Offset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readQuoted consumes a delimited literal starting at the opening
// delimiter. A doubled closing delimiter is an escape. Returns false if
// the input ends before the closing delimiter.
func (l *Lexer) readQuoted(closing byte) bool {
	l.readChar() // skip opening delimiter

	for !l.atEOF() {
		if l.ch == closing {
			if l.peekChar() == closing {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing delimiter
			return true
		}
		l.readChar()
	}
	return false
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() {
	for !l.atEOF() && (isIdentStart(l.ch) || isDigit(l.ch) || l.ch == '$') {
		l.readChar()
	}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part (1e10, 1E-5); only consumed when digits follow
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])) {
			l.readChar() // skip 'e'
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Tokenize returns all tokens from the input, ending with EOF, and the
// comments found between them.
func Tokenize(input string) ([]token.Token, []*token.Comment) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, l.Comments
}
