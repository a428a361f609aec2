// Package token defines the lexical tokens of the sqlseg grammar.
//
// The token set is closed: every keyword the grammar understands has a
// constant here, and anything else lexes as IDENT or ILLEGAL.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads better at call sites than token.Type
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // name, "quoted name", [bracketed name]
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'
	PARAM  // ? or ?N

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	ARROW     // ->
	DARROW    // ->>
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )

	// Keywords (alphabetical)
	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CONFLICT
	CROSS
	CURRENT
	DELETE
	DESC
	DISTINCT
	DO
	ELSE
	END
	EXCEPT
	EXISTS
	FALSE
	FIRST
	FOLLOWING
	FROM
	FULL
	GROUP
	GROUPS
	HAVING
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LAST
	LEFT
	LIKE
	LIMIT
	NATURAL
	NOT
	NOTHING
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	RANGE
	RECURSIVE
	RIGHT
	ROW
	ROWS
	SELECT
	SET
	THEN
	TRUE
	UNBOUNDED
	UNION
	UPDATE
	USING
	VALUES
	WHEN
	WHERE
	WINDOW
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	PARAM:  "PARAM",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	ARROW:     "->",
	DARROW:    "->>",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":       ALL,
	"and":       AND,
	"as":        AS,
	"asc":       ASC,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"conflict":  CONFLICT,
	"cross":     CROSS,
	"current":   CURRENT,
	"delete":    DELETE,
	"desc":      DESC,
	"distinct":  DISTINCT,
	"do":        DO,
	"else":      ELSE,
	"end":       END,
	"except":    EXCEPT,
	"exists":    EXISTS,
	"false":     FALSE,
	"first":     FIRST,
	"following": FOLLOWING,
	"from":      FROM,
	"full":      FULL,
	"group":     GROUP,
	"groups":    GROUPS,
	"having":    HAVING,
	"in":        IN,
	"inner":     INNER,
	"insert":    INSERT,
	"intersect": INTERSECT,
	"into":      INTO,
	"is":        IS,
	"join":      JOIN,
	"last":      LAST,
	"left":      LEFT,
	"like":      LIKE,
	"limit":     LIMIT,
	"natural":   NATURAL,
	"not":       NOT,
	"nothing":   NOTHING,
	"null":      NULL,
	"nulls":     NULLS,
	"offset":    OFFSET,
	"on":        ON,
	"or":        OR,
	"order":     ORDER,
	"outer":     OUTER,
	"over":      OVER,
	"partition": PARTITION,
	"preceding": PRECEDING,
	"range":     RANGE,
	"recursive": RECURSIVE,
	"right":     RIGHT,
	"row":       ROW,
	"rows":      ROWS,
	"select":    SELECT,
	"set":       SET,
	"then":      THEN,
	"true":      TRUE,
	"unbounded": UNBOUNDED,
	"union":     UNION,
	"update":    UPDATE,
	"using":     USING,
	"values":    VALUES,
	"when":      WHEN,
	"where":     WHERE,
	"window":    WINDOW,
	"with":      WITH,
}

func init() {
	for word, t := range keywords {
		tokenNames[t] = toUpperASCII(word)
	}
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// LookupIdent returns the keyword token type for the given lowercase
// identifier, or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RPAREN
}

// IsSoftKeyword reports whether a keyword only has meaning in a specific
// context and may otherwise be used as a column, table or alias name.
// Example: "rows" is a frame unit in OVER (ROWS ...) but also a fine column name.
func IsSoftKeyword(t TokenType) bool {
	switch t {
	case CONFLICT, CURRENT, DO, FIRST, FOLLOWING, GROUPS, LAST, NOTHING, NULLS,
		PARTITION, PRECEDING, RANGE, RECURSIVE, ROW, ROWS, UNBOUNDED:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
// Literal is the exact source text of the token; quoted strings and
// identifiers keep their delimiters and escape sequences.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position // first byte of the token
	End     Position // one past the last byte of the token
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
