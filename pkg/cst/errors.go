package cst

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// ParseError represents a grammar error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken = "unexpected token %s, expected %s"
	ErrExpectedExpr    = "unexpected token in expression: %s"
	ErrTrailingInput   = "unexpected %s after end of statement"
	ErrEmptyRegion     = "expected %s"
)
