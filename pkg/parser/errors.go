package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/cst"
)

// ErrUnsupported is returned by the visitor for a CST shape it does not
// convert, such as an unknown statement kind. Parse treats it as a
// grammar failure and falls back.
var ErrUnsupported = errors.New("unsupported syntax")

// InvariantError reports a CST that lacks a sub-node its production
// requires. It signals a mismatch between the grammar and the visitor,
// not a problem with the input text.
type InvariantError struct {
	Production string
	Message    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Production, e.Message)
}

func isUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

func invariant(kind cst.Kind, format string, args ...any) error {
	return &InvariantError{Production: kind.String(), Message: fmt.Sprintf(format, args...)}
}

// Common error messages
const (
	errMissing         = "missing %s"
	errUnknownOperator = "unknown operator %q"
	errUnexpectedNode  = "unexpected %s"
)
