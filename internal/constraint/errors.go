package constraint

import (
	"errors"
	"fmt"
)

// ErrInvalidOperator reports a comparison built with an operator outside
// the closed set. Construction-time failure, never retried.
var ErrInvalidOperator = errors.New("invalid comparison operator")

// ErrExpressionParse reports a raw filter-expression string that could
// not be parsed into a Constraint. Match with errors.Is; the concrete
// error is a *ParseError carrying position information.
var ErrExpressionParse = errors.New("filter expression parse failed")

// ParseError describes where and why parsing a filter expression failed.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// Unwrap makes errors.Is(err, ErrExpressionParse) hold for every parse
// failure.
func (e *ParseError) Unwrap() error { return ErrExpressionParse }
