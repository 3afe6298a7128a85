package expando

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError is returned by Parse when a format string cannot be turned
// into a tree. Position is a byte offset into the original format string.
type ParseError struct {
	Position int
	Message  string
	cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("format string: position %d: %s", e.Position, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func newParseError(pos int, format string, args ...any) *ParseError {
	return &ParseError{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// wrapParseError attaches a lower-level cause (an error returned by a
// symbol's CustomParse sub-parser) to a ParseError, keeping a stack trace via pkg/errors
// so diagnostics can point past the format-string boundary when needed.
func wrapParseError(pos int, cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
		cause:    errors.WithStack(cause),
	}
}
