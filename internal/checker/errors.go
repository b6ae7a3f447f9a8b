package checker

import (
	"fmt"

	"github.com/cwbudde/sigil/internal/lexer"
)

// TypecheckError is a fatal static error raised by the checker:
// a type mismatch, an unresolved type variable, an unknown identifier,
// a redeclaration, an immutability violation, or a malformed call
// (spec.md §7). Checking stops at the first one.
type TypecheckError struct {
	Message string
	Pos     lexer.Position
}

func (e *TypecheckError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func errf(pos lexer.Position, format string, args ...any) *TypecheckError {
	return &TypecheckError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
