package parser

import (
	"fmt"

	"github.com/cwbudde/sigil/internal/lexer"
)

// ParseError is a fatal syntax error raised by the parser. Parsing
// stops at the first one (spec.md §7: static errors are fatal).
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func errf(pos lexer.Position, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
