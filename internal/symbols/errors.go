package symbols

import (
	"fmt"

	"github.com/cwbudde/sigil/internal/lexer"
)

// Error reports a catalog-construction failure: a duplicate
// declaration, an unresolved reference, or a closure violation found
// while merging the prelude and user items into a Symbols table.
type Error struct {
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	if e.Pos == (lexer.Position{}) {
		return e.Message
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func errf(pos lexer.Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// errf0 builds an Error with no source position, for catalog-closure
// violations that span multiple declarations rather than one node.
func errf0(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
