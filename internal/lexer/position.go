package lexer

import "fmt"

// Position identifies a location in source text.
//
// Offset is a byte offset into the original source string, Line and
// Column are 1-indexed. Column counts runes, not bytes, the same way
// the teacher's token.Position does, so error carets line up correctly
// for multi-byte identifiers.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
