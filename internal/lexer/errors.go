package lexer

import "fmt"

// SyntaxError is raised by the lexer for an unexpected character or a
// malformed number literal (spec.md §4.1).
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}
