package lower

import (
	"fmt"

	"github.com/cwbudde/sigil/internal/lexer"
)

// Error reports a malformed AST the lowerer cannot rewrite. In
// practice this only fires for a BinaryExpr.Op outside the four
// surface operators, which the parser never produces — it exists so
// lowering stays total over any Program, parser-built or not.
type Error struct {
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}
