package eval

import (
	"fmt"

	"github.com/cwbudde/sigil/internal/effect"
	"github.com/cwbudde/sigil/internal/lexer"
)

// EvalError is a fatal runtime error: an undeclared sig, a missing
// impl, an unknown builtin id, or a Catch with no preceding Try
// (spec.md §4.7). It is distinct from RaisedFailure, which is a
// catchable dynamic failure rather than a host-terminating error.
type EvalError struct {
	Message string
	Pos     lexer.Position
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func errf(pos lexer.Position, format string, args ...any) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// RaisedFailure is the runtime carrier of a dynamic failure
// (spec.md §7): it propagates through expression evaluation and is
// only caught by the innermost adjacent top-level try/catch group, or
// swallowed by the `handled` attribute of the callee's sig.
type RaisedFailure struct {
	Fid effect.FailureId
}

func (r *RaisedFailure) Error() string {
	return fmt.Sprintf("raised failure: %s", r.Fid)
}
