// Package checker implements sigil's two-pass type & effect checker
// (spec.md §4.6): function bodies first, then top-level statements,
// with call-site type-variable inference and a parallel FailureSet
// (effect) computation that feeds non-fatal UNHANDLED_FAILURES
// warnings into a diagnostics.Diagnostics sink.
package checker

import (
	"strings"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/diagnostics"
	"github.com/cwbudde/sigil/internal/effect"
	"github.com/cwbudde/sigil/internal/lexer"
	"github.com/cwbudde/sigil/internal/symbols"
)

// Binding records an identifier's type and whether it was declared
// `var` (mutable) or `let` (immutable).
type Binding struct {
	Type    string
	Mutable bool
}

// Checker walks a lowered Program against a frozen Symbols table,
// modeled on the teacher's single-struct Analyzer
// (internal/semantic.Analyzer) holding its symbol table and an
// accumulated diagnostics sink — generalized here to stop at the
// first fatal TypecheckError rather than accumulate, since sigil has
// no notion of a "hint" that lets checking continue past an error.
type Checker struct {
	syms  *symbols.Symbols
	diags *diagnostics.Diagnostics
}

// New builds a Checker over syms, appending warnings to diags.
func New(syms *symbols.Symbols, diags *diagnostics.Diagnostics) *Checker {
	return &Checker{syms: syms, diags: diags}
}

// Check runs both passes over prog, which must already be lowered
// (internal/lower) so no BinaryExpr nodes remain. It returns the
// first fatal TypecheckError encountered, or nil if the program
// checks. Non-fatal diagnostics are appended to the Checker's sink
// regardless of the outcome.
func (c *Checker) Check(prog *ast.Program) error {
	for _, it := range prog.Items {
		if f, ok := it.(*ast.FuncDecl); ok {
			if err := c.checkFunc(f); err != nil {
				return err
			}
		}
	}
	return c.checkTopLevel(prog.Items)
}

func unitPtr() *string {
	u := "Unit"
	return &u
}

// warnResidual reports a statement's non-empty residual effect as an
// UNHANDLED_FAILURES warning (spec.md §4.6 "Statement-level effect
// policy"). Callers inside a try/catch group instead fold the effect
// into the group's own residual and call this once for the group.
func (c *Checker) warnResidual(eff effect.Set, pos lexer.Position) {
	if eff.IsEmpty() {
		return
	}
	names := make([]string, 0, eff.Len())
	for _, id := range eff.Items() {
		names = append(names, string(id))
	}
	c.diags.Warn(diagnostics.UnhandledFailures, strings.Join(names, ", "), pos)
}
