// Package ast defines the sigil abstract syntax tree. Every node type
// is an immutable value; passes (lower, in particular) produce a new
// *Program rather than mutating one in place, the same convention the
// teacher's internal/ast package follows.
package ast

import "github.com/cwbudde/sigil/internal/lexer"

// Node is implemented by every AST node so positions are always
// recoverable for diagnostics.
type Node interface {
	Pos() lexer.Position
}

// TopLevel is any item that can appear directly in a Program: a
// declaration (GuaranteeDecl, TypeGroupDecl, RegisterDecl, ImplDecl,
// SigDecl, FuncDecl) or a top-level statement (Stmt).
type TopLevel interface {
	Node
	topLevel()
}

// Program is the root of a parsed (or lowered) source file.
type Program struct {
	Items []TopLevel
}

// TypeRef names a concrete type, a type-group, or a type variable
// (spec.md §3). Which one it is depends on what Symbols resolves the
// name to; TypeRef itself is just the identifier plus its position.
type TypeRef struct {
	Name     string
	Position lexer.Position
}

func (t TypeRef) Pos() lexer.Position { return t.Position }

// IsTypeVar reports whether name looks syntactically like a type
// variable: a single uppercase ASCII letter (spec.md §3).
func IsTypeVar(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}
