package ast

import "github.com/cwbudde/sigil/internal/lexer"

// Param is a named, typed parameter of a guarantee method or a Func.
type Param struct {
	Name     string
	Type     TypeRef
	Position lexer.Position
}

func (p Param) Pos() lexer.Position { return p.Position }

// MethodSig is the signature of one method of a Guarantee: a name,
// ordered parameters (whose types may reference Self), and a return
// type.
type MethodSig struct {
	Name     string
	Params   []Param
	Ret      TypeRef
	Position lexer.Position
}

// GuaranteeDecl declares a named capability and its methods.
type GuaranteeDecl struct {
	Name     string
	Methods  []MethodSig
	Position lexer.Position
}

func (d *GuaranteeDecl) Pos() lexer.Position { return d.Position }
func (d *GuaranteeDecl) topLevel()           {}

// TypeGroupDecl declares a named set of concrete types, e.g.
// `typegroup Number = Int | Float`.
type TypeGroupDecl struct {
	Name     string
	Members  []TypeRef
	Position lexer.Position
}

func (d *TypeGroupDecl) Pos() lexer.Position { return d.Position }
func (d *TypeGroupDecl) topLevel()           {}

// RegisterDecl advertises that a type has a method-less guarantee,
// e.g. `register Int guarantees Addable`. Method-bearing guarantees
// must instead be established via ImplDecl (spec.md §4.5).
type RegisterDecl struct {
	Type      TypeRef
	Guarantee string
	Position  lexer.Position
}

func (d *RegisterDecl) Pos() lexer.Position { return d.Position }
func (d *RegisterDecl) topLevel()           {}

// ImplMethod binds one guarantee method name to a builtin identifier.
type ImplMethod struct {
	Name     string
	Builtin  string
	Position lexer.Position
}

// ImplDecl binds a (Type, Guarantee) pair's methods to builtin ids.
type ImplDecl struct {
	Type      TypeRef
	Guarantee string
	Methods   []ImplMethod
	Position  lexer.Position
}

func (d *ImplDecl) Pos() lexer.Position { return d.Position }
func (d *ImplDecl) topLevel()           {}

// RequireClause is either a RequireIn or a RequireGuarantees obligation
// on a sig's type variable.
type RequireClause interface {
	Node
	requireClause()
	TypeVar() string
}

// RequireIn requires the concrete type bound to TypeVarName to be a
// member of GroupName.
type RequireIn struct {
	TypeVarName string
	GroupName   string
	Position    lexer.Position
}

func (r RequireIn) Pos() lexer.Position { return r.Position }
func (r RequireIn) requireClause()      {}
func (r RequireIn) TypeVar() string     { return r.TypeVarName }

// RequireGuarantees requires the concrete type bound to TypeVarName to
// advertise GuaranteeName.
type RequireGuarantees struct {
	TypeVarName   string
	GuaranteeName string
	Position      lexer.Position
}

func (r RequireGuarantees) Pos() lexer.Position { return r.Position }
func (r RequireGuarantees) requireClause()       {}
func (r RequireGuarantees) TypeVar() string      { return r.TypeVarName }

// SigDecl declares a callable's positional-type signature: its
// parameter types, return type, capability requirements, declared
// failures, attributes, and an optional direct builtin binding.
type SigDecl struct {
	Name      string
	Params    []TypeRef
	Ret       TypeRef
	Requires  []RequireClause
	Failures  []string
	Attrs     []string
	Builtin   *string // nil means "no direct builtin"; non-nil may be ""
	Position  lexer.Position
}

func (d *SigDecl) Pos() lexer.Position { return d.Position }
func (d *SigDecl) topLevel()           {}

// FuncDecl is a user-provided body for a sig of the same name.
type FuncDecl struct {
	Name     string
	Params   []Param
	Body     *BlockStmt
	Attrs    []string
	Position lexer.Position
}

func (d *FuncDecl) Pos() lexer.Position { return d.Position }
func (d *FuncDecl) topLevel()           {}
