// Package symbols builds the frozen Symbols table the checker and
// evaluator both query: a catalog of guarantees, type groups, impls,
// sigs, and funcs merged from the prelude and a user Program.
package symbols

import "github.com/cwbudde/sigil/internal/ast"

// ImplKey identifies one (Type, Guarantee, Method) triple.
type ImplKey struct {
	Type      string
	Guarantee string
	Method    string
}

// Symbols is immutable once Build returns it; every field is read-only
// from the outside (spec.md §3 "Symbols (frozen after construction)").
type Symbols struct {
	Guarantees     map[string]*ast.GuaranteeDecl
	TypeGroups     map[string]map[string]struct{} // group -> member type names
	TypeGuarantees map[string]map[string]struct{} // type -> guarantee names it advertises
	Sigs           map[string]*ast.SigDecl
	Funcs          map[string]*ast.FuncDecl
	Impls          map[ImplKey]string // -> builtin id
	KnownTypes     map[string]struct{}
}

// IsTypeGroup reports whether name is a declared type-group name.
func (s *Symbols) IsTypeGroup(name string) bool {
	_, ok := s.TypeGroups[name]
	return ok
}

// GroupMembers reports the concrete type names belonging to group, if
// group is a known type group.
func (s *Symbols) GroupMembers(group string) (map[string]struct{}, bool) {
	m, ok := s.TypeGroups[group]
	return m, ok
}

// Advertises reports whether typeName advertises guarantee.
func (s *Symbols) Advertises(typeName, guarantee string) bool {
	gs, ok := s.TypeGuarantees[typeName]
	if !ok {
		return false
	}
	_, ok = gs[guarantee]
	return ok
}

// Impl looks up the builtin id bound to (typeName, guarantee, method).
func (s *Symbols) Impl(typeName, guarantee, method string) (string, bool) {
	id, ok := s.Impls[ImplKey{Type: typeName, Guarantee: guarantee, Method: method}]
	return id, ok
}

// Sig looks up a declared sig by name.
func (s *Symbols) Sig(name string) (*ast.SigDecl, bool) {
	sig, ok := s.Sigs[name]
	return sig, ok
}

// Func looks up a user-provided function body by name.
func (s *Symbols) Func(name string) (*ast.FuncDecl, bool) {
	f, ok := s.Funcs[name]
	return f, ok
}
