package symbols

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/effect"
)

// attrRegistry is the fixed attribute table spec.md §4.5 names: "io"
// is a meta classification with no semantic effect, "handled" is
// semantic and requires the sig's return type to be Unit.
var attrRegistry = map[string]struct {
	requireUnitReturn bool
}{
	"io":      {requireUnitReturn: false},
	"handled": {requireUnitReturn: true},
}

// Build merges prelude catalog items and a user Program's items, in
// order, into a frozen Symbols table. items is expected to be the
// prelude's declarations followed by the lowered user Program's
// declarations (statements are ignored here; they belong to the
// checker's Pass 2 environment, not the catalog).
func Build(items []ast.TopLevel) (*Symbols, error) {
	s := &Symbols{
		Guarantees:     map[string]*ast.GuaranteeDecl{},
		TypeGroups:     map[string]map[string]struct{}{},
		TypeGuarantees: map[string]map[string]struct{}{},
		Sigs:           map[string]*ast.SigDecl{},
		Funcs:          map[string]*ast.FuncDecl{},
		Impls:          map[ImplKey]string{},
		KnownTypes:     map[string]struct{}{},
	}

	for _, name := range []string{"Int", "Float", "String", "Unit", "Ordering"} {
		s.KnownTypes[name] = struct{}{}
	}

	var funcItems []*ast.FuncDecl

	for _, it := range items {
		switch n := it.(type) {
		case *ast.GuaranteeDecl:
			if _, dup := s.Guarantees[n.Name]; dup {
				return nil, errf(n.Position, "duplicate guarantee '%s'", n.Name)
			}
			s.Guarantees[n.Name] = n

		case *ast.TypeGroupDecl:
			if _, dup := s.TypeGroups[n.Name]; dup {
				return nil, errf(n.Position, "duplicate typegroup '%s'", n.Name)
			}
			members := map[string]struct{}{}
			for _, m := range n.Members {
				members[m.Name] = struct{}{}
				s.KnownTypes[m.Name] = struct{}{}
			}
			s.TypeGroups[n.Name] = members
			s.KnownTypes[n.Name] = struct{}{}

		case *ast.RegisterDecl:
			g, ok := s.Guarantees[n.Guarantee]
			if !ok {
				return nil, errf(n.Position, "register: unknown guarantee '%s'", n.Guarantee)
			}
			if len(g.Methods) > 0 {
				return nil, errf(n.Position, "register: guarantee '%s' has methods; use impl instead", n.Guarantee)
			}
			s.KnownTypes[n.Type.Name] = struct{}{}
			advertise(s, n.Type.Name, n.Guarantee)

		case *ast.ImplDecl:
			s.KnownTypes[n.Type.Name] = struct{}{}
			for _, m := range n.Methods {
				key := ImplKey{Type: n.Type.Name, Guarantee: n.Guarantee, Method: m.Name}
				if _, dup := s.Impls[key]; dup {
					return nil, errf(m.Position, "duplicate impl (%s, %s, %s)", n.Type.Name, n.Guarantee, m.Name)
				}
				s.Impls[key] = m.Builtin
			}
			advertise(s, n.Type.Name, n.Guarantee)

		case *ast.SigDecl:
			if _, dup := s.Sigs[n.Name]; dup {
				return nil, errf(n.Position, "duplicate sig '%s'", n.Name)
			}
			if err := validateSigAttrsAndFailures(n); err != nil {
				return nil, err
			}
			s.Sigs[n.Name] = n

		case *ast.FuncDecl:
			funcItems = append(funcItems, n)

		default:
			// Top-level statements (VarDecl, AssignStmt, ExprStmt,
			// TryStmt, CatchStmt) are not catalog items.
		}
	}

	for _, f := range funcItems {
		if _, dup := s.Funcs[f.Name]; dup {
			return nil, errf(f.Position, "duplicate func '%s'", f.Name)
		}
		sig, ok := s.Sigs[f.Name]
		if !ok {
			return nil, errf(f.Position, "func '%s' has no matching sig declaration", f.Name)
		}
		if err := checkParamMultisetMatches(f, sig); err != nil {
			return nil, err
		}
		s.Funcs[f.Name] = f
	}

	if err := validateCatalog(s); err != nil {
		return nil, err
	}

	return s, nil
}

func advertise(s *Symbols, typeName, guarantee string) {
	set, ok := s.TypeGuarantees[typeName]
	if !ok {
		set = map[string]struct{}{}
		s.TypeGuarantees[typeName] = set
	}
	set[guarantee] = struct{}{}
}

func validateSigAttrsAndFailures(sig *ast.SigDecl) error {
	for _, a := range sig.Attrs {
		def, ok := attrRegistry[a]
		if !ok {
			return errf(sig.Position, "sig '%s': unknown attribute '%s'", sig.Name, a)
		}
		if def.requireUnitReturn && sig.Ret.Name != "Unit" {
			return errf(sig.Position, "sig '%s': attribute '%s' requires return type Unit", sig.Name, a)
		}
	}
	for _, f := range sig.Failures {
		if !effect.IsKnown(effect.FailureId(f)) {
			return errf(sig.Position, "sig '%s': unknown failure '%s'", sig.Name, f)
		}
	}
	return nil
}

// checkParamMultisetMatches enforces spec.md §4.5: the multiset of a
// func's parameter types (by TypeRef.name) must equal its sig's
// parameter multiset; parameter order and names are otherwise free.
func checkParamMultisetMatches(f *ast.FuncDecl, sig *ast.SigDecl) error {
	if len(f.Params) != len(sig.Params) {
		return errf(f.Position, "func '%s': %d parameters, sig declares %d", f.Name, len(f.Params), len(sig.Params))
	}
	counts := map[string]int{}
	for _, p := range sig.Params {
		counts[p.Name]++
	}
	for _, p := range f.Params {
		counts[p.Type.Name]--
	}
	for typeName, c := range counts {
		if c != 0 {
			return errf(f.Position, "func '%s': parameter types don't match sig '%s' (mismatch on %s)", f.Name, sig.Name, typeName)
		}
	}
	return nil
}

// validateCatalog mirrors original_source/ginger's `_validate_catalog`
// closure check: every guarantee a type advertises must exist, every
// one of its methods must have an Impl, and every Impl's builtin id
// must be backed by the evaluator's builtin table.
func validateCatalog(s *Symbols) error {
	for typeName, guarantees := range s.TypeGuarantees {
		for gname := range guarantees {
			g, ok := s.Guarantees[gname]
			if !ok {
				return errf0("type '%s' advertises unknown guarantee '%s'", typeName, gname)
			}
			for _, m := range g.Methods {
				id, ok := s.Impls[ImplKey{Type: typeName, Guarantee: gname, Method: m.Name}]
				if !ok {
					return errf0("type '%s' guarantees '%s' but has no impl for method '%s'", typeName, gname, m.Name)
				}
				if !IsKnownBuiltin(id) {
					return errf0("impl (%s, %s, %s) refers to unknown builtin '%s'", typeName, gname, m.Name, id)
				}
			}
		}
	}
	return nil
}
