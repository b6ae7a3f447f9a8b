package symbols

import (
	"testing"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/catalog"
)

func preludeItems(t *testing.T) []ast.TopLevel {
	t.Helper()
	items, err := catalog.Prelude()
	if err != nil {
		t.Fatalf("catalog.Prelude: %v", err)
	}
	return items
}

func TestBuildFromPreludeAlone(t *testing.T) {
	s, err := Build(preludeItems(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := s.Sig("add"); !ok {
		t.Error("missing sig 'add'")
	}
	if _, ok := s.Sig("div"); !ok {
		t.Error("missing sig 'div'")
	}
	if !s.Advertises("Int", "Addable") {
		t.Error("Int should advertise Addable")
	}
	if !s.Advertises("String", "Printable") {
		t.Error("String should advertise Printable")
	}
	if id, ok := s.Impl("Int", "Addable", "add"); !ok || id != "core.int.add" {
		t.Errorf("Impl(Int,Addable,add) = %q, %v", id, ok)
	}
}

func TestBuildRejectsDuplicateGuarantee(t *testing.T) {
	items := append(preludeItems(t),
		&ast.GuaranteeDecl{Name: "Addable", Methods: nil},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected duplicate guarantee error")
	}
}

func TestBuildRejectsDuplicateSig(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "add", Params: []ast.TypeRef{{Name: "T"}, {Name: "T"}}, Ret: ast.TypeRef{Name: "T"}},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected duplicate sig error")
	}
}

func TestBuildRejectsDuplicateImpl(t *testing.T) {
	items := append(preludeItems(t),
		&ast.ImplDecl{
			Type:      ast.TypeRef{Name: "Int"},
			Guarantee: "Addable",
			Methods:   []ast.ImplMethod{{Name: "add", Builtin: "core.int.add"}},
		},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected duplicate impl error")
	}
}

func TestBuildRejectsUnknownSigAttr(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "bogus", Params: nil, Ret: ast.TypeRef{Name: "Unit"}, Attrs: []string{"nope"}},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected unknown attribute error")
	}
}

func TestBuildRejectsHandledWithNonUnitReturn(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "bogus", Params: nil, Ret: ast.TypeRef{Name: "Int"}, Attrs: []string{"handled"}},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected 'handled' + non-Unit return error")
	}
}

func TestBuildRejectsUnknownFailureName(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "bogus", Params: nil, Ret: ast.TypeRef{Name: "Unit"}, Failures: []string{"NotARealFailure"}},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected unknown failure name error")
	}
}

func TestBuildFuncRequiresMatchingSig(t *testing.T) {
	items := append(preludeItems(t),
		&ast.FuncDecl{
			Name:   "noSuchSig",
			Params: []ast.Param{{Name: "a", Type: ast.TypeRef{Name: "Int"}}},
			Body:   &ast.BlockStmt{},
		},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected 'no matching sig' error")
	}
}

func TestBuildFuncParamMultisetMustMatchSig(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "addThree", Params: []ast.TypeRef{{Name: "Int"}, {Name: "Int"}, {Name: "Int"}}, Ret: ast.TypeRef{Name: "Int"}},
		&ast.FuncDecl{
			Name: "addThree",
			Params: []ast.Param{
				{Name: "a", Type: ast.TypeRef{Name: "Int"}},
				{Name: "b", Type: ast.TypeRef{Name: "Int"}},
			},
			Body: &ast.BlockStmt{},
		},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected parameter multiset mismatch error")
	}
}

func TestBuildFuncParamsOrderFreeButMultisetEqual(t *testing.T) {
	items := append(preludeItems(t),
		&ast.SigDecl{Name: "combine", Params: []ast.TypeRef{{Name: "Int"}, {Name: "Float"}}, Ret: ast.TypeRef{Name: "Float"}},
		&ast.FuncDecl{
			Name: "combine",
			Params: []ast.Param{
				{Name: "b", Type: ast.TypeRef{Name: "Float"}},
				{Name: "a", Type: ast.TypeRef{Name: "Int"}},
			},
			Body: &ast.BlockStmt{},
		},
	)
	if _, err := Build(items); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

func TestBuildRegisterRequiresMethodlessGuarantee(t *testing.T) {
	items := append(preludeItems(t),
		&ast.RegisterDecl{Type: ast.TypeRef{Name: "String"}, Guarantee: "Addable"},
	)
	if _, err := Build(items); err == nil {
		t.Fatal("expected register-on-method-bearing-guarantee error")
	}
}

func TestBuildRejectsAdvertiseWithoutFullImpl(t *testing.T) {
	items := []ast.TopLevel{
		&ast.GuaranteeDecl{
			Name: "TwoMethods",
			Methods: []ast.MethodSig{
				{Name: "m1", Ret: ast.TypeRef{Name: "Self"}},
				{Name: "m2", Ret: ast.TypeRef{Name: "Self"}},
			},
		},
		&ast.ImplDecl{
			Type:      ast.TypeRef{Name: "Int"},
			Guarantee: "TwoMethods",
			Methods:   []ast.ImplMethod{{Name: "m1", Builtin: "core.int.add"}},
		},
	}
	if _, err := Build(items); err == nil {
		t.Fatal("expected closure violation: m2 has no impl")
	}
}

func TestBuildRejectsUnknownBuiltinId(t *testing.T) {
	items := []ast.TopLevel{
		&ast.GuaranteeDecl{
			Name:    "OneMethod",
			Methods: []ast.MethodSig{{Name: "m1", Ret: ast.TypeRef{Name: "Self"}}},
		},
		&ast.ImplDecl{
			Type:      ast.TypeRef{Name: "Int"},
			Guarantee: "OneMethod",
			Methods:   []ast.ImplMethod{{Name: "m1", Builtin: "core.int.nonexistent"}},
		},
	}
	if _, err := Build(items); err == nil {
		t.Fatal("expected unknown builtin id error")
	}
}

func TestBuildTypeGroupAddsKnownTypes(t *testing.T) {
	items := []ast.TopLevel{
		&ast.TypeGroupDecl{Name: "Number", Members: []ast.TypeRef{{Name: "Int"}, {Name: "Float"}}},
	}
	s, err := Build(items)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !s.IsTypeGroup("Number") {
		t.Fatal("Number should be a known type group")
	}
	members, _ := s.GroupMembers("Number")
	if len(members) != 2 {
		t.Fatalf("members = %v", members)
	}
	if _, ok := s.KnownTypes["Number"]; !ok {
		t.Error("group name itself should be a known type")
	}
}
