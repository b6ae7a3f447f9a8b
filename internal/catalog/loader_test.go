package catalog

import (
	"testing"

	"github.com/cwbudde/sigil/internal/ast"
)

func TestLoadBasicGuaranteeImplSig(t *testing.T) {
	src := []byte(`{
		"guarantees": [
			{"name": "Addable", "methods": [
				{"name": "add", "params": [
					{"name": "self", "type": {"ref": "Self"}},
					{"name": "other", "type": "Self"}
				], "ret": "Self"}
			]}
		],
		"impls": [
			{"type": "Int", "guarantee": "Addable", "methods": [{"name": "add", "builtin": "core.int.add"}]}
		],
		"sigs": [
			{"name": "add", "params": ["T", "T"], "ret": "T",
			 "requires": [{"kind": "guarantees", "type_var": "T", "guarantee": "Addable"}],
			 "failures": [], "attrs": [], "builtin": null}
		]
	}`)

	items, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	g, ok := items[0].(*ast.GuaranteeDecl)
	if !ok || g.Name != "Addable" {
		t.Fatalf("item 0 = %+v", items[0])
	}
	if g.Methods[0].Params[1].Type.Name != "Self" {
		t.Fatalf("bare-string type ref not coerced: %+v", g.Methods[0].Params[1])
	}

	impl, ok := items[1].(*ast.ImplDecl)
	if !ok || impl.Type.Name != "Int" {
		t.Fatalf("item 1 = %+v", items[1])
	}

	sig, ok := items[2].(*ast.SigDecl)
	if !ok || sig.Name != "add" {
		t.Fatalf("item 2 = %+v", items[2])
	}
	if sig.Builtin != nil {
		t.Fatalf("Builtin = %v, want nil", sig.Builtin)
	}
}

func TestLoadBuiltinNonNull(t *testing.T) {
	src := []byte(`{"sigs": [{"name": "div", "params": ["Float", "Float"], "ret": "Float",
		"failures": ["DivideByZero"], "builtin": "core.float.div"}]}`)
	items, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sig := items[0].(*ast.SigDecl)
	if sig.Builtin == nil || *sig.Builtin != "core.float.div" {
		t.Fatalf("Builtin = %v", sig.Builtin)
	}
	if len(sig.Failures) != 1 || sig.Failures[0] != "DivideByZero" {
		t.Fatalf("Failures = %v", sig.Failures)
	}
}

func TestLoadRejectsUnknownRequireKind(t *testing.T) {
	src := []byte(`{"sigs": [{"name": "f", "params": ["T"], "ret": "T",
		"requires": [{"kind": "in", "type_var": "T", "guarantee": "Number"}]}]}`)
	if _, err := Load(src); err == nil {
		t.Fatal("expected error for unsupported require kind")
	}
}

func TestLoadRejectsMalformedRoot(t *testing.T) {
	if _, err := Load([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object root")
	}
}

func TestPreludeLoadsAllCatalogs(t *testing.T) {
	items, err := Prelude()
	if err != nil {
		t.Fatalf("Prelude: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("Prelude returned no items")
	}

	var sigNames []string
	for _, it := range items {
		if s, ok := it.(*ast.SigDecl); ok {
			sigNames = append(sigNames, s.Name)
		}
	}
	want := map[string]bool{"add": false, "sub": false, "mul": false, "neg": false, "div": false, "toFloat": false, "cmp": false, "print": false}
	for _, n := range sigNames {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("prelude missing expected sig %q", name)
		}
	}
}

func TestPreludeDivRequiresFloatAndDeclaresDivideByZero(t *testing.T) {
	items, err := Prelude()
	if err != nil {
		t.Fatalf("Prelude: %v", err)
	}
	for _, it := range items {
		s, ok := it.(*ast.SigDecl)
		if !ok || s.Name != "div" {
			continue
		}
		if len(s.Params) != 2 || s.Params[0].Name != "Float" || s.Params[1].Name != "Float" {
			t.Fatalf("div params = %+v", s.Params)
		}
		if len(s.Failures) != 1 || s.Failures[0] != "DivideByZero" {
			t.Fatalf("div failures = %v", s.Failures)
		}
		return
	}
	t.Fatal("div sig not found in prelude")
}

func TestPreludePrintDeclaresIOAttrAndNoStaticFailures(t *testing.T) {
	items, err := Prelude()
	if err != nil {
		t.Fatalf("Prelude: %v", err)
	}
	for _, it := range items {
		s, ok := it.(*ast.SigDecl)
		if !ok || s.Name != "print" {
			continue
		}
		if len(s.Attrs) != 1 || s.Attrs[0] != "io" {
			t.Fatalf("print attrs = %v", s.Attrs)
		}
		// print's host-sink write never fails in this surface (spec.md
		// §9 open question (b): PrintErr is reserved but not yet
		// produced by any builtin), so the sig declares no static
		// failures even though the evaluator's surface print still
		// wraps any future error as RaisedFailure(PrintErr).
		if len(s.Failures) != 0 {
			t.Fatalf("print failures = %v, want none", s.Failures)
		}
		return
	}
	t.Fatal("print sig not found in prelude")
}
