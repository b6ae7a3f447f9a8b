package parser

import (
	"testing"

	"github.com/cwbudde/sigil/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func mustFail(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", src)
	}
	return err
}

func TestParseGuarantee(t *testing.T) {
	src := "guarantee Addable {\n  add(self: Self, other: Self) -> Self\n}\n"
	prog := mustParse(t, src)
	if len(prog.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(prog.Items))
	}
	g, ok := prog.Items[0].(*ast.GuaranteeDecl)
	if !ok {
		t.Fatalf("item is %T, want *ast.GuaranteeDecl", prog.Items[0])
	}
	if g.Name != "Addable" {
		t.Errorf("Name = %q, want Addable", g.Name)
	}
	if len(g.Methods) != 1 || g.Methods[0].Name != "add" {
		t.Fatalf("Methods = %+v", g.Methods)
	}
	if len(g.Methods[0].Params) != 2 {
		t.Fatalf("Params = %+v", g.Methods[0].Params)
	}
}

func TestParseTypeGroup(t *testing.T) {
	prog := mustParse(t, "typegroup Number = Int | Float\n")
	g, ok := prog.Items[0].(*ast.TypeGroupDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if g.Name != "Number" || len(g.Members) != 2 {
		t.Fatalf("got %+v", g)
	}
	if g.Members[0].Name != "Int" || g.Members[1].Name != "Float" {
		t.Fatalf("members = %+v", g.Members)
	}
}

func TestParseRegister(t *testing.T) {
	prog := mustParse(t, "register Int guarantees Addable\n")
	r, ok := prog.Items[0].(*ast.RegisterDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if r.Type.Name != "Int" || r.Guarantee != "Addable" {
		t.Fatalf("got %+v", r)
	}
}

func TestParseImpl(t *testing.T) {
	src := "impl Int guarantees Addable {\n  add = builtin core.int.add\n}\n"
	prog := mustParse(t, src)
	i, ok := prog.Items[0].(*ast.ImplDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if i.Type.Name != "Int" || i.Guarantee != "Addable" {
		t.Fatalf("got %+v", i)
	}
	if len(i.Methods) != 1 || i.Methods[0].Name != "add" || i.Methods[0].Builtin != "core.int.add" {
		t.Fatalf("methods = %+v", i.Methods)
	}
}

func TestParseSigFull(t *testing.T) {
	src := "sig add(T, T) -> T {\n  require T guarantees Addable\n  failure Never\n  builtin core.generic.add\n}\n"
	prog := mustParse(t, src)
	s, ok := prog.Items[0].(*ast.SigDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if s.Name != "add" || len(s.Params) != 2 {
		t.Fatalf("got %+v", s)
	}
	if s.Ret.Name != "T" {
		t.Errorf("Ret = %+v", s.Ret)
	}
	if len(s.Requires) != 1 {
		t.Fatalf("Requires = %+v", s.Requires)
	}
	if rg, ok := s.Requires[0].(ast.RequireGuarantees); !ok || rg.GuaranteeName != "Addable" {
		t.Fatalf("Requires[0] = %+v", s.Requires[0])
	}
	if len(s.Failures) != 0 {
		t.Errorf("Failures = %v, want empty for Never", s.Failures)
	}
	if s.Builtin == nil || *s.Builtin != "core.generic.add" {
		t.Fatalf("Builtin = %v", s.Builtin)
	}
}

func TestParseSigRequireIn(t *testing.T) {
	src := "sig toFloat(T) -> Float {\n  require T in Number\n}\n"
	prog := mustParse(t, src)
	s := prog.Items[0].(*ast.SigDecl)
	if ri, ok := s.Requires[0].(ast.RequireIn); !ok || ri.GroupName != "Number" {
		t.Fatalf("Requires[0] = %+v", s.Requires[0])
	}
}

func TestParseSigDuplicateFailureRejected(t *testing.T) {
	mustFail(t, "sig f(Int) -> Unit {\n  failure DivideByZero\n  failure DivideByZero\n}\n")
}

func TestParseSigNeverWithOtherFailureRejected(t *testing.T) {
	mustFail(t, "sig f(Int) -> Unit {\n  failure Never\n  failure DivideByZero\n}\n")
}

func TestParseSigDuplicateBuiltinRejected(t *testing.T) {
	mustFail(t, "sig f(Int) -> Unit {\n  builtin core.a\n  builtin core.b\n}\n")
}

func TestParseFunc(t *testing.T) {
	src := "func add(a: Int, b: Int) {\n  return (a + b)\n}\n"
	prog := mustParse(t, src)
	f, ok := prog.Items[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if f.Name != "add" || len(f.Params) != 2 {
		t.Fatalf("got %+v", f)
	}
	if len(f.Body.Stmts) != 1 {
		t.Fatalf("Body.Stmts = %+v", f.Body.Stmts)
	}
	ret, ok := f.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("stmt is %T", f.Body.Stmts[0])
	}
	bin, ok := ret.Expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("Expr = %+v", ret.Expr)
	}
}

func TestParseFuncAttrs(t *testing.T) {
	src := "@attr.handled\nfunc safeDiv(a: Int, b: Int) {\n  return a\n}\n"
	prog := mustParse(t, src)
	f := prog.Items[0].(*ast.FuncDecl)
	if len(f.Attrs) != 1 || f.Attrs[0] != "handled" {
		t.Fatalf("Attrs = %v", f.Attrs)
	}
}

func TestParseAttrsOnlyBeforeSigOrFunc(t *testing.T) {
	mustFail(t, "@attr.handled\nlet x: Int = 1\n")
}

func TestParseLetAndVar(t *testing.T) {
	prog := mustParse(t, "let x: Int = 1\nvar y: Int = 2\n")
	if len(prog.Items) != 2 {
		t.Fatalf("got %d items", len(prog.Items))
	}
	l := prog.Items[0].(*ast.VarDecl)
	if l.Mutable {
		t.Error("let decl should not be mutable")
	}
	v := prog.Items[1].(*ast.VarDecl)
	if !v.Mutable {
		t.Error("var decl should be mutable")
	}
}

func TestParseAssign(t *testing.T) {
	prog := mustParse(t, "var x: Int = 1\nx = 2\n")
	a, ok := prog.Items[1].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("item is %T", prog.Items[1])
	}
	if a.Name != "x" {
		t.Errorf("Name = %q", a.Name)
	}
}

func TestParseExprStmtCall(t *testing.T) {
	prog := mustParse(t, "print(1)\n")
	_, ok := prog.Items[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
}

func TestParseTryCatch(t *testing.T) {
	prog := mustParse(t, "try div(1, 0)\ncatch DivideByZero print(0)\n")
	if len(prog.Items) != 2 {
		t.Fatalf("got %d items", len(prog.Items))
	}
	if _, ok := prog.Items[0].(*ast.TryStmt); !ok {
		t.Fatalf("item 0 is %T", prog.Items[0])
	}
	c, ok := prog.Items[1].(*ast.CatchStmt)
	if !ok {
		t.Fatalf("item 1 is %T", prog.Items[1])
	}
	if c.FailureName != "DivideByZero" {
		t.Errorf("FailureName = %q", c.FailureName)
	}
}

func TestParseCatchRejectsNestedTry(t *testing.T) {
	mustFail(t, "try div(1, 0)\ncatch DivideByZero try print(1)\n")
}

func TestParseCatchRequiresHandlerOnSameLine(t *testing.T) {
	mustFail(t, "try div(1, 0)\ncatch DivideByZero\n")
}

func TestParseInfixPrecedence(t *testing.T) {
	prog := mustParse(t, "print((1 + (2 * 3)))\n")
	stmt := prog.Items[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.CallExpr)
	bin := call.Args[0].Expr.(*ast.BinaryExpr)
	if bin.Op != ast.OpAdd {
		t.Fatalf("outer op = %v", bin.Op)
	}
	rhs := bin.Right.(*ast.BinaryExpr)
	if rhs.Op != ast.OpMul {
		t.Fatalf("inner op = %v", rhs.Op)
	}
}

func TestParseUnaryMinusRejected(t *testing.T) {
	mustFail(t, "let x: Int = -1\n")
}

func TestParseBareParenRejected(t *testing.T) {
	mustFail(t, "let x: Int = (1)\n")
}

func TestParseInfixRequiresParens(t *testing.T) {
	mustFail(t, "let x: Int = 1 + 2\n")
}

func TestParseNamedArgs(t *testing.T) {
	prog := mustParse(t, "f(a: 1, b: 2)\n")
	stmt := prog.Items[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.CallExpr)
	if call.Style != ast.ArgNamed {
		t.Fatalf("Style = %v", call.Style)
	}
	if call.Args[0].Name != "a" || call.Args[1].Name != "b" {
		t.Fatalf("Args = %+v", call.Args)
	}
}

func TestParseMixedArgsRejected(t *testing.T) {
	mustFail(t, "f(a: 1, 2)\n")
}

func TestParseFloatLiteral(t *testing.T) {
	prog := mustParse(t, "let x: Float = 3.5\n")
	v := prog.Items[0].(*ast.VarDecl)
	f, ok := v.Expr.(*ast.FloatLit)
	if !ok || f.Value != 3.5 {
		t.Fatalf("Expr = %+v", v.Expr)
	}
}

func TestParseEmptyArgs(t *testing.T) {
	prog := mustParse(t, "noop()\n")
	stmt := prog.Items[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.CallExpr)
	if len(call.Args) != 0 {
		t.Fatalf("Args = %+v", call.Args)
	}
}
