package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/catalog"
	"github.com/cwbudde/sigil/internal/lower"
	"github.com/cwbudde/sigil/internal/parser"
	"github.com/cwbudde/sigil/internal/symbols"
)

// run parses, lowers, and evaluates src against the prelude catalog,
// returning whatever it printed and the first error (if any).
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, err = lower.Program(prog)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	prelude, err := catalog.Prelude()
	if err != nil {
		t.Fatalf("prelude: %v", err)
	}
	syms, err := symbols.Build(append(append([]ast.TopLevel{}, prelude...), prog.Items...))
	if err != nil {
		t.Fatalf("symbols.Build: %v", err)
	}

	var out bytes.Buffer
	ev := New(syms, &out)
	return out.String(), ev.Run(prog)
}

func TestScenario1LetAndPrint(t *testing.T) {
	out, err := run(t, "let y: Int = (1 + 2)\nprint(y)\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "3\n" {
		t.Errorf("out = %q, want %q", out, "3\n")
	}
}

func TestScenario2VarReassignAndPrint(t *testing.T) {
	out, err := run(t, "var x: Int = (1 + 2)\nx = (x + 3)\nprint(x)\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "6\n" {
		t.Errorf("out = %q, want %q", out, "6\n")
	}
}

func TestScenario3PrintFloat(t *testing.T) {
	out, err := run(t, "print(1.0)\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "1.0\n" {
		t.Errorf("out = %q, want %q", out, "1.0\n")
	}
}

func TestScenario4TryCatchSwallowsDivideByZero(t *testing.T) {
	out, err := run(t, "try print(div(1.0, 0.0))\ncatch DivideByZero print(999)\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "999\n" {
		t.Errorf("out = %q, want %q", out, "999\n")
	}
}

func TestScenario4WithoutCatchRaisesDivideByZero(t *testing.T) {
	_, err := run(t, "print(div(1.0, 0.0))\n")
	if err == nil {
		t.Fatal("expected an unhandled RaisedFailure")
	}
	rf, ok := err.(*RaisedFailure)
	if !ok {
		t.Fatalf("err = %T, want *RaisedFailure", err)
	}
	if string(rf.Fid) != "DivideByZero" {
		t.Errorf("Fid = %s, want DivideByZero", rf.Fid)
	}
}

func TestTryGroupIgnoresCatchesWhenTrySucceeds(t *testing.T) {
	out, err := run(t, "try print(div(4.0, 2.0))\ncatch DivideByZero print(999)\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "2.0\n" {
		t.Errorf("out = %q, want %q", out, "2.0\n")
	}
}

func TestCatchMissNameRepropagates(t *testing.T) {
	_, err := run(t, "try print(div(1.0, 0.0))\ncatch Overflow print(999)\n")
	if err == nil {
		t.Fatal("expected the RaisedFailure to re-escape the group")
	}
	if _, ok := err.(*RaisedFailure); !ok {
		t.Fatalf("err = %T, want *RaisedFailure", err)
	}
}

func TestStrayCatchIsRuntimeError(t *testing.T) {
	_, err := run(t, "catch DivideByZero print(1)\n")
	if err == nil {
		t.Fatal("expected a stray-catch EvalError")
	}
	if _, ok := err.(*EvalError); !ok {
		t.Fatalf("err = %T, want *EvalError", err)
	}
}

func TestUserFuncCallReturnsValue(t *testing.T) {
	out, err := run(t, strings.Join([]string{
		"sig double(Int) -> Int { failure Never }",
		"func double(n: Int) { return add(n, n) }",
		"print(double(21))",
		"",
	}, "\n"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "42\n" {
		t.Errorf("out = %q, want %q", out, "42\n")
	}
}

func TestHandledSigSwallowsEscapingFailureFromFuncWithNoOwnAttr(t *testing.T) {
	// safeDiv's *sig* declares handled; the func body itself carries no
	// @attr.handled. A RaisedFailure escaping the body must still be
	// swallowed, since `handled` is a property of the callee's sig
	// (spec.md §GLOSSARY), not of the func's own (unvalidated) attrs.
	out, err := run(t, strings.Join([]string{
		"@attr.handled",
		"sig safeDiv(Float, Float) -> Unit { failure DivideByZero }",
		"func safeDiv(a: Float, b: Float) { div(a, b) }",
		"safeDiv(1.0, 0.0)",
		"",
	}, "\n"))
	if err != nil {
		t.Fatalf("Run: %v, want the RaisedFailure swallowed by the sig's handled attribute", err)
	}
	if out != "" {
		t.Errorf("out = %q, want no output", out)
	}
}

func TestAssignToUnknownIdentifierIsRuntimeError(t *testing.T) {
	_, err := run(t, "x = 1\n")
	if err == nil {
		t.Fatal("expected unknown identifier error")
	}
}
