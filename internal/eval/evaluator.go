package eval

import (
	"io"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/effect"
	"github.com/cwbudde/sigil/internal/lexer"
	"github.com/cwbudde/sigil/internal/symbols"
)

// Evaluator walks a lowered, checked Program, modeled on the
// teacher's internal/interp.Interpreter: a single struct owning the
// environment and an output io.Writer, shrunk to sigil's flat
// top-level environment plus one env per call (spec.md §9) and with
// a *RaisedFailure carried as a normal Go error rather than a
// dedicated "current exception" field, since sigil's try/catch
// adjacency rule makes the catching point always known statically.
type Evaluator struct {
	syms *symbols.Symbols
	env  *Environment
	out  io.Writer
}

// New builds an Evaluator over syms, writing print output to out.
func New(syms *symbols.Symbols, out io.Writer) *Evaluator {
	return &Evaluator{syms: syms, env: NewEnvironment(), out: out}
}

// Run walks prog's top-level items in order (spec.md §4.7). It
// returns the first fatal error: an *EvalError, or an unhandled
// *RaisedFailure that escaped every top-level Try/Catch group.
func (ev *Evaluator) Run(prog *ast.Program) error {
	items := prog.Items
	for i := 0; i < len(items); {
		switch n := items[i].(type) {
		case *ast.VarDecl:
			v, err := ev.evalExpr(n.Expr)
			if err != nil {
				return err
			}
			ev.env.Define(n.Name, v, n.Mutable)
			i++

		case *ast.AssignStmt:
			cell, ok := ev.env.Get(n.Name)
			if !ok {
				return errf(n.Position, "unknown identifier '%s'", n.Name)
			}
			if !cell.Mutable {
				return errf(n.Position, "'%s' is not mutable", n.Name)
			}
			v, err := ev.evalExpr(n.Expr)
			if err != nil {
				return err
			}
			ev.env.Define(n.Name, v, cell.Mutable)
			i++

		case *ast.ExprStmt:
			if _, err := ev.evalExpr(n.Expr); err != nil {
				return err
			}
			i++

		case *ast.TryStmt:
			consumed, err := ev.runTryGroup(n, items[i+1:])
			if err != nil {
				return err
			}
			i += 1 + consumed

		case *ast.CatchStmt:
			return errf(n.Position, "stray 'catch' with no preceding 'try'")

		default:
			// Declarations (guarantee/typegroup/register/impl/sig/func)
			// carry no runtime behavior of their own.
			i++
		}
	}
	return nil
}

// runTryGroup evaluates try plus the run of CatchStmt items
// immediately following it in rest, returning how many of rest's
// items the group consumed.
func (ev *Evaluator) runTryGroup(try *ast.TryStmt, rest []ast.TopLevel) (int, error) {
	var catches []*ast.CatchStmt
	for _, it := range rest {
		cs, ok := it.(*ast.CatchStmt)
		if !ok {
			break
		}
		catches = append(catches, cs)
	}
	if len(catches) == 0 {
		return 0, errf(try.Position, "'try' must be followed by at least one 'catch'")
	}

	_, err := ev.evalExpr(try.Expr)
	if err == nil {
		return len(catches), nil
	}

	rf, ok := err.(*RaisedFailure)
	if !ok {
		return 0, err
	}

	for _, cs := range catches {
		if cs.FailureName != string(rf.Fid) {
			continue
		}
		if _, cerr := ev.evalExpr(cs.Expr); cerr != nil {
			if crf, ok := cerr.(*RaisedFailure); ok && string(crf.Fid) == cs.FailureName {
				return len(catches), nil // same-name nesting: swallowed
			}
			return 0, cerr
		}
		return len(catches), nil
	}
	return 0, err // no catch matched: re-raise out of the group
}

// evalExpr evaluates e to a Value, or returns an *EvalError / a
// *RaisedFailure.
func (ev *Evaluator) evalExpr(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return IntValue{Value: n.Value}, nil

	case *ast.FloatLit:
		return FloatValue{Value: n.Value}, nil

	case *ast.IdentExpr:
		cell, ok := ev.env.Get(n.Name)
		if !ok {
			return nil, errf(n.Position, "unknown identifier '%s'", n.Name)
		}
		return cell.Value, nil

	case *ast.CallExpr:
		return ev.evalCall(n)

	default:
		return nil, errf(e.Pos(), "unsupported expression kind")
	}
}

// evalCall implements spec.md §4.7's "Call evaluation": evaluate
// arguments left-to-right, then dispatch to a user Func body if one
// exists, otherwise to the single capability-dispatch builtin the
// sig's RequireGuarantees clause names.
func (ev *Evaluator) evalCall(call *ast.CallExpr) (Value, error) {
	sig, ok := ev.syms.Sig(call.Callee)
	if !ok {
		return nil, errf(call.Position, "call to undeclared function '%s'", call.Callee)
	}

	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := ev.evalExpr(a.Expr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if f, ok := ev.syms.Func(call.Callee); ok {
		return ev.callFunc(f, args)
	}
	return ev.dispatchBuiltin(sig, args, call.Position)
}

// callFunc binds args positionally (immutably) into a fresh
// Environment and executes the body. If the matching sig declared
// `handled` (spec.md §GLOSSARY: "a sig attribute that swallows the
// sig's declared failures at both compile-time and runtime"), a
// RaisedFailure escaping the body is swallowed and the call returns
// Unit. The func's own (unvalidated, parser-local) Attrs play no part
// in this: `handled` is a property of the sig, not the func body.
func (ev *Evaluator) callFunc(f *ast.FuncDecl, args []Value) (Value, error) {
	local := NewEnvironment()
	for i, p := range f.Params {
		local.Define(p.Name, args[i], false)
	}

	saved := ev.env
	ev.env = local
	result, err := ev.execBlock(f.Body)
	ev.env = saved

	if err != nil {
		if _, ok := err.(*RaisedFailure); ok && ev.sigHandles(f.Name) {
			return Unit, nil
		}
		return nil, err
	}
	return result, nil
}

// sigHandles reports whether the sig matching name declares the
// `handled` attribute.
func (ev *Evaluator) sigHandles(name string) bool {
	sig, ok := ev.syms.Sig(name)
	return ok && hasAttr(sig.Attrs, "handled")
}

// execBlock runs a func body's statements; a ReturnStmt short-circuits
// with its value, an ExprStmt evaluates and discards, and a body that
// falls off the end yields Unit (spec.md §4.7).
func (ev *Evaluator) execBlock(b *ast.BlockStmt) (Value, error) {
	for _, st := range b.Stmts {
		switch s := st.(type) {
		case *ast.ReturnStmt:
			return ev.evalExpr(s.Expr)
		case *ast.ExprStmt:
			if _, err := ev.evalExpr(s.Expr); err != nil {
				return nil, err
			}
		default:
			return nil, errf(st.Pos(), "unsupported statement kind in function body")
		}
	}
	return Unit, nil
}

// dispatchBuiltin resolves a sig with no matching Func to a concrete
// builtin id. A sig naming a direct `builtin <dotted>` (e.g. div,
// toFloat) invokes it as-is; otherwise sig must carry exactly one
// RequireGuarantees clause (the runtime-dispatch convention, spec.md
// §4.7 step 4): Self is the first argument's runtime type tag, and
// (Self, G, sig.name) must be a registered Impl.
func (ev *Evaluator) dispatchBuiltin(sig *ast.SigDecl, args []Value, pos lexer.Position) (Value, error) {
	var builtinID string
	if sig.Builtin != nil {
		builtinID = *sig.Builtin
	} else {
		guarantee, ok := soleGuaranteeRequirement(sig)
		if !ok {
			return nil, errf(pos, "sig '%s' has no func body and no dispatchable guarantee requirement", sig.Name)
		}
		if len(args) == 0 {
			return nil, errf(pos, "sig '%s': cannot dispatch with no arguments", sig.Name)
		}
		selfType := args[0].Type()
		id, ok := ev.syms.Impl(selfType, guarantee, sig.Name)
		if !ok {
			return nil, errf(pos, "missing impl: %s guarantees %s.%s", selfType, guarantee, sig.Name)
		}
		builtinID = id
	}

	if !hasBuiltin(builtinID) {
		return nil, errf(pos, "unknown builtin '%s'", builtinID)
	}

	v, err := callBuiltin(ev.out, builtinID, args)
	if err != nil {
		if _, ok := err.(*RaisedFailure); ok {
			return nil, err
		}
		if isPrintBuiltin(builtinID) {
			return nil, &RaisedFailure{Fid: effect.PrintErr}
		}
		return nil, err
	}
	return v, nil
}

func soleGuaranteeRequirement(sig *ast.SigDecl) (string, bool) {
	guarantee, count := "", 0
	for _, r := range sig.Requires {
		if rg, ok := r.(ast.RequireGuarantees); ok {
			guarantee = rg.GuaranteeName
			count++
		}
	}
	return guarantee, count == 1
}

func hasAttr(attrs []string, name string) bool {
	for _, a := range attrs {
		if a == name {
			return true
		}
	}
	return false
}

func isPrintBuiltin(id string) bool {
	switch id {
	case "core.int.print", "core.float.print", "core.string.print", "core.ordering.print":
		return true
	}
	return false
}
