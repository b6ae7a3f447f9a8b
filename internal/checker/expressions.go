package checker

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/effect"
	"github.com/cwbudde/sigil/internal/lexer"
)

// inferExpr infers e's type and computes its FailureSet, checking it
// against expected when non-nil (spec.md §4.6 "Type inference for
// calls" generalizes to every expression position, not just calls).
func (c *Checker) inferExpr(e ast.Expr, env map[string]Binding, expected *string) (string, effect.Set, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return c.checkLiteralType("Int", n.Position, expected)

	case *ast.FloatLit:
		return c.checkLiteralType("Float", n.Position, expected)

	case *ast.IdentExpr:
		b, ok := env[n.Name]
		if !ok {
			return "", effect.Empty, errf(n.Position, "unknown identifier '%s'", n.Name)
		}
		if expected != nil && b.Type != *expected {
			return "", effect.Empty, errf(n.Position, "'%s' has type '%s', expected '%s'", n.Name, b.Type, *expected)
		}
		return b.Type, effect.Empty, nil

	case *ast.CallExpr:
		return c.inferCall(n, env, expected)

	default:
		return "", effect.Empty, errf(e.Pos(), "unsupported expression kind")
	}
}

func (c *Checker) checkLiteralType(typ string, pos lexer.Position, expected *string) (string, effect.Set, error) {
	if expected != nil && *expected != typ {
		return "", effect.Empty, errf(pos, "literal has type '%s', expected '%s'", typ, *expected)
	}
	return typ, effect.Empty, nil
}

// inferCall implements spec.md §4.6's call-checking algorithm in full:
// resolve the callee to a Sig, reject named arguments and arity
// mismatches, solve the type-variable map (return type first, then
// each parameter in order), validate every require clause against the
// solved map, and finally re-check each argument against its resolved
// parameter type — accumulating that recheck's FailureSet as the
// call's argument effect.
func (c *Checker) inferCall(call *ast.CallExpr, env map[string]Binding, expected *string) (string, effect.Set, error) {
	sig, ok := c.syms.Sig(call.Callee)
	if !ok {
		return "", effect.Empty, errf(call.Position, "call to undeclared function '%s'", call.Callee)
	}
	if call.Style != ast.ArgPositional {
		return "", effect.Empty, errf(call.Position, "named arguments are not allowed for calls to sig '%s'", sig.Name)
	}
	if len(call.Args) != len(sig.Params) {
		return "", effect.Empty, errf(call.Position, "argument count mismatch in call to '%s': expected %d, got %d", sig.Name, len(sig.Params), len(call.Args))
	}

	tmap := map[string]string{}

	if expected != nil {
		if ast.IsTypeVar(sig.Ret.Name) {
			tmap[sig.Ret.Name] = *expected
		} else if sig.Ret.Name != *expected {
			return "", effect.Empty, c.divHint(sig.Name, errf(call.Position, "call to '%s' returns '%s', expected '%s'", sig.Name, sig.Ret.Name, *expected))
		}
	} else if ast.IsTypeVar(sig.Ret.Name) {
		return "", effect.Empty, errf(call.Position, "cannot determine type variable '%s' for call to '%s'", sig.Ret.Name, sig.Name)
	}

	for i, param := range sig.Params {
		if !ast.IsTypeVar(param.Name) {
			continue
		}
		if _, bound := tmap[param.Name]; bound {
			continue
		}
		argType, _, err := c.inferExpr(call.Args[i].Expr, env, nil)
		if err != nil {
			return "", effect.Empty, err
		}
		tmap[param.Name] = argType
	}

	for _, req := range sig.Requires {
		tv := req.TypeVar()
		concrete, bound := tmap[tv]
		if !bound {
			return "", effect.Empty, errf(call.Position, "call to '%s': type variable '%s' is unresolved", sig.Name, tv)
		}
		switch r := req.(type) {
		case ast.RequireIn:
			members, ok := c.syms.GroupMembers(r.GroupName)
			if !ok {
				return "", effect.Empty, errf(call.Position, "call to '%s': unknown type group '%s'", sig.Name, r.GroupName)
			}
			if _, ok := members[concrete]; !ok {
				return "", effect.Empty, errf(call.Position, "call to '%s': '%s' is not a member of type group '%s'", sig.Name, concrete, r.GroupName)
			}
		case ast.RequireGuarantees:
			if !c.syms.Advertises(concrete, r.GuaranteeName) {
				return "", effect.Empty, errf(call.Position, "call to '%s': '%s' does not advertise guarantee '%s'", sig.Name, concrete, r.GuaranteeName)
			}
		}
	}

	argEff := effect.Empty
	for i, param := range sig.Params {
		paramType := param.Name
		if ast.IsTypeVar(paramType) {
			paramType = tmap[paramType]
		}
		_, eff, err := c.inferExpr(call.Args[i].Expr, env, &paramType)
		if err != nil {
			return "", effect.Empty, c.divHint(sig.Name, err)
		}
		argEff = argEff.Union(eff)
	}

	retType := sig.Ret.Name
	if ast.IsTypeVar(retType) {
		retType = tmap[retType]
	}

	sigEff := failureSetOf(sig.Failures)
	for _, a := range sig.Attrs {
		if a == "handled" {
			return retType, argEff, nil
		}
	}
	return retType, sigEff.Union(argEff), nil
}

func failureSetOf(names []string) effect.Set {
	ids := make([]effect.FailureId, 0, len(names))
	for _, n := range names {
		ids = append(ids, effect.FailureId(n))
	}
	return effect.NewSet(ids...)
}

// divHint enriches a type-mismatch error from a call to 'div' with the
// suggestion that div is declared on Float only (spec.md §4.6 "Special
// enrichment"). Any other callee's error passes through unchanged.
func (c *Checker) divHint(calleeName string, err error) error {
	if calleeName != "div" || err == nil {
		return err
	}
	te, ok := err.(*TypecheckError)
	if !ok {
		return err
	}
	return &TypecheckError{
		Message: te.Message + " ('div' is declared on Float; try '1.0/2.0' or wrapping an Int argument in toFloat(...))",
		Pos:     te.Pos,
	}
}
