package checker

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/effect"
)

// checkTopLevel implements Pass 2 (spec.md §4.6): walk items in
// declaration order, maintaining an env of name -> Binding. A
// TryStmt must be followed by one or more adjacent CatchStmt items,
// consumed together as a single group; a CatchStmt appearing on its
// own is an error.
func (c *Checker) checkTopLevel(items []ast.TopLevel) error {
	env := map[string]Binding{}

	for i := 0; i < len(items); {
		switch n := items[i].(type) {
		case *ast.VarDecl:
			if _, dup := env[n.Name]; dup {
				return errf(n.Position, "redeclaration of '%s'", n.Name)
			}
			expected := n.Type.Name
			typ, eff, err := c.inferExpr(n.Expr, env, &expected)
			if err != nil {
				return err
			}
			env[n.Name] = Binding{Type: typ, Mutable: n.Mutable}
			c.warnResidual(eff, n.Position)
			i++

		case *ast.AssignStmt:
			b, ok := env[n.Name]
			if !ok {
				return errf(n.Position, "unknown identifier '%s'", n.Name)
			}
			if !b.Mutable {
				return errf(n.Position, "'%s' is not mutable; declare it with 'var' to assign", n.Name)
			}
			_, eff, err := c.inferExpr(n.Expr, env, &b.Type)
			if err != nil {
				return err
			}
			c.warnResidual(eff, n.Position)
			i++

		case *ast.ExprStmt:
			typ, eff, err := c.inferExpr(n.Expr, env, nil)
			if err != nil {
				return err
			}
			if typ != "Unit" {
				return errf(n.Position, "only Unit expressions are allowed as statements (got '%s')", typ)
			}
			c.warnResidual(eff, n.Position)
			i++

		case *ast.TryStmt:
			consumed, err := c.checkTryGroup(n, items[i+1:], env)
			if err != nil {
				return err
			}
			i += 1 + consumed

		case *ast.CatchStmt:
			return errf(n.Position, "stray 'catch' with no preceding 'try'")

		default:
			// Declarations (guarantee/typegroup/register/impl/sig/func)
			// were already validated by internal/symbols and checked
			// (for func) in Pass 1; nothing more to do here.
			i++
		}
	}
	return nil
}

// checkTryGroup checks a TryStmt plus the run of CatchStmt items that
// immediately follow it (rest, which starts right after the TryStmt).
// It returns how many of rest's items belong to the group, so the
// caller can advance its index past all of them.
func (c *Checker) checkTryGroup(try *ast.TryStmt, rest []ast.TopLevel, env map[string]Binding) (int, error) {
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

	_, tryEff, err := c.inferExpr(try.Expr, env, unitPtr())
	if err != nil {
		return 0, err
	}
	for _, cs := range catches {
		tryEff = tryEff.Remove(effect.FailureId(cs.FailureName))
	}

	catchEff := effect.Empty
	for _, cs := range catches {
		_, eff, err := c.inferExpr(cs.Expr, env, unitPtr())
		if err != nil {
			return 0, err
		}
		// Same-failure nesting is disallowed: a catch's own failure
		// name never counts toward the group's residual even if its
		// handler expression happens to raise it again.
		eff = eff.Remove(effect.FailureId(cs.FailureName))
		catchEff = catchEff.Union(eff)
	}

	residual := tryEff.Union(catchEff)
	c.warnResidual(residual, try.Position)
	return len(catches), nil
}
