package checker

import "github.com/cwbudde/sigil/internal/ast"

// checkFunc implements Pass 1 (spec.md §4.6): build a local env binding
// each declared parameter immutably, then walk the body's statements.
// Only ReturnStmt and ExprStmt are legal inside a func body; if no
// return occurs the sig's declared return type must be Unit, and every
// return's inferred type must agree with both the sig and each other.
func (c *Checker) checkFunc(f *ast.FuncDecl) error {
	sig, ok := c.syms.Sig(f.Name)
	if !ok {
		return errf(f.Position, "func '%s' has no matching sig declaration", f.Name)
	}

	env := map[string]Binding{}
	for _, p := range f.Params {
		env[p.Name] = Binding{Type: p.Type.Name, Mutable: false}
	}

	sawReturn := false
	var returnType string

	for _, st := range f.Body.Stmts {
		switch s := st.(type) {
		case *ast.ReturnStmt:
			typ, eff, err := c.inferExpr(s.Expr, env, nil)
			if err != nil {
				return err
			}
			if sawReturn && typ != returnType {
				return errf(s.Position, "func '%s': returns disagree ('%s' vs '%s')", f.Name, returnType, typ)
			}
			sawReturn = true
			returnType = typ
			c.warnResidual(eff, s.Position)

		case *ast.ExprStmt:
			_, eff, err := c.inferExpr(s.Expr, env, nil)
			if err != nil {
				return err
			}
			c.warnResidual(eff, s.Position)

		default:
			return errf(st.Pos(), "func '%s': unsupported statement kind in body", f.Name)
		}
	}

	if !sawReturn {
		if sig.Ret.Name != "Unit" {
			return errf(f.Position, "func '%s': no return statement, but sig declares return type '%s'", f.Name, sig.Ret.Name)
		}
		return nil
	}
	if returnType != sig.Ret.Name {
		return errf(f.Position, "func '%s': body returns '%s', sig declares '%s'", f.Name, returnType, sig.Ret.Name)
	}
	return nil
}
