// Package lower rewrites a parsed Program into its call-form equivalent:
// every surface BinaryExpr becomes a CallExpr to the matching arithmetic
// sig, and try/catch groups are left structurally intact since the
// parser already normalizes their shape. Lowering never touches
// catalog-shaped declarations (GuaranteeDecl, TypeGroupDecl, RegisterDecl,
// ImplDecl, SigDecl) — only expressions inside statements change.
package lower

import "github.com/cwbudde/sigil/internal/ast"

// opToCallee maps each surface infix operator to the builtin sig it
// lowers to (spec.md §4.3).
var opToCallee = map[ast.BinOp]string{
	ast.OpAdd: "add",
	ast.OpSub: "sub",
	ast.OpMul: "mul",
	ast.OpDiv: "div",
}

// Program lowers every item of prog, returning a new Program. Lowering
// is idempotent: lowering an already-lowered Program returns an
// equivalent Program (no BinaryExpr survives a first pass, so a second
// pass is a no-op).
func Program(prog *ast.Program) (*ast.Program, error) {
	items := make([]ast.TopLevel, len(prog.Items))
	for i, it := range prog.Items {
		lowered, err := topLevel(it)
		if err != nil {
			return nil, err
		}
		items[i] = lowered
	}
	return &ast.Program{Items: items}, nil
}

func topLevel(it ast.TopLevel) (ast.TopLevel, error) {
	switch n := it.(type) {
	case *ast.ExprStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e, Position: n.Position}, nil

	case *ast.TryStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.TryStmt{Expr: e, Position: n.Position}, nil

	case *ast.CatchStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.CatchStmt{FailureName: n.FailureName, Expr: e, Position: n.Position}, nil

	case *ast.VarDecl:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Mutable: n.Mutable, Type: n.Type, Name: n.Name, Expr: e, Position: n.Position}, nil

	case *ast.AssignStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: n.Name, Expr: e, Position: n.Position}, nil

	case *ast.FuncDecl:
		body, err := block(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Name: n.Name, Params: n.Params, Body: body, Attrs: n.Attrs, Position: n.Position}, nil

	default:
		// Catalog-shaped declarations carry no expressions to lower.
		return it, nil
	}
}

func block(b *ast.BlockStmt) (*ast.BlockStmt, error) {
	out := make([]ast.Stmt, len(b.Stmts))
	for i, st := range b.Stmts {
		lowered, err := stmt(st)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return &ast.BlockStmt{Stmts: out, Position: b.Position}, nil
}

func stmt(st ast.Stmt) (ast.Stmt, error) {
	switch n := st.(type) {
	case *ast.ReturnStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Expr: e, Position: n.Position}, nil

	case *ast.ExprStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e, Position: n.Position}, nil

	case *ast.VarDecl:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Mutable: n.Mutable, Type: n.Type, Name: n.Name, Expr: e, Position: n.Position}, nil

	case *ast.AssignStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: n.Name, Expr: e, Position: n.Position}, nil

	case *ast.TryStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.TryStmt{Expr: e, Position: n.Position}, nil

	case *ast.CatchStmt:
		e, err := expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.CatchStmt{FailureName: n.FailureName, Expr: e, Position: n.Position}, nil

	default:
		return st, nil
	}
}

func expr(e ast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.BinaryExpr:
		left, err := expr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := expr(n.Right)
		if err != nil {
			return nil, err
		}
		callee, ok := opToCallee[n.Op]
		if !ok {
			return nil, &Error{Message: "unknown binary operator '" + string(n.Op) + "'", Pos: n.Position}
		}
		return &ast.CallExpr{
			Callee: callee,
			Args: []ast.Arg{
				{Expr: left, Position: left.Pos()},
				{Expr: right, Position: right.Pos()},
			},
			Style:    ast.ArgPositional,
			Position: n.Position,
		}, nil

	case *ast.CallExpr:
		args := make([]ast.Arg, len(n.Args))
		for i, a := range n.Args {
			lowered, err := expr(a.Expr)
			if err != nil {
				return nil, err
			}
			args[i] = ast.Arg{Name: a.Name, Expr: lowered, Position: a.Position}
		}
		return &ast.CallExpr{Callee: n.Callee, Args: args, Style: n.Style, Position: n.Position}, nil

	default:
		// IdentExpr, IntLit, FloatLit carry no sub-expressions.
		return e, nil
	}
}
