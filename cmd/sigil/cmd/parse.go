package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/cerrors"
	"github.com/cwbudde/sigil/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpression string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse sigil source code and display the AST",
	Long: `Parse sigil source code and dump its Abstract Syntax Tree.

If no file is provided, reads from stdin.
Use -e to parse a single literal instead of a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpression, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case parseExpression != "":
		input, filename = parseExpression, "<eval>"
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input, filename = string(data), args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input, filename = string(data), "<stdin>"
	}

	prog, err := parser.Parse(input)
	if err != nil {
		ce := cerrors.FromError(err, input, filename)
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return fmt.Errorf("parsing failed")
	}

	dumpProgram(prog)
	return nil
}

func dumpProgram(prog *ast.Program) {
	fmt.Printf("Program (%d items)\n", len(prog.Items))
	for _, item := range prog.Items {
		dumpNode(item, 1)
	}
}

func dumpNode(node any, indent int) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.GuaranteeDecl:
		fmt.Printf("%sGuaranteeDecl %s (%d methods)\n", pad, n.Name, len(n.Methods))
	case *ast.TypeGroupDecl:
		fmt.Printf("%sTypeGroupDecl %s (%d members)\n", pad, n.Name, len(n.Members))
	case *ast.RegisterDecl:
		fmt.Printf("%sRegisterDecl %s guarantees %s\n", pad, n.Type.Name, n.Guarantee)
	case *ast.ImplDecl:
		fmt.Printf("%sImplDecl %s guarantees %s (%d methods)\n", pad, n.Type.Name, n.Guarantee, len(n.Methods))
	case *ast.SigDecl:
		fmt.Printf("%sSigDecl %s -> %s\n", pad, n.Name, n.Ret.Name)
	case *ast.FuncDecl:
		fmt.Printf("%sFuncDecl %s (%d params)\n", pad, n.Name, len(n.Params))
		dumpNode(n.Body, indent+1)
	case *ast.VarDecl:
		kw := "let"
		if n.Mutable {
			kw = "var"
		}
		fmt.Printf("%s%s %s: %s\n", pad, kw, n.Name, n.Type.Name)
		dumpNode(n.Expr, indent+1)
	case *ast.AssignStmt:
		fmt.Printf("%sAssignStmt %s\n", pad, n.Name)
		dumpNode(n.Expr, indent+1)
	case *ast.ExprStmt:
		fmt.Printf("%sExprStmt\n", pad)
		dumpNode(n.Expr, indent+1)
	case *ast.TryStmt:
		fmt.Printf("%sTryStmt\n", pad)
		dumpNode(n.Expr, indent+1)
	case *ast.CatchStmt:
		fmt.Printf("%sCatchStmt %s\n", pad, n.FailureName)
		dumpNode(n.Expr, indent+1)
	case *ast.ReturnStmt:
		fmt.Printf("%sReturnStmt\n", pad)
		dumpNode(n.Expr, indent+1)
	case *ast.BlockStmt:
		fmt.Printf("%sBlockStmt (%d stmts)\n", pad, len(n.Stmts))
		for _, s := range n.Stmts {
			dumpNode(s, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr %s\n", pad, n.Op)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr %s (%d args)\n", pad, n.Callee, len(n.Args))
		for _, a := range n.Args {
			dumpNode(a.Expr, indent+1)
		}
	case *ast.IdentExpr:
		fmt.Printf("%sIdentExpr %s\n", pad, n.Name)
	case *ast.IntLit:
		fmt.Printf("%sIntLit %d\n", pad, n.Value)
	case *ast.FloatLit:
		fmt.Printf("%sFloatLit %g\n", pad, n.Value)
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}
