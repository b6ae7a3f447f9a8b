package ast

import "github.com/cwbudde/sigil/internal/lexer"

// Expr is any sigil expression node.
type Expr interface {
	Node
	expr()
}

// IntLit is an integer literal.
type IntLit struct {
	Value    int64
	Position lexer.Position
}

func (e *IntLit) Pos() lexer.Position { return e.Position }
func (e *IntLit) expr()               {}

// FloatLit is a float literal.
type FloatLit struct {
	Value    float64
	Position lexer.Position
}

func (e *FloatLit) Pos() lexer.Position { return e.Position }
func (e *FloatLit) expr()               {}

// IdentExpr references a bound name.
type IdentExpr struct {
	Name     string
	Position lexer.Position
}

func (e *IdentExpr) Pos() lexer.Position { return e.Position }
func (e *IdentExpr) expr()               {}

// BinOp is one of the four surface infix operators. Only present
// before lowering (spec.md §4.3).
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
)

// BinaryExpr is a surface infix expression. The lowerer rewrites every
// BinaryExpr into a CallExpr; no BinaryExpr survives lowering.
type BinaryExpr struct {
	Op       BinOp
	Left     Expr
	Right    Expr
	Position lexer.Position
}

func (e *BinaryExpr) Pos() lexer.Position { return e.Position }
func (e *BinaryExpr) expr()               {}

// ArgStyle distinguishes positional from named call arguments.
type ArgStyle int

const (
	ArgPositional ArgStyle = iota
	ArgNamed
)

// Arg is one call argument, either positional or named.
type Arg struct {
	Name     string // empty for positional args
	Expr     Expr
	Position lexer.Position
}

func (a Arg) Pos() lexer.Position { return a.Position }

// CallExpr calls a named sig or func with either all-positional or
// all-named arguments (spec.md §3 forbids mixing).
type CallExpr struct {
	Callee   string
	Args     []Arg
	Style    ArgStyle
	Position lexer.Position
}

func (e *CallExpr) Pos() lexer.Position { return e.Position }
func (e *CallExpr) expr()               {}
