package ast

import "github.com/cwbudde/sigil/internal/lexer"

// Stmt is any statement node. At top level, Stmt values also satisfy
// TopLevel; inside a function Block they appear as the block's Stmts.
type Stmt interface {
	Node
	stmt()
}

// VarDecl declares a new binding: `let name: T = expr` (immutable) or
// `var name: T = expr` (mutable).
type VarDecl struct {
	Mutable  bool
	Type     TypeRef
	Name     string
	Expr     Expr
	Position lexer.Position
}

func (s *VarDecl) Pos() lexer.Position { return s.Position }
func (s *VarDecl) stmt()               {}
func (s *VarDecl) topLevel()           {}

// AssignStmt re-binds an existing mutable binding: `name = expr`.
type AssignStmt struct {
	Name     string
	Expr     Expr
	Position lexer.Position
}

func (s *AssignStmt) Pos() lexer.Position { return s.Position }
func (s *AssignStmt) stmt()               {}
func (s *AssignStmt) topLevel()           {}

// ExprStmt evaluates an expression for its side effect and discards
// the result; the expression's type must be Unit.
type ExprStmt struct {
	Expr     Expr
	Position lexer.Position
}

func (s *ExprStmt) Pos() lexer.Position { return s.Position }
func (s *ExprStmt) stmt()               {}
func (s *ExprStmt) topLevel()           {}

// TryStmt is the `try <expr>` half of a try/catch group. It must be
// immediately followed by one or more CatchStmt items at the same
// level (spec.md §4.2, §9 "Try/Catch adjacency").
type TryStmt struct {
	Expr     Expr
	Position lexer.Position
}

func (s *TryStmt) Pos() lexer.Position { return s.Position }
func (s *TryStmt) stmt()               {}
func (s *TryStmt) topLevel()           {}

// CatchStmt is one `catch <FailureName> <expr>` handler. It is only
// legal immediately after a TryStmt or another CatchStmt in the same
// group.
type CatchStmt struct {
	FailureName string
	Expr        Expr
	Position    lexer.Position
}

func (s *CatchStmt) Pos() lexer.Position { return s.Position }
func (s *CatchStmt) stmt()               {}
func (s *CatchStmt) topLevel()           {}

// ReturnStmt short-circuits the enclosing function body with a value.
// Only legal inside a FuncDecl's Block.
type ReturnStmt struct {
	Expr     Expr
	Position lexer.Position
}

func (s *ReturnStmt) Pos() lexer.Position { return s.Position }
func (s *ReturnStmt) stmt()               {}

// BlockStmt is the body of a FuncDecl: a sequence of ReturnStmt and
// ExprStmt (spec.md §4.2 "Func body").
type BlockStmt struct {
	Stmts    []Stmt
	Position lexer.Position
}

func (b *BlockStmt) Pos() lexer.Position { return b.Position }
