package parser

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/lexer"
)

// parseVarDecl parses `let name: T = expr` or `var name: T = expr`.
func (p *Parser) parseVarDecl(mutable bool) (*ast.VarDecl, error) {
	start := p.cur().Pos
	if mutable {
		if _, err := p.eat(lexer.KW, "var"); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.eat(lexer.KW, "let"); err != nil {
			return nil, err
		}
	}

	name, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, ":"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.VarDecl{Mutable: mutable, Type: typ, Name: name, Expr: expr, Position: start}, nil
}

// parseAssign parses `name = expr`, re-binding an existing mutable name.
func (p *Parser) parseAssign() (*ast.AssignStmt, error) {
	name, pos, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Name: name, Expr: expr, Position: pos}, nil
}

// parseExprStmt parses a bare call expression used for its side effect.
func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	pos := p.cur().Pos
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Position: pos}, nil
}

// parseTry parses the top-level `try <expr>` half of a try/catch group.
func (p *Parser) parseTry() (*ast.TryStmt, error) {
	pos := p.cur().Pos
	if _, err := p.eat(lexer.KW, "try"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.TryStmt{Expr: expr, Position: pos}, nil
}

// parseCatch parses `catch FailureName <handler until end of line>`. The
// handler's tokens are collected and re-parsed by a fresh sub-parser so
// that the end-of-line boundary can be enforced without a general
// statement terminator (spec.md §4.2, §9 "Try/Catch adjacency"); nested
// try/catch inside a handler is rejected up front.
func (p *Parser) parseCatch() (*ast.CatchStmt, error) {
	pos := p.cur().Pos
	if _, err := p.eat(lexer.KW, "catch"); err != nil {
		return nil, err
	}

	failureName, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}

	var handler []lexer.Token
	for p.cur().Kind != lexer.NEWLINE && p.cur().Kind != lexer.EOF {
		handler = append(handler, p.advance())
	}
	if p.cur().Kind == lexer.NEWLINE {
		p.advance()
	}

	if len(handler) == 0 {
		return nil, errf(pos, "catch must have a handler expression on the same line")
	}
	if handler[0].Kind == lexer.KW && (handler[0].Text == "try" || handler[0].Text == "catch") {
		return nil, errf(handler[0].Pos, "nested try/catch is forbidden in catch body")
	}

	handler = append(handler, lexer.Token{Kind: lexer.EOF, Pos: handler[len(handler)-1].Pos})
	sub := New(handler)
	expr, err := sub.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.CatchStmt{FailureName: failureName, Expr: expr, Position: pos}, nil
}

// parseBlock parses a func body: `{ (return <expr> | <expr>)* }`.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.SYM, "{"); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if p.cur().IsSym("}") {
			break
		}

		if p.cur().IsKW("return") {
			pos := p.cur().Pos
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, &ast.ReturnStmt{Expr: expr, Position: pos})
			p.skipNewlines()
			continue
		}

		pos := p.cur().Pos
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &ast.ExprStmt{Expr: expr, Position: pos})
		p.skipNewlines()
	}

	if _, err := p.eat(lexer.SYM, "}"); err != nil {
		return nil, err
	}

	return &ast.BlockStmt{Stmts: stmts, Position: start}, nil
}
