package parser

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/lexer"
)

func (p *Parser) isOp() bool {
	t := p.cur()
	if t.Kind != lexer.SYM {
		return false
	}
	_, ok := precedence[t.Text]
	return ok
}

// parseExpr parses one expression. Infix operators are legal only
// immediately inside parentheses (spec.md §4.2); anywhere else an
// operand stands alone and a trailing operator is a syntax error.
func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.cur().IsSym("(") {
		return p.parseParenInfixExpr()
	}

	expr, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.isOp() {
		t := p.cur()
		return nil, errf(t.Pos, "infix operator '%s' is only allowed inside '(...)'", t.Text)
	}
	return expr, nil
}

// parseParenInfixExpr parses '(' <infix-expr> ')'. A parenthesized
// expression that never uses an operator, e.g. `(1)` or `(div(1,2))`,
// is rejected: parentheses exist only to host an operator.
func (p *Parser) parseParenInfixExpr() (ast.Expr, error) {
	lparen, err := p.eat(lexer.SYM, "(")
	if err != nil {
		return nil, err
	}

	expr, sawOp, err := p.parseInfix(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.eat(lexer.SYM, ")"); err != nil {
		return nil, err
	}

	if !sawOp {
		return nil, errf(lparen.Pos, "parentheses are only for infix expressions; remove '(...)' or write an operator inside")
	}
	return expr, nil
}

func binOpOf(text string) ast.BinOp {
	return ast.BinOp(text)
}

// parseInfix parses a left-associative operator chain with the two
// precedence levels from spec.md §4.2 (+/- at 10, */ at 20), reporting
// whether any operator was actually consumed.
func (p *Parser) parseInfix(minPrec int) (ast.Expr, bool, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, false, err
	}
	sawOp := false

	for p.isOp() {
		opTok := p.cur()
		prec := precedence[opTok.Text]
		if prec < minPrec {
			break
		}
		p.advance()

		right, rightSaw, err := p.parseInfix(prec + 1)
		if err != nil {
			return nil, false, err
		}
		sawOp = true
		_ = rightSaw

		left = &ast.BinaryExpr{Op: binOpOf(opTok.Text), Left: left, Right: right, Position: opTok.Pos}
	}

	return left, sawOp, nil
}

// parseOperand parses one atomic expression: a literal, an identifier,
// a call, or a fully parenthesized infix group. Unary minus is
// rejected everywhere; use neg(x) instead (spec.md §4.2).
func (p *Parser) parseOperand() (ast.Expr, error) {
	t := p.cur()

	if t.IsSym("-") {
		return nil, errf(t.Pos, "unary '-' is forbidden; use neg(x) instead")
	}

	if t.IsSym("(") {
		return p.parseParenInfixExpr()
	}

	if t.Kind == lexer.IDENT {
		p.advance()
		if p.cur().IsSym("(") {
			p.advance()
			args, style, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.eat(lexer.SYM, ")"); err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: t.Text, Args: args, Style: style, Position: t.Pos}, nil
		}
		return &ast.IdentExpr{Name: t.Text, Position: t.Pos}, nil
	}

	if t.Kind == lexer.INT {
		p.advance()
		v, err := parseIntLiteral(t.Text)
		if err != nil {
			return nil, errf(t.Pos, "invalid integer literal %q: %v", t.Text, err)
		}
		return &ast.IntLit{Value: v, Position: t.Pos}, nil
	}

	if t.Kind == lexer.FLOAT {
		p.advance()
		v, err := parseFloatLiteral(t.Text)
		if err != nil {
			return nil, errf(t.Pos, "invalid float literal %q: %v", t.Text, err)
		}
		return &ast.FloatLit{Value: v, Position: t.Pos}, nil
	}

	return nil, errf(t.Pos, "unexpected token %s(%q) in expression", t.Kind, t.Text)
}

// parseArgs parses a call's argument list: either all-positional or
// all-named, never mixed (spec.md §3).
func (p *Parser) parseArgs() ([]ast.Arg, ast.ArgStyle, error) {
	var args []ast.Arg
	style := ast.ArgPositional
	styleSet := false

	if p.cur().IsSym(")") {
		return args, style, nil
	}

	for {
		named := p.cur().Kind == lexer.IDENT && p.peek(1).IsSym(":")

		if named {
			if !styleSet {
				style = ast.ArgNamed
				styleSet = true
			} else if style != ast.ArgNamed {
				return nil, 0, errf(p.cur().Pos, "cannot mix positional and named arguments")
			}

			name, pos, err := p.eatIdent()
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.eat(lexer.SYM, ":"); err != nil {
				return nil, 0, err
			}
			expr, err := p.parseExpr()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, ast.Arg{Name: name, Expr: expr, Position: pos})
		} else {
			if !styleSet {
				style = ast.ArgPositional
				styleSet = true
			} else if style != ast.ArgPositional {
				return nil, 0, errf(p.cur().Pos, "cannot mix positional and named arguments")
			}

			pos := p.cur().Pos
			expr, err := p.parseExpr()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, ast.Arg{Expr: expr, Position: pos})
		}

		if p.cur().IsSym(",") {
			p.advance()
			continue
		}
		break
	}

	return args, style, nil
}
