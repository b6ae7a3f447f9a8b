// Package parser implements sigil's recursive-descent parser. Unlike
// the teacher's Pratt parser over DWScript's large operator table,
// sigil's expression grammar has exactly two precedence levels and
// only admits infix operators inside explicit parentheses (spec.md
// §4.2), so a hand-rolled descent with a tiny precedence table is
// enough — the teacher's structured-error and one-step-lookahead
// conventions carry over unchanged.
package parser

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/lexer"
)

var precedence = map[string]int{
	"+": 10,
	"-": 10,
	"*": 20,
	"/": 20,
}

// Parser walks a fixed token slice produced by lexer.Tokenize.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New creates a Parser over toks. toks must end in an EOF token.
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes src and parses it into a Program in one step.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

func (p *Parser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == lexer.NEWLINE {
		p.pos++
	}
}

func (p *Parser) eat(kind lexer.TokenKind, text string) (lexer.Token, error) {
	t := p.cur()
	if t.Kind != kind || (text != "" && t.Text != text) {
		want := kind.String()
		if text != "" {
			want = kind.String() + "(" + text + ")"
		}
		return lexer.Token{}, errf(t.Pos, "expected %s but got %s(%q)", want, t.Kind, t.Text)
	}
	p.pos++
	return t, nil
}

func (p *Parser) eatIdent() (string, lexer.Position, error) {
	t, err := p.eat(lexer.IDENT, "")
	if err != nil {
		return "", lexer.Position{}, err
	}
	return t.Text, t.Pos, nil
}

// ParseProgram parses a complete source file into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var items []ast.TopLevel

	for {
		p.skipNewlines()
		if p.cur().Kind == lexer.EOF {
			break
		}
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &ast.Program{Items: items}, nil
}

func (p *Parser) parseType() (ast.TypeRef, error) {
	t, err := p.eat(lexer.IDENT, "")
	if err != nil {
		return ast.TypeRef{}, err
	}
	return ast.TypeRef{Name: t.Text, Position: t.Pos}, nil
}

// parseDottedName parses IDENT ('.' IDENT)*, used for builtin ids like
// "core.int.add".
func (p *Parser) parseDottedName() (string, error) {
	name, _, err := p.eatIdent()
	if err != nil {
		return "", err
	}
	for p.cur().IsSym(".") {
		p.advance()
		part, _, err := p.eatIdent()
		if err != nil {
			return "", err
		}
		name += "." + part
	}
	return name, nil
}
