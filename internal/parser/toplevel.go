package parser

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/lexer"
)

// parseAttrs parses zero or more `@attr.<name>` lines preceding a sig
// or func declaration (spec.md §4.2).
func (p *Parser) parseAttrs() ([]string, error) {
	var attrs []string

	for p.cur().IsSym("@") {
		p.advance()

		ns, pos, err := p.eatIdent()
		if err != nil {
			return nil, err
		}
		if ns != "attr" {
			return nil, errf(pos, "unknown attribute namespace '@%s' (did you mean @attr.<name>?)", ns)
		}
		if _, err := p.eat(lexer.SYM, "."); err != nil {
			return nil, err
		}
		name, _, err := p.eatIdent()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, name)
		p.skipNewlines()
	}

	return attrs, nil
}

func (p *Parser) parseTopLevel() (ast.TopLevel, error) {
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}

	switch {
	case p.cur().IsKW("guarantee"):
		return p.parseGuarantee()
	case p.cur().IsKW("typegroup"):
		return p.parseTypeGroup()
	case p.cur().IsKW("register"):
		return p.parseRegister()
	case p.cur().IsKW("impl"):
		return p.parseImpl()
	case p.cur().IsKW("func"):
		return p.parseFunc(attrs)
	case p.cur().IsKW("sig"):
		return p.parseSig(attrs)
	}

	if len(attrs) > 0 {
		return nil, errf(p.cur().Pos, "attributes must precede a sig or func declaration")
	}

	switch {
	case p.cur().IsKW("let"):
		return p.parseVarDecl(false)
	case p.cur().IsKW("var"):
		return p.parseVarDecl(true)
	case p.cur().IsKW("try"):
		return p.parseTry()
	case p.cur().IsKW("catch"):
		return p.parseCatch()
	}

	if p.cur().Kind == lexer.IDENT && p.peek(1).IsSym("=") {
		return p.parseAssign()
	}
	if p.cur().Kind == lexer.IDENT && p.peek(1).IsSym("(") {
		return p.parseExprStmt()
	}

	t := p.cur()
	return nil, errf(t.Pos, "unexpected top-level token %s(%q)", t.Kind, t.Text)
}
