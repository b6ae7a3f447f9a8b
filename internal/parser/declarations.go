package parser

import (
	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/lexer"
)

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.cur().IsSym(")") {
		return params, nil
	}
	for {
		name, pos, err := p.eatIdent()
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
		params = append(params, ast.Param{Name: name, Type: typ, Position: pos})
		if p.cur().IsSym(",") {
			p.advance()
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) parseSigParamTypes() ([]ast.TypeRef, error) {
	var tys []ast.TypeRef
	if p.cur().IsSym(")") {
		return tys, nil
	}
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		tys = append(tys, typ)
		if p.cur().IsSym(",") {
			p.advance()
			continue
		}
		break
	}
	return tys, nil
}

// parseGuarantee parses `guarantee Name { methodSig* }`.
func (p *Parser) parseGuarantee() (*ast.GuaranteeDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "guarantee"); err != nil {
		return nil, err
	}
	name, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "{"); err != nil {
		return nil, err
	}

	var methods []ast.MethodSig
	for {
		p.skipNewlines()
		if p.cur().IsSym("}") {
			break
		}
		m, err := p.parseMethodSig()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.eat(lexer.SYM, "}"); err != nil {
		return nil, err
	}

	return &ast.GuaranteeDecl{Name: name, Methods: methods, Position: start}, nil
}

// parseMethodSig parses `add(self: Self, other: Self) -> Self`.
func (p *Parser) parseMethodSig() (ast.MethodSig, error) {
	name, pos, err := p.eatIdent()
	if err != nil {
		return ast.MethodSig{}, err
	}
	if _, err := p.eat(lexer.SYM, "("); err != nil {
		return ast.MethodSig{}, err
	}
	params, err := p.parseParams()
	if err != nil {
		return ast.MethodSig{}, err
	}
	if _, err := p.eat(lexer.SYM, ")"); err != nil {
		return ast.MethodSig{}, err
	}
	if _, err := p.eat(lexer.SYM, "->"); err != nil {
		return ast.MethodSig{}, err
	}
	ret, err := p.parseType()
	if err != nil {
		return ast.MethodSig{}, err
	}
	return ast.MethodSig{Name: name, Params: params, Ret: ret, Position: pos}, nil
}

// parseTypeGroup parses `typegroup Number = Int | Float`.
func (p *Parser) parseTypeGroup() (*ast.TypeGroupDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "typegroup"); err != nil {
		return nil, err
	}
	name, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "="); err != nil {
		return nil, err
	}
	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	members := []ast.TypeRef{first}
	for p.cur().IsSym("|") {
		p.advance()
		m, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return &ast.TypeGroupDecl{Name: name, Members: members, Position: start}, nil
}

// parseRegister parses `register Int guarantees Addable`.
func (p *Parser) parseRegister() (*ast.RegisterDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "register"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.KW, "guarantees"); err != nil {
		return nil, err
	}
	gname, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	return &ast.RegisterDecl{Type: typ, Guarantee: gname, Position: start}, nil
}

// parseImpl parses `impl Int guarantees Addable { add = builtin core.int.add }`.
func (p *Parser) parseImpl() (*ast.ImplDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "impl"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.KW, "guarantees"); err != nil {
		return nil, err
	}
	gname, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "{"); err != nil {
		return nil, err
	}

	var methods []ast.ImplMethod
	for {
		p.skipNewlines()
		if p.cur().IsSym("}") {
			break
		}
		mname, mpos, err := p.eatIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(lexer.SYM, "="); err != nil {
			return nil, err
		}
		if _, err := p.eat(lexer.KW, "builtin"); err != nil {
			return nil, err
		}
		bname, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.ImplMethod{Name: mname, Builtin: bname, Position: mpos})
		p.skipNewlines()
	}
	if _, err := p.eat(lexer.SYM, "}"); err != nil {
		return nil, err
	}

	return &ast.ImplDecl{Type: typ, Guarantee: gname, Methods: methods, Position: start}, nil
}

func (p *Parser) parseRequireClause() (ast.RequireClause, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "require"); err != nil {
		return nil, err
	}
	tvar, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}

	switch {
	case p.cur().IsKW("in"):
		p.advance()
		group, _, err := p.eatIdent()
		if err != nil {
			return nil, err
		}
		return ast.RequireIn{TypeVarName: tvar, GroupName: group, Position: start}, nil
	case p.cur().IsKW("guarantees"):
		p.advance()
		gname, _, err := p.eatIdent()
		if err != nil {
			return nil, err
		}
		return ast.RequireGuarantees{TypeVarName: tvar, GuaranteeName: gname, Position: start}, nil
	}

	t := p.cur()
	return nil, errf(t.Pos, "expected 'in' or 'guarantees' after require, got %s(%q)", t.Kind, t.Text)
}

// parseSig parses a sig declaration body: param types, return type, and
// an unordered set of require/failure/builtin clauses (spec.md §4.2).
func (p *Parser) parseSig(attrs []string) (*ast.SigDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "sig"); err != nil {
		return nil, err
	}
	name, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "("); err != nil {
		return nil, err
	}
	params, err := p.parseSigParamTypes()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, ")"); err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "->"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var requires []ast.RequireClause
	var failures []string
	var builtin *string
	sawNever := false

	if _, err := p.eat(lexer.SYM, "{"); err != nil {
		return nil, err
	}

	for {
		p.skipNewlines()
		if p.cur().IsSym("}") {
			break
		}

		switch {
		case p.cur().IsKW("require"):
			rc, err := p.parseRequireClause()
			if err != nil {
				return nil, err
			}
			requires = append(requires, rc)
			continue

		case p.cur().IsKW("failure"):
			p.advance()
			ftype, err := p.parseType()
			if err != nil {
				return nil, err
			}
			f := ftype.Name
			if f == "Never" {
				if sawNever || len(failures) > 0 {
					return nil, errf(ftype.Position, "'Never' may not be combined with other failures")
				}
				sawNever = true
			} else {
				if sawNever {
					return nil, errf(ftype.Position, "'Never' may not be combined with other failures")
				}
				for _, have := range failures {
					if have == f {
						return nil, errf(ftype.Position, "duplicate failure '%s'", f)
					}
				}
				failures = append(failures, f)
			}
			continue

		case p.cur().IsKW("builtin"):
			p.advance()
			if builtin != nil {
				return nil, errf(p.cur().Pos, "duplicate builtin")
			}
			bname, err := p.parseDottedName()
			if err != nil {
				return nil, err
			}
			builtin = &bname
			continue
		}

		t := p.cur()
		return nil, errf(t.Pos, "unexpected token in sig body %s(%q)", t.Kind, t.Text)
	}

	if _, err := p.eat(lexer.SYM, "}"); err != nil {
		return nil, err
	}

	return &ast.SigDecl{
		Name:     name,
		Params:   params,
		Ret:      ret,
		Requires: requires,
		Failures: failures,
		Attrs:    attrs,
		Builtin:  builtin,
		Position: start,
	}, nil
}

// parseFunc parses `func add(a: Int, b: Int) { return (a + b) }`.
func (p *Parser) parseFunc(attrs []string) (*ast.FuncDecl, error) {
	start := p.cur().Pos
	if _, err := p.eat(lexer.KW, "func"); err != nil {
		return nil, err
	}
	name, _, err := p.eatIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, "("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SYM, ")"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{Name: name, Params: params, Body: body, Attrs: attrs, Position: start}, nil
}
