// Package catalog loads a prelude's JSON-encoded declarations into the
// same ast.TopLevel items the parser produces for user source, so the
// symbol builder can merge both without caring which one built them.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/cwbudde/sigil/internal/ast"
)

// Error reports a malformed catalog document.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

type rawCatalog struct {
	Guarantees []rawGuarantee `json:"guarantees"`
	Impls      []rawImpl      `json:"impls"`
	Sigs       []rawSig       `json:"sigs"`
}

type rawGuarantee struct {
	Name    string      `json:"name"`
	Methods []rawMethod `json:"methods"`
}

type rawMethod struct {
	Name   string     `json:"name"`
	Params []rawParam `json:"params"`
	Ret    any        `json:"ret"`
}

type rawParam struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type rawImpl struct {
	Type      any             `json:"type"`
	Guarantee string          `json:"guarantee"`
	Methods   []rawImplMethod `json:"methods"`
}

type rawImplMethod struct {
	Name    string `json:"name"`
	Builtin string `json:"builtin"`
}

type rawSig struct {
	Name     string         `json:"name"`
	Params   []any          `json:"params"`
	Ret      any            `json:"ret"`
	Requires []rawRequire   `json:"requires"`
	Failures []any          `json:"failures"`
	Attrs    []any          `json:"attrs"`
	Builtin  *string        `json:"builtin"`
}

type rawRequire struct {
	Kind      string `json:"kind"`
	TypeVar   string `json:"type_var"`
	Guarantee string `json:"guarantee"`
}

// Load parses a single catalog JSON document into a flat, order-
// preserving slice of ast.TopLevel items (GuaranteeDecl, ImplDecl,
// SigDecl), mirroring original_source/ginger/core/catalog_loader.py's
// load_core_catalog_json.
func Load(src []byte) ([]ast.TopLevel, error) {
	var raw rawCatalog
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, errf("catalog JSON root must be an object: %v", err)
	}

	var items []ast.TopLevel

	for _, g := range raw.Guarantees {
		if g.Name == "" {
			return nil, errf("guarantee.name must be a non-empty string")
		}
		methods := make([]ast.MethodSig, 0, len(g.Methods))
		for _, m := range g.Methods {
			if m.Name == "" {
				return nil, errf("guarantee %q: method.name must be a non-empty string", g.Name)
			}
			params, err := parseParams(m.Params)
			if err != nil {
				return nil, errf("guarantee %q method %q: %v", g.Name, m.Name, err)
			}
			ret, err := typeRef(m.Ret)
			if err != nil {
				return nil, errf("guarantee %q method %q: invalid ret: %v", g.Name, m.Name, err)
			}
			methods = append(methods, ast.MethodSig{Name: m.Name, Params: params, Ret: ret})
		}
		items = append(items, &ast.GuaranteeDecl{Name: g.Name, Methods: methods})
	}

	for _, imp := range raw.Impls {
		typ, err := typeRef(imp.Type)
		if err != nil {
			return nil, errf("impl: invalid type: %v", err)
		}
		if imp.Guarantee == "" {
			return nil, errf("impl on %q: guarantee must be a non-empty string", typ.Name)
		}
		methods := make([]ast.ImplMethod, 0, len(imp.Methods))
		for _, m := range imp.Methods {
			if m.Name == "" || m.Builtin == "" {
				return nil, errf("impl %s/%s: method name and builtin must be non-empty strings", typ.Name, imp.Guarantee)
			}
			methods = append(methods, ast.ImplMethod{Name: m.Name, Builtin: m.Builtin})
		}
		items = append(items, &ast.ImplDecl{Type: typ, Guarantee: imp.Guarantee, Methods: methods})
	}

	for _, s := range raw.Sigs {
		if s.Name == "" {
			return nil, errf("sig.name must be a non-empty string")
		}
		params := make([]ast.TypeRef, 0, len(s.Params))
		for _, p := range s.Params {
			tr, err := typeRef(p)
			if err != nil {
				return nil, errf("sig %q: invalid param type: %v", s.Name, err)
			}
			params = append(params, tr)
		}
		ret, err := typeRef(s.Ret)
		if err != nil {
			return nil, errf("sig %q: invalid ret: %v", s.Name, err)
		}
		requires, err := parseRequires(s.Requires)
		if err != nil {
			return nil, errf("sig %q: %v", s.Name, err)
		}
		failures, err := stringSlice(s.Failures)
		if err != nil {
			return nil, errf("sig %q: invalid failures: %v", s.Name, err)
		}
		attrs, err := stringSlice(s.Attrs)
		if err != nil {
			return nil, errf("sig %q: invalid attrs: %v", s.Name, err)
		}

		items = append(items, &ast.SigDecl{
			Name:     s.Name,
			Params:   params,
			Ret:      ret,
			Requires: requires,
			Failures: failures,
			Attrs:    attrs,
			Builtin:  s.Builtin,
		})
	}

	return items, nil
}

// typeRef accepts either the bare string shorthand ("Int") or the
// object form ({"ref": "Int"}) the loader's Python original tolerates,
// using spf13/cast to coerce whichever shape JSON decoded into.
func typeRef(v any) (ast.TypeRef, error) {
	if v == nil {
		return ast.TypeRef{}, errf("missing type ref")
	}
	if s, err := cast.ToStringE(v); err == nil && isPlainString(v) {
		return ast.TypeRef{Name: s}, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return ast.TypeRef{}, errf("invalid type ref: %v", v)
	}
	ref, ok := m["ref"]
	if !ok {
		return ast.TypeRef{}, errf("object type ref missing 'ref' field: %v", v)
	}
	name, err := cast.ToStringE(ref)
	if err != nil {
		return ast.TypeRef{}, errf("type ref.ref must be a string: %v", ref)
	}
	return ast.TypeRef{Name: name}, nil
}

func isPlainString(v any) bool {
	_, ok := v.(string)
	return ok
}

func parseParams(raw []rawParam) ([]ast.Param, error) {
	params := make([]ast.Param, 0, len(raw))
	for _, p := range raw {
		if p.Name == "" {
			return nil, errf("param.name must be a non-empty string")
		}
		tr, err := typeRef(p.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: p.Name, Type: tr})
	}
	return params, nil
}

// parseRequires only accepts the "guarantees" require kind, matching
// original_source/ginger/core/catalog_loader.py's _require (its only
// supported shape); a prelude catalog has no use for a type-group
// require, so "in" is left unsupported in JSON the way the original
// leaves it unsupported in Python.
func parseRequires(raw []rawRequire) ([]ast.RequireClause, error) {
	clauses := make([]ast.RequireClause, 0, len(raw))
	for _, r := range raw {
		if r.Kind != "guarantees" {
			return nil, errf("unknown require.kind: %q", r.Kind)
		}
		if r.TypeVar == "" || r.Guarantee == "" {
			return nil, errf("invalid guarantees require: %+v", r)
		}
		clauses = append(clauses, ast.RequireGuarantees{TypeVarName: r.TypeVar, GuaranteeName: r.Guarantee})
	}
	return clauses, nil
}

func stringSlice(raw []any) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
