package sema

import (
	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/types"
)

// checkPattern validates p against the scrutinee type and returns the
// variables it binds plus the substitution its constructor unification
// produced. Wildcards and bare names constrain nothing.
func (c *checker) checkPattern(p ast.Pattern, scrutTy *types.Type) (map[string]types.Scheme, types.Subst, error) {
	switch p.Kind {
	case ast.PatWild:
		return nil, nil, nil

	case ast.PatVar:
		return map[string]types.Scheme{p.Name: types.MonoScheme(scrutTy)}, nil, nil

	case ast.PatLit:
		s, err := unify(scrutTy, types.Int())
		if err != nil {
			return nil, nil, errAt(diag.SemaPatternNotSpecific, p.Span,
				"literal pattern requires an Int scrutinee, got %s", scrutTy)
		}
		return nil, s, nil

	case ast.PatCon:
		conTy, ok := c.cons[p.Name]
		if !ok {
			return nil, nil, errAt(diag.SemaUnboundName, p.Span, "unbound constructor: %s", p.Name)
		}
		params, ret := splitConType(c.instantiate(conTy))
		if len(params) != len(p.Vars) {
			return nil, nil, errAt(diag.SemaPatternArity, p.Span,
				"constructor %s takes %d arguments, pattern names %d", p.Name, len(params), len(p.Vars))
		}
		s, err := unify(ret, scrutTy)
		if err != nil {
			return nil, nil, errAt(diag.SemaPatternNotSpecific, p.Span,
				"pattern %s produces %s, scrutinee has type %s", p.Name, ret, scrutTy)
		}
		if !types.MoreSpecific(s.Apply(ret), s.Apply(scrutTy)) {
			return nil, nil, errAt(diag.SemaPatternNotSpecific, p.Span,
				"pattern %s produces %s, which does not cover %s", p.Name, s.Apply(ret), s.Apply(scrutTy))
		}
		bound := make(map[string]types.Scheme, len(p.Vars))
		for i, v := range p.Vars {
			if v == "_" {
				continue
			}
			bound[v] = types.MonoScheme(s.Apply(params[i]))
		}
		return bound, s, nil
	}
	panic("sema: unhandled pattern kind")
}

// splitConType unwinds a curried constructor type into its parameter list
// and final data type.
func splitConType(t *types.Type) ([]*types.Type, *types.Type) {
	var params []*types.Type
	for t.Kind == types.Fn {
		params = append(params, t.Dom)
		t = t.Cod
	}
	return params, t
}
