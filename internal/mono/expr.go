package mono

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/types"
)

// specializeExpr clones e with every node type rewritten under sub. A global
// reference triggers specialization of its binding at the reference's
// concrete type; a constructor reference registers the concrete
// instantiation of its parent data type.
func (b *builder) specializeExpr(e *ast.Expr, sub types.Subst, locals map[string]bool) (*ast.Expr, error) {
	ty := sub.Apply(e.Ty)

	switch data := e.Data.(type) {
	case ast.LitData:
		out := ast.NewLit(e.Span, data.Value)
		out.Ty = ty
		return out, nil

	case ast.IdData:
		if locals[data.Name] {
			out := ast.NewId(e.Span, data.Name)
			out.Ty = ty
			return out, nil
		}
		if !types.IsConcrete(ty) {
			return nil, fmt.Errorf("mono: bug: %s used at non-concrete type %s", data.Name, ty)
		}
		spec, err := b.ensure(data.Name, ty)
		if err != nil {
			return nil, err
		}
		out := ast.NewId(e.Span, spec)
		out.Ty = ty
		return out, nil

	case ast.ConData:
		spec, err := b.registerCon(data.Name, ty)
		if err != nil {
			return nil, err
		}
		out := ast.NewCon(e.Span, spec)
		out.Ty = ty
		return out, nil

	case ast.LamData:
		// Lambdas do not survive lifting, but the walk stays total.
		body, err := b.specializeExpr(data.Body, sub, withLocal(locals, data.Param))
		if err != nil {
			return nil, err
		}
		out := ast.NewLam(e.Span, data.Param, body)
		out.Ty = ty
		return out, nil

	case ast.AppData:
		fn, err := b.specializeExpr(data.Fn, sub, locals)
		if err != nil {
			return nil, err
		}
		arg, err := b.specializeExpr(data.Arg, sub, locals)
		if err != nil {
			return nil, err
		}
		out := ast.NewApp(e.Span, fn, arg)
		out.Ty = ty
		return out, nil

	case ast.ArithData:
		left, err := b.specializeExpr(data.Left, sub, locals)
		if err != nil {
			return nil, err
		}
		right, err := b.specializeExpr(data.Right, sub, locals)
		if err != nil {
			return nil, err
		}
		out := ast.NewArith(e.Span, data.Op, left, right)
		out.Ty = ty
		return out, nil

	case ast.LetData:
		bound, err := b.specializeExpr(data.Bound, sub, locals)
		if err != nil {
			return nil, err
		}
		body, err := b.specializeExpr(data.Body, sub, withLocal(locals, data.Name))
		if err != nil {
			return nil, err
		}
		out := ast.NewLet(e.Span, data.Name, bound, body)
		out.Ty = ty
		return out, nil

	case ast.CaseData:
		return b.specializeCase(e, data, sub, locals, ty)
	}
	return nil, fmt.Errorf("mono: bug: unhandled expression kind %s", e.Kind)
}

func (b *builder) specializeCase(e *ast.Expr, data ast.CaseData, sub types.Subst, locals map[string]bool, ty *types.Type) (*ast.Expr, error) {
	scrut, err := b.specializeExpr(data.Scrut, sub, locals)
	if err != nil {
		return nil, err
	}
	branches := make([]ast.Branch, 0, len(data.Branches))
	for i := range data.Branches {
		br := data.Branches[i]
		pat := br.Pat
		inner := locals
		switch pat.Kind {
		case ast.PatVar:
			inner = withLocal(inner, pat.Name)
		case ast.PatCon:
			spec, err := b.registerPatternCon(pat.Name, scrut.Ty)
			if err != nil {
				return nil, err
			}
			pat.Name = spec
			pat.Vars = append([]string(nil), pat.Vars...)
			for _, v := range pat.Vars {
				if v != "_" {
					inner = withLocal(inner, v)
				}
			}
		}
		body, err := b.specializeExpr(br.Body, sub, inner)
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.Branch{Pat: pat, Body: body, Span: br.Span})
	}
	out := ast.NewCase(e.Span, scrut, branches)
	out.Ty = ty
	return out, nil
}

func withLocal(locals map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(locals)+1)
	for k := range locals {
		next[k] = true
	}
	next[name] = true
	return next
}
