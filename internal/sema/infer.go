package sema

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/types"
)

// checker threads the fresh-variable counter and the global scopes through
// one program check. globals, cons, and datas are read-only once Check has
// built them; fresh is the only mutable field.
type checker struct {
	prog     *ast.Program
	reporter diag.Reporter
	globals  map[string]*types.Type
	cons     map[string]*types.Type
	datas    map[string]*ast.Data
	fresh    int
}

func (c *checker) freshVar() *types.Type {
	t := types.NewVar(fmt.Sprintf("t%d", c.fresh))
	c.fresh++
	return t
}

// instantiate replaces every variable of a closed top-level type with a
// fresh one, so separate uses never share constraints.
func (c *checker) instantiate(t *types.Type) *types.Type {
	sc := types.Scheme{Vars: types.FreeVars(t), Ty: t}
	return sc.Instantiate(c.freshVar)
}

// infer runs Algorithm W over ex. The returned type already has the returned
// substitution applied. Node annotations are provisional until annotate
// rewrites them under the binding's final substitution.
func (c *checker) infer(e *env, ex *ast.Expr) (types.Subst, *types.Type, error) {
	switch data := ex.Data.(type) {
	case ast.LitData:
		ex.Ty = types.Int()
		return nil, ex.Ty, nil

	case ast.IdData:
		if sc, ok := e.lookup(data.Name); ok {
			ex.Ty = sc.Instantiate(c.freshVar)
			return nil, ex.Ty, nil
		}
		if sig, ok := c.globals[data.Name]; ok {
			ex.Ty = c.instantiate(sig)
			return nil, ex.Ty, nil
		}
		return nil, nil, errAt(diag.SemaUnboundName, ex.Span, "unbound variable: %s", data.Name)

	case ast.ConData:
		conTy, ok := c.cons[data.Name]
		if !ok {
			return nil, nil, errAt(diag.SemaUnboundName, ex.Span, "unbound constructor: %s", data.Name)
		}
		ex.Ty = c.instantiate(conTy)
		return nil, ex.Ty, nil

	case ast.LamData:
		tv := c.freshVar()
		s, bodyTy, err := c.infer(e.extend(data.Param, types.MonoScheme(tv)), data.Body)
		if err != nil {
			return nil, nil, err
		}
		ex.Ty = types.NewFn(s.Apply(tv), bodyTy)
		return s, ex.Ty, nil

	case ast.AppData:
		s1, fnTy, err := c.infer(e, data.Fn)
		if err != nil {
			return nil, nil, err
		}
		s2, argTy, err := c.infer(e.apply(s1), data.Arg)
		if err != nil {
			return nil, nil, err
		}
		res := c.freshVar()
		s3, err := unify(s2.Apply(fnTy), types.NewFn(argTy, res))
		if err != nil {
			return nil, nil, withSpan(err, ex.Span)
		}
		ex.Ty = s3.Apply(res)
		return types.Compose(s3, types.Compose(s2, s1)), ex.Ty, nil

	case ast.ArithData:
		s1, lt, err := c.infer(e, data.Left)
		if err != nil {
			return nil, nil, err
		}
		s2, rt, err := c.infer(e.apply(s1), data.Right)
		if err != nil {
			return nil, nil, err
		}
		s3, err := unify(s2.Apply(lt), types.Int())
		if err != nil {
			return nil, nil, withSpan(err, data.Left.Span)
		}
		s4, err := unify(s3.Apply(rt), types.Int())
		if err != nil {
			return nil, nil, withSpan(err, data.Right.Span)
		}
		ex.Ty = types.Int()
		return types.Compose(s4, types.Compose(s3, types.Compose(s2, s1))), ex.Ty, nil

	case ast.LetData:
		s1, boundTy, err := c.infer(e, data.Bound)
		if err != nil {
			return nil, nil, err
		}
		e1 := e.apply(s1)
		sc := types.Generalize(boundTy, e1.freeNames())
		s2, bodyTy, err := c.infer(e1.extend(data.Name, sc), data.Body)
		if err != nil {
			return nil, nil, err
		}
		ex.Ty = bodyTy
		return types.Compose(s2, s1), ex.Ty, nil

	case ast.CaseData:
		return c.inferCase(e, ex, data)
	}
	panic(fmt.Sprintf("sema: unhandled expression kind %s", ex.Kind))
}

// inferCase checks each branch pattern against the scrutinee type, infers
// the branch bodies under the pattern bindings, and unifies the body types
// in branch order.
func (c *checker) inferCase(e *env, ex *ast.Expr, data ast.CaseData) (types.Subst, *types.Type, error) {
	acc, scrutTy, err := c.infer(e, data.Scrut)
	if err != nil {
		return nil, nil, err
	}
	var resTy *types.Type
	for i := range data.Branches {
		br := &data.Branches[i]
		bound, sPat, err := c.checkPattern(br.Pat, acc.Apply(scrutTy))
		if err != nil {
			return nil, nil, err
		}
		acc = types.Compose(sPat, acc)
		envB := e.apply(acc)
		for name, sc := range bound {
			envB = envB.extend(name, sc)
		}
		sB, bodyTy, err := c.infer(envB, br.Body)
		if err != nil {
			return nil, nil, err
		}
		acc = types.Compose(sB, acc)
		if resTy == nil {
			resTy = bodyTy
			continue
		}
		sU, err := unify(acc.Apply(resTy), acc.Apply(bodyTy))
		if err != nil {
			return nil, nil, errAt(diag.SemaCaseBranchType, br.Span,
				"case branches disagree: this branch has type %s, earlier branches %s",
				acc.Apply(bodyTy), acc.Apply(resTy))
		}
		acc = types.Compose(sU, acc)
		resTy = acc.Apply(resTy)
	}
	ex.Ty = acc.Apply(resTy)
	return acc, ex.Ty, nil
}
