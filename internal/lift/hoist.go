package lift

import (
	"fern/internal/ast"
	"fern/internal/types"
)

// hoistExpr floats every let-bound lambda out to the top level, innermost
// first. The hoisted binding's parameter list is extended with the lambda's
// remaining free variables, and every reference to the binding is rewritten
// to pass them explicitly. Non-lambda lets stay where they are.
func (l *lifter) hoistExpr(e *ast.Expr) *ast.Expr {
	switch data := e.Data.(type) {
	case ast.LitData, ast.IdData, ast.ConData:
		return e

	case ast.LamData:
		data.Body = l.hoistExpr(data.Body)
		e.Data = data
		return e

	case ast.AppData:
		data.Fn = l.hoistExpr(data.Fn)
		data.Arg = l.hoistExpr(data.Arg)
		e.Data = data
		return e

	case ast.ArithData:
		data.Left = l.hoistExpr(data.Left)
		data.Right = l.hoistExpr(data.Right)
		e.Data = data
		return e

	case ast.LetData:
		data.Bound = l.hoistExpr(data.Bound)
		data.Body = l.hoistExpr(data.Body)
		if data.Bound.Kind == ast.ExprLam {
			return l.hoistLet(e, data)
		}
		e.Data = data
		return e

	case ast.CaseData:
		data.Scrut = l.hoistExpr(data.Scrut)
		for i := range data.Branches {
			data.Branches[i].Body = l.hoistExpr(data.Branches[i].Body)
		}
		e.Data = data
		return e
	}
	return e
}

// hoistLet lifts one let-bound lambda into a top-level binding and returns
// the let body with references to the binding rewritten.
func (l *lifter) hoistLet(e *ast.Expr, data ast.LetData) *ast.Expr {
	fvs := freeVarsIn(data.Bound, l.globals, nil)
	params, body := splitChain(data.Bound)

	newParams := make([]string, 0, len(fvs)+len(params))
	for _, fv := range fvs {
		newParams = append(newParams, fv.Name)
	}
	newParams = append(newParams, params...)

	ty := data.Bound.Ty
	if ty != nil {
		for i := len(fvs) - 1; i >= 0; i-- {
			ty = types.NewFn(fvs[i].Ty, ty)
		}
	}

	l.hoisted = append(l.hoisted, &ast.Bind{
		Name:   data.Name,
		Params: newParams,
		Body:   body,
		Ty:     ty,
		Span:   e.Span,
	})
	l.globals[data.Name] = true

	return substCalls(data.Body, data.Name, fvs)
}

// splitChain unwinds a lambda chain into its parameter list and innermost
// body.
func splitChain(e *ast.Expr) ([]string, *ast.Expr) {
	var params []string
	for e.Kind == ast.ExprLam {
		lam := e.Data.(ast.LamData)
		params = append(params, lam.Param)
		e = lam.Body
	}
	return params, e
}

// substCalls rewrites every reference to name into an application passing
// the abstracted free variables. Renaming has already made binders unique,
// so no scope tracking is needed.
func substCalls(e *ast.Expr, name string, fvs []freeVar) *ast.Expr {
	switch data := e.Data.(type) {
	case ast.IdData:
		if data.Name != name || len(fvs) == 0 {
			return e
		}
		refTy := e.Ty
		if refTy != nil {
			for i := len(fvs) - 1; i >= 0; i-- {
				refTy = types.NewFn(fvs[i].Ty, refTy)
			}
		}
		e.Ty = refTy
		app := e
		cur := refTy
		for _, fv := range fvs {
			arg := ast.NewId(e.Span, fv.Name)
			arg.Ty = fv.Ty
			next := ast.NewApp(e.Span, app, arg)
			if cur != nil && cur.Kind == types.Fn {
				cur = cur.Cod
				next.Ty = cur
			}
			app = next
		}
		return app

	case ast.LamData:
		data.Body = substCalls(data.Body, name, fvs)
		e.Data = data
		return e

	case ast.AppData:
		data.Fn = substCalls(data.Fn, name, fvs)
		data.Arg = substCalls(data.Arg, name, fvs)
		e.Data = data
		return e

	case ast.ArithData:
		data.Left = substCalls(data.Left, name, fvs)
		data.Right = substCalls(data.Right, name, fvs)
		e.Data = data
		return e

	case ast.LetData:
		data.Bound = substCalls(data.Bound, name, fvs)
		data.Body = substCalls(data.Body, name, fvs)
		e.Data = data
		return e

	case ast.CaseData:
		data.Scrut = substCalls(data.Scrut, name, fvs)
		for i := range data.Branches {
			data.Branches[i].Body = substCalls(data.Branches[i].Body, name, fvs)
		}
		e.Data = data
		return e
	}
	return e
}
