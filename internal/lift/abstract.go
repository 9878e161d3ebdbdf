package lift

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/types"
)

// abstract rewrites every anonymous lambda into a let-bound closed lambda
// applied to its free variables, converting implicit capture into explicit
// parameter passing. Lambdas already named by a let binding keep their
// position; hoisting extends their parameter lists instead.
func (l *lifter) abstract(e *ast.Expr) *ast.Expr {
	switch data := e.Data.(type) {
	case ast.LitData, ast.IdData, ast.ConData:
		return e

	case ast.LamData:
		l.abstractChainBody(e)
		return l.wrapLambda(e)

	case ast.AppData:
		data.Fn = l.abstract(data.Fn)
		data.Arg = l.abstract(data.Arg)
		e.Data = data
		return e

	case ast.ArithData:
		data.Left = l.abstract(data.Left)
		data.Right = l.abstract(data.Right)
		e.Data = data
		return e

	case ast.LetData:
		if data.Bound.Kind == ast.ExprLam {
			l.abstractChainBody(data.Bound)
		} else {
			data.Bound = l.abstract(data.Bound)
		}
		data.Body = l.abstract(data.Body)
		e.Data = data
		return e

	case ast.CaseData:
		data.Scrut = l.abstract(data.Scrut)
		for i := range data.Branches {
			data.Branches[i].Body = l.abstract(data.Branches[i].Body)
		}
		e.Data = data
		return e
	}
	return e
}

// abstractChainBody descends through a lambda chain and abstracts inside its
// innermost body, leaving the chain itself untouched.
func (l *lifter) abstractChainBody(e *ast.Expr) {
	lam := e.Data.(ast.LamData)
	if lam.Body.Kind == ast.ExprLam {
		l.abstractChainBody(lam.Body)
		return
	}
	lam.Body = l.abstract(lam.Body)
	e.Data = lam
}

// wrapLambda turns an anonymous lambda into
//
//	let lamN = \fv1 .. \fvk -> <lambda> in lamN fv1 .. fvk
//
// using the free-variable annotation computed before any rewriting. The let
// is hoisted to the top level by the final pass.
func (l *lifter) wrapLambda(e *ast.Expr) *ast.Expr {
	fvs := l.free[e]
	name := l.freshLamName()

	inner := e
	for i := len(fvs) - 1; i >= 0; i-- {
		wrapped := ast.NewLam(e.Span, fvs[i].Name, inner)
		if inner.Ty != nil {
			wrapped.Ty = types.NewFn(fvs[i].Ty, inner.Ty)
		}
		inner = wrapped
	}

	ref := ast.NewId(e.Span, name)
	ref.Ty = inner.Ty
	app := ref
	for _, fv := range fvs {
		arg := ast.NewId(e.Span, fv.Name)
		arg.Ty = fv.Ty
		next := ast.NewApp(e.Span, app, arg)
		if app.Ty != nil && app.Ty.Kind == types.Fn {
			next.Ty = app.Ty.Cod
		}
		app = next
	}

	out := ast.NewLet(e.Span, name, inner, app)
	out.Ty = app.Ty
	return out
}

func lamName(n int) string {
	return fmt.Sprintf("lam%d", n)
}
