package lift

import (
	"fern/internal/ast"
)

// annotateBind runs the free-variable pass over one binding. Every node is
// annotated with the identifiers it references but does not bind, relative
// to the binding's parameters and the top-level names.
func (l *lifter) annotateBind(b *ast.Bind) {
	bound := make(map[string]bool, len(b.Params)+len(l.globals))
	for g := range l.globals {
		bound[g] = true
	}
	for _, p := range b.Params {
		bound[p] = true
	}
	l.annotate(b.Body, bound)
}

// annotate computes the free variables of e given the enclosing bound set,
// stores the result in l.free, and returns it. Order is first occurrence,
// left to right.
func (l *lifter) annotate(e *ast.Expr, bound map[string]bool) []freeVar {
	fvs := freeVarsIn(e, bound, l.free)
	return fvs
}

// freeVarsIn is the underlying computation, shared with the hoisting pass,
// which recomputes free variables after renaming. When memo is non-nil every
// visited node is annotated.
func freeVarsIn(e *ast.Expr, bound map[string]bool, memo map[*ast.Expr][]freeVar) []freeVar {
	var out []freeVar
	seen := make(map[string]bool)
	add := func(fvs []freeVar) {
		for _, fv := range fvs {
			if !seen[fv.Name] {
				seen[fv.Name] = true
				out = append(out, fv)
			}
		}
	}

	switch data := e.Data.(type) {
	case ast.LitData, ast.ConData:
	case ast.IdData:
		if !bound[data.Name] {
			seen[data.Name] = true
			out = append(out, freeVar{Name: data.Name, Ty: e.Ty})
		}
	case ast.LamData:
		add(freeVarsIn(data.Body, extend(bound, data.Param), memo))
	case ast.AppData:
		add(freeVarsIn(data.Fn, bound, memo))
		add(freeVarsIn(data.Arg, bound, memo))
	case ast.ArithData:
		add(freeVarsIn(data.Left, bound, memo))
		add(freeVarsIn(data.Right, bound, memo))
	case ast.LetData:
		add(freeVarsIn(data.Bound, bound, memo))
		add(freeVarsIn(data.Body, extend(bound, data.Name), memo))
	case ast.CaseData:
		add(freeVarsIn(data.Scrut, bound, memo))
		for i := range data.Branches {
			br := &data.Branches[i]
			inner := bound
			for _, v := range br.Pat.Vars {
				inner = extend(inner, v)
			}
			if br.Pat.Kind == ast.PatVar {
				inner = extend(inner, br.Pat.Name)
			}
			add(freeVarsIn(br.Body, inner, memo))
		}
	}

	if memo != nil {
		memo[e] = out
	}
	return out
}

func extend(bound map[string]bool, name string) map[string]bool {
	if name == "_" || bound[name] {
		return bound
	}
	next := make(map[string]bool, len(bound)+1)
	for k := range bound {
		next[k] = true
	}
	next[name] = true
	return next
}
