package lift

import (
	"fmt"

	"fern/internal/ast"
)

// renameBind rewrites every binding occurrence under b to a globally unique
// name, threading the counter left to right, outside in. A binder whose name
// has not been seen yet keeps its spelling, so an already-unique program
// comes out unchanged.
func (l *lifter) renameBind(b *ast.Bind) {
	scope := make(map[string]string, len(b.Params))
	for i, p := range b.Params {
		np := l.uniqueName(p)
		b.Params[i] = np
		scope[p] = np
	}
	l.renameExpr(b.Body, scope)
}

func (l *lifter) uniqueName(name string) string {
	if name == "_" {
		return name
	}
	if !l.used[name] {
		l.used[name] = true
		return name
	}
	for {
		cand := fmt.Sprintf("%s_%d", name, l.nameCtr)
		l.nameCtr++
		if !l.used[cand] {
			l.used[cand] = true
			return cand
		}
	}
}

func (l *lifter) renameExpr(e *ast.Expr, scope map[string]string) {
	switch data := e.Data.(type) {
	case ast.IdData:
		if np, ok := scope[data.Name]; ok {
			data.Name = np
			e.Data = data
		}

	case ast.LamData:
		np := l.uniqueName(data.Param)
		inner := extendScope(scope, data.Param, np)
		data.Param = np
		e.Data = data
		l.renameExpr(data.Body, inner)

	case ast.AppData:
		l.renameExpr(data.Fn, scope)
		l.renameExpr(data.Arg, scope)

	case ast.ArithData:
		l.renameExpr(data.Left, scope)
		l.renameExpr(data.Right, scope)

	case ast.LetData:
		np := l.uniqueName(data.Name)
		// The binding is non-recursive: the bound expression sees the
		// outer scope only.
		l.renameExpr(data.Bound, scope)
		inner := extendScope(scope, data.Name, np)
		data.Name = np
		e.Data = data
		l.renameExpr(data.Body, inner)

	case ast.CaseData:
		l.renameExpr(data.Scrut, scope)
		for i := range data.Branches {
			br := &data.Branches[i]
			inner := scope
			if br.Pat.Kind == ast.PatVar {
				np := l.uniqueName(br.Pat.Name)
				inner = extendScope(inner, br.Pat.Name, np)
				br.Pat.Name = np
			}
			for j, v := range br.Pat.Vars {
				if v == "_" {
					continue
				}
				np := l.uniqueName(v)
				inner = extendScope(inner, v, np)
				br.Pat.Vars[j] = np
			}
			l.renameExpr(br.Body, inner)
		}
		e.Data = data
	}
}

func extendScope(scope map[string]string, from, to string) map[string]string {
	next := make(map[string]string, len(scope)+1)
	for k, v := range scope {
		next[k] = v
	}
	next[from] = to
	return next
}
