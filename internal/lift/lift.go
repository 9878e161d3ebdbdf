// Package lift turns every lambda in a type-checked program into a
// top-level supercombinator. Four passes run in order: free-variable
// annotation, abstraction of anonymous lambdas, global renaming of binders,
// and hoisting of let-bound lambdas. The result contains no lambda
// expressions; every function is a top-level binding whose body references
// only its own parameters, enclosing let/case binders, and other top-level
// names.
package lift

import (
	"fern/internal/ast"
	"fern/internal/types"
)

// lifter threads the fresh-name counters and the accumulated top-level
// bindings through one lifting run.
type lifter struct {
	prog *ast.Program

	// free holds the free-variable annotation computed by the first pass,
	// relative to each node's enclosing bound set.
	free map[*ast.Expr][]freeVar

	// globals tracks top-level names, including bindings hoisted so far.
	globals map[string]bool

	// used tracks every name in play; renaming keeps a binder's spelling
	// when it is still unique and suffixes it otherwise.
	used    map[string]bool
	nameCtr int
	lamCtr  int

	hoisted []*ast.Bind
}

// freeVar is one free identifier of a subexpression, with the type observed
// at its reference site.
type freeVar struct {
	Name string
	Ty   *types.Type
}

// Lift returns the lifted form of prog. The input tree is left intact so
// callers can still inspect or dump the checked program afterwards. The
// pass is total: it cannot fail on type-checked input.
func Lift(prog *ast.Program) *ast.Program {
	prog = ast.CloneProgram(prog)
	l := &lifter{
		prog:    prog,
		free:    make(map[*ast.Expr][]freeVar),
		globals: make(map[string]bool, len(prog.Binds)),
		used:    make(map[string]bool),
	}
	for _, b := range prog.Binds {
		l.globals[b.Name] = true
		l.used[b.Name] = true
	}

	// A top-level binding whose body is directly a lambda absorbs the
	// lambda's parameters instead of producing a spurious supercombinator.
	for _, b := range prog.Binds {
		absorb(b)
	}
	for _, b := range prog.Binds {
		l.annotateBind(b)
	}
	for _, b := range prog.Binds {
		b.Body = l.abstract(b.Body)
	}
	for _, b := range prog.Binds {
		l.renameBind(b)
	}
	for _, b := range prog.Binds {
		b.Body = l.hoistExpr(b.Body)
	}
	prog.Binds = append(prog.Binds, l.hoisted...)
	return prog
}

// absorb folds a leading lambda chain into the binding's parameter list.
func absorb(b *ast.Bind) {
	for b.Body.Kind == ast.ExprLam {
		lam := b.Body.Data.(ast.LamData)
		b.Params = append(b.Params, lam.Param)
		b.Body = lam.Body
	}
}

// freshLamName picks the next lamN name that no top-level binding claims.
// The renaming pass registers it as used when it reaches the introduced let
// binder, keeping generated and user names unique together.
func (l *lifter) freshLamName() string {
	for {
		name := lamName(l.lamCtr)
		l.lamCtr++
		if !l.used[name] {
			return name
		}
	}
}
