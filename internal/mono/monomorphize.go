// Package mono specializes every reachable polymorphic binding and
// constructor at the concrete types it is used with, starting from main.
// Specializations are memoized by (name, concrete type), which both avoids
// duplicate copies and guarantees termination on recursive and mutually
// recursive bindings. Failures here are internal invariant violations, not
// user errors: the type checker has already accepted the program.
package mono

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/types"
)

// entryState is the lifecycle of one output entry. An entry is created
// marked, transitions to done exactly once, and is never revisited.
type entryState uint8

const (
	stateMarked entryState = iota
	stateDone
)

type entry struct {
	state entryState
	bind  *ast.Bind
}

// builder owns the output map for one monomorphization run.
type builder struct {
	prog *ast.Program

	out   map[string]*entry
	order []string

	datas     map[string]*dataInst
	dataOrder []string
}

// dataInst records one concrete instantiation of a data declaration,
// together with the constructors observed at that instantiation.
type dataInst struct {
	decl      *ast.Data
	ty        *types.Type
	seen      map[string]bool
	consOrder []string
}

// Run monomorphizes prog, returning a program whose bindings and data
// declarations are all concrete. The input program must be type checked and
// lambda lifted.
func Run(prog *ast.Program) (*ast.Program, error) {
	b := &builder{
		prog:  prog,
		out:   make(map[string]*entry),
		datas: make(map[string]*dataInst),
	}
	main, ok := prog.Bind("main")
	if !ok {
		return nil, fmt.Errorf("mono: bug: program has no main binding")
	}
	if _, err := b.ensure("main", main.Ty); err != nil {
		return nil, err
	}

	out := &ast.Program{}
	datas, err := b.synthesizeDatas()
	if err != nil {
		return nil, err
	}
	out.Datas = datas
	for _, name := range b.order {
		out.Binds = append(out.Binds, b.out[name].bind)
	}
	return out, nil
}

// ensure returns the specialized name of the binding instantiated at the
// concrete type want, producing the specialization on first demand. A marked
// or completed entry short-circuits, which is what breaks recursion cycles.
func (b *builder) ensure(name string, want *types.Type) (string, error) {
	bind, ok := b.prog.Bind(name)
	if !ok {
		return "", fmt.Errorf("mono: bug: reference to unknown binding %s", name)
	}
	sub := make(types.Subst)
	if err := mapTypes(sub, bind.Ty, want); err != nil {
		return "", fmt.Errorf("mono: bug: %s declared %s, instantiated at %s: %w", name, bind.Ty, want, err)
	}

	spec := name
	if name != "main" {
		spec = name + "_" + types.Suffix(want)
	}
	if _, exists := b.out[spec]; exists {
		return spec, nil
	}
	b.out[spec] = &entry{state: stateMarked}

	locals := make(map[string]bool, len(bind.Params))
	params := make([]string, len(bind.Params))
	for i, p := range bind.Params {
		params[i] = p
		locals[p] = true
	}
	body, err := b.specializeExpr(bind.Body, sub, locals)
	if err != nil {
		return "", err
	}
	if err := b.complete(spec, &ast.Bind{
		Name:   spec,
		Params: params,
		Body:   body,
		Ty:     want,
		Span:   bind.Span,
	}); err != nil {
		return "", err
	}
	return spec, nil
}

// complete transitions a marked entry to done. Completing an entry twice is
// a programming invariant violation and fatal.
func (b *builder) complete(spec string, bind *ast.Bind) error {
	e, ok := b.out[spec]
	if !ok {
		return fmt.Errorf("mono: bug: completing %s without marking it", spec)
	}
	if e.state == stateDone {
		return fmt.Errorf("mono: bug: specialization %s completed twice", spec)
	}
	e.state = stateDone
	e.bind = bind
	b.order = append(b.order, spec)
	return nil
}

// mapTypes structurally matches a declared polymorphic type against the
// concrete type it is instantiated at, accumulating the variable bindings.
// Any shape disagreement means an earlier stage broke its contract.
func mapTypes(sub types.Subst, decl, want *types.Type) error {
	switch decl.Kind {
	case types.Var:
		if prev, ok := sub[decl.Name]; ok {
			if !types.Equal(prev, want) {
				return fmt.Errorf("type variable %s bound to both %s and %s", decl.Name, prev, want)
			}
			return nil
		}
		sub[decl.Name] = want
		return nil
	case types.Mono:
		if want.Kind != types.Mono || want.Name != decl.Name {
			return fmt.Errorf("cannot match %s against %s", decl, want)
		}
		return nil
	case types.Fn:
		if want.Kind != types.Fn {
			return fmt.Errorf("cannot match %s against %s", decl, want)
		}
		if err := mapTypes(sub, decl.Dom, want.Dom); err != nil {
			return err
		}
		return mapTypes(sub, decl.Cod, want.Cod)
	case types.Data:
		if want.Kind != types.Data || want.Name != decl.Name || len(want.Args) != len(decl.Args) {
			return fmt.Errorf("cannot match %s against %s", decl, want)
		}
		for i := range decl.Args {
			if err := mapTypes(sub, decl.Args[i], want.Args[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot match %s against %s", decl, want)
}
