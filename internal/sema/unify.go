package sema

import (
	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/types"
)

// unify computes the most general substitution making a and b identical.
// It is symmetric up to substitution equivalence: swapping the arguments
// changes which variable a var-var pair binds, never success or failure.
func unify(a, b *types.Type) (types.Subst, error) {
	switch {
	case a.Kind == types.Var:
		return bindVar(a.Name, b)
	case b.Kind == types.Var:
		return bindVar(b.Name, a)
	case a.Kind == types.Mono && b.Kind == types.Mono:
		if a.Name != b.Name {
			return nil, errCannotUnify(a, b)
		}
		return nil, nil
	case a.Kind == types.Fn && b.Kind == types.Fn:
		s1, err := unify(a.Dom, b.Dom)
		if err != nil {
			return nil, err
		}
		s2, err := unify(s1.Apply(a.Cod), s1.Apply(b.Cod))
		if err != nil {
			return nil, err
		}
		return types.Compose(s2, s1), nil
	case a.Kind == types.Data && b.Kind == types.Data:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, errCannotUnify(a, b)
		}
		var s types.Subst
		for i := range a.Args {
			si, err := unify(s.Apply(a.Args[i]), s.Apply(b.Args[i]))
			if err != nil {
				return nil, err
			}
			s = types.Compose(si, s)
		}
		return s, nil
	}
	return nil, errCannotUnify(a, b)
}

func bindVar(name string, t *types.Type) (types.Subst, error) {
	if t.Kind == types.Var && t.Name == name {
		return nil, nil
	}
	if occursIn(name, t) {
		return nil, errAt(diag.SemaOccursCheck, source.Span{},
			"occurs check failed: %s occurs in %s", name, t)
	}
	return types.Subst{name: t}, nil
}

func occursIn(name string, t *types.Type) bool {
	switch t.Kind {
	case types.Var:
		return t.Name == name
	case types.Fn:
		return occursIn(name, t.Dom) || occursIn(name, t.Cod)
	case types.Data:
		for _, a := range t.Args {
			if occursIn(name, a) {
				return true
			}
		}
	}
	return false
}

func errCannotUnify(a, b *types.Type) *semaError {
	return errAt(diag.SemaCannotUnify, source.Span{}, "cannot unify %s with %s", a, b)
}
