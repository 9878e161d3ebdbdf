package sema

import "fern/internal/types"

// env is the local-variable scope: names bound by binding parameters,
// lambdas, lets, and case patterns, each carrying a scheme. Extension copies
// the map, so callers can keep older envs across branch inference.
type env struct {
	vars map[string]types.Scheme
}

func newEnv() *env {
	return &env{vars: map[string]types.Scheme{}}
}

func (e *env) extend(name string, sc types.Scheme) *env {
	next := make(map[string]types.Scheme, len(e.vars)+1)
	for k, v := range e.vars {
		next[k] = v
	}
	next[name] = sc
	return &env{vars: next}
}

func (e *env) lookup(name string) (types.Scheme, bool) {
	sc, ok := e.vars[name]
	return sc, ok
}

// apply rewrites every scheme in the environment under s. Quantified
// variables are shadowed, not substituted.
func (e *env) apply(s types.Subst) *env {
	if len(s) == 0 {
		return e
	}
	next := make(map[string]types.Scheme, len(e.vars))
	for k, sc := range e.vars {
		next[k] = applyScheme(s, sc)
	}
	return &env{vars: next}
}

func applyScheme(s types.Subst, sc types.Scheme) types.Scheme {
	if len(sc.Vars) == 0 {
		return types.MonoScheme(s.Apply(sc.Ty))
	}
	masked := make(types.Subst, len(s))
	for k, v := range s {
		masked[k] = v
	}
	for _, v := range sc.Vars {
		delete(masked, v)
	}
	return types.Scheme{Vars: sc.Vars, Ty: masked.Apply(sc.Ty)}
}

// freeNames collects the type variables free in any scheme, the set
// generalization must not quantify over.
func (e *env) freeNames() map[string]bool {
	out := map[string]bool{}
	for _, sc := range e.vars {
		for _, v := range sc.FreeVars() {
			out[v] = true
		}
	}
	return out
}
