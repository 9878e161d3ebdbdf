package types

// Scheme is a type quantified over a list of variables. A monomorphic entry
// has an empty Vars list.
type Scheme struct {
	Vars []string
	Ty   *Type
}

// MonoScheme wraps a type without quantifying anything.
func MonoScheme(t *Type) Scheme {
	return Scheme{Ty: t}
}

// Generalize quantifies t over its free variables that do not occur in the
// environment, in first-occurrence order.
func Generalize(t *Type, envFree map[string]bool) Scheme {
	var vars []string
	for _, v := range FreeVars(t) {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	return Scheme{Vars: vars, Ty: t}
}

// Instantiate replaces every quantified variable with a fresh one obtained
// from fresh, leaving free variables intact.
func (sc Scheme) Instantiate(fresh func() *Type) *Type {
	if len(sc.Vars) == 0 {
		return sc.Ty
	}
	s := make(Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		s[v] = fresh()
	}
	return s.Apply(sc.Ty)
}

// FreeVars returns the free variables of the scheme: those of the type minus
// the quantified ones.
func (sc Scheme) FreeVars() []string {
	if len(sc.Vars) == 0 {
		return FreeVars(sc.Ty)
	}
	bound := make(map[string]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	var out []string
	for _, v := range FreeVars(sc.Ty) {
		if !bound[v] {
			out = append(out, v)
		}
	}
	return out
}
