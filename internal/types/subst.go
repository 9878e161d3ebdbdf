package types

// Subst is a finite mapping from type-variable names to types.
type Subst map[string]*Type

// Apply rewrites every variable of t that has an entry in s. Unmapped
// variables stay as they are; the input type is never mutated.
func (s Subst) Apply(t *Type) *Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch t.Kind {
	case Mono:
		return t
	case Var:
		if repl, ok := s[t.Name]; ok {
			return repl
		}
		return t
	case Fn:
		dom := s.Apply(t.Dom)
		cod := s.Apply(t.Cod)
		if dom == t.Dom && cod == t.Cod {
			return t
		}
		return NewFn(dom, cod)
	case Data:
		changed := false
		args := make([]*Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return NewData(t.Name, args...)
	}
	return t
}

// Compose combines s1 followed by s2 into one substitution: s1 is applied to
// the range of s2, then the mappings are unioned with s1 winning on
// overlapping keys.
func Compose(s1, s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for v, t := range s2 {
		out[v] = s1.Apply(t)
	}
	for v, t := range s1 {
		out[v] = t
	}
	return out
}
