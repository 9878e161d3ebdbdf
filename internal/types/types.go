package types

import (
	"strings"
)

// Kind discriminates the type variants.
type Kind uint8

const (
	// Mono is a named monomorphic base type, e.g. Int.
	Mono Kind = iota
	// Var is a named polymorphic type variable.
	Var
	// Fn is a function type with domain and codomain.
	Fn
	// Data is a data-type constructor application: name plus ordered
	// type arguments.
	Data
)

// Type is a closed sum over the four variants. Name carries the base-type,
// variable, or data-type name depending on Kind; Dom/Cod are set for Fn and
// Args for Data. Types are immutable once built; operations return fresh
// values.
type Type struct {
	Kind Kind
	Name string
	Dom  *Type
	Cod  *Type
	Args []*Type
}

// IntName is the base type the surface language's literals and arithmetic
// are fixed to.
const IntName = "Int"

func NewMono(name string) *Type {
	return &Type{Kind: Mono, Name: name}
}

func NewVar(name string) *Type {
	return &Type{Kind: Var, Name: name}
}

func NewFn(dom, cod *Type) *Type {
	return &Type{Kind: Fn, Dom: dom, Cod: cod}
}

func NewData(name string, args ...*Type) *Type {
	return &Type{Kind: Data, Name: name, Args: args}
}

// Int returns the integer base type.
func Int() *Type {
	return NewMono(IntName)
}

// Equal reports structural equality: identical shape and recursively equal
// components.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Mono, Var:
		return a.Name == b.Name
	case Fn:
		return Equal(a.Dom, b.Dom) && Equal(a.Cod, b.Cod)
	case Data:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// LooseEqual is the signature-compatibility equality: any two variables are
// considered equal, everything else compares structurally. Used to check a
// declared top-level signature against the inferred type, where the concrete
// variable names are inference artifacts.
func LooseEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == Var && b.Kind == Var {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Mono:
		return a.Name == b.Name
	case Fn:
		return LooseEqual(a.Dom, b.Dom) && LooseEqual(a.Cod, b.Cod)
	case Data:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !LooseEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MoreSpecific reports whether a is at least as specific as b. A variable on
// the right accepts anything; a variable on the left matches only a variable
// on the right. Compound types compare componentwise.
func MoreSpecific(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if b.Kind == Var {
		return true
	}
	if a.Kind == Var {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Mono:
		return a.Name == b.Name
	case Fn:
		return MoreSpecific(a.Dom, b.Dom) && MoreSpecific(a.Cod, b.Cod)
	case Data:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !MoreSpecific(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsConcrete reports whether the type contains no variables.
func IsConcrete(t *Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case Mono:
		return true
	case Var:
		return false
	case Fn:
		return IsConcrete(t.Dom) && IsConcrete(t.Cod)
	case Data:
		for _, a := range t.Args {
			if !IsConcrete(a) {
				return false
			}
		}
		return true
	}
	return false
}

// FreeVars returns the variable names of t in first-occurrence order,
// without duplicates.
func FreeVars(t *Type) []string {
	var out []string
	seen := make(map[string]bool)
	collectFreeVars(t, seen, &out)
	return out
}

func collectFreeVars(t *Type, seen map[string]bool, out *[]string) {
	if t == nil {
		return
	}
	switch t.Kind {
	case Mono:
	case Var:
		if !seen[t.Name] {
			seen[t.Name] = true
			*out = append(*out, t.Name)
		}
	case Fn:
		collectFreeVars(t.Dom, seen, out)
		collectFreeVars(t.Cod, seen, out)
	case Data:
		for _, a := range t.Args {
			collectFreeVars(a, seen, out)
		}
	}
}

// String renders the type with right-associated arrows and parenthesized
// compound arguments: "Int", "a", "Int -> a -> Int", "List (List Int)".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	writeType(&sb, t, false)
	return sb.String()
}

func writeType(sb *strings.Builder, t *Type, atom bool) {
	switch t.Kind {
	case Mono, Var:
		sb.WriteString(t.Name)
	case Fn:
		if atom {
			sb.WriteByte('(')
		}
		writeType(sb, t.Dom, t.Dom.Kind == Fn)
		sb.WriteString(" -> ")
		writeType(sb, t.Cod, false)
		if atom {
			sb.WriteByte(')')
		}
	case Data:
		if atom && len(t.Args) > 0 {
			sb.WriteByte('(')
		}
		sb.WriteString(t.Name)
		for _, a := range t.Args {
			sb.WriteByte(' ')
			writeType(sb, a, true)
		}
		if atom && len(t.Args) > 0 {
			sb.WriteByte(')')
		}
	}
}
