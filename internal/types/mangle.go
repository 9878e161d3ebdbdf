package types

import (
	"strings"
)

// Suffix derives the name-mangling suffix used for monomorphic instances.
// Function types join their domain and codomain suffixes with underscores,
// data types join their name and argument suffixes with dots:
//
//	Int                  -> "Int"
//	Int -> Int           -> "Int_Int"
//	List Int             -> "List.Int"
//	List Int -> Int      -> "List.Int_Int"
//
// Variables render as their name; callers mangle concrete types only.
func Suffix(t *Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case Mono, Var:
		return t.Name
	case Fn:
		return Suffix(t.Dom) + "_" + Suffix(t.Cod)
	case Data:
		parts := make([]string, 0, len(t.Args)+1)
		parts = append(parts, t.Name)
		for _, a := range t.Args {
			parts = append(parts, Suffix(a))
		}
		return strings.Join(parts, ".")
	}
	return ""
}
