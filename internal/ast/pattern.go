package ast

import (
	"fern/internal/source"
)

// PatternKind enumerates case-branch pattern kinds.
type PatternKind uint8

const (
	// PatLit matches an integer literal.
	PatLit PatternKind = iota
	// PatWild matches anything and binds nothing.
	PatWild
	// PatVar matches anything and binds the scrutinee to a name.
	PatVar
	// PatCon matches a constructor and binds its fields to names.
	PatCon
)

func (k PatternKind) String() string {
	switch k {
	case PatLit:
		return "Lit"
	case PatWild:
		return "Wild"
	case PatVar:
		return "Var"
	case PatCon:
		return "Con"
	default:
		return "Unknown"
	}
}

// Pattern is a flat case-branch pattern. Payload fields are populated by
// kind: Value for PatLit, Name for PatVar and PatCon, Vars for PatCon field
// binders. Nested patterns are not part of the grammar.
type Pattern struct {
	Kind  PatternKind
	Span  source.Span
	Value int64
	Name  string
	Vars  []string
}

// IsCatchAll reports whether the pattern matches unconditionally.
func (p Pattern) IsCatchAll() bool {
	return p.Kind == PatWild || p.Kind == PatVar
}
