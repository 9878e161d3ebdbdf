package ast

import (
	"fern/internal/source"
	"fern/internal/types"
)

// Bind is a top-level binding: a declared signature, a parameter list, and a
// body expression. After lambda lifting every Bind is a supercombinator.
type Bind struct {
	Name   string
	Params []string
	Body   *Expr
	Ty     *types.Type
	Span   source.Span
}

// ConDef is one value constructor of a data declaration. Ty is the
// constructor's function type ending in the declared data type, e.g.
// Cons : a -> List a -> List a.
type ConDef struct {
	Name string
	Ty   *types.Type
	Span source.Span
}

// Data is a data-type declaration: a type constructor name, its type
// parameters, and its value constructors.
type Data struct {
	Name   string
	TyVars []string
	Cons   []ConDef
	Span   source.Span
}

// Program is an ordered collection of data declarations and top-level
// bindings from one source file.
type Program struct {
	Datas []*Data
	Binds []*Bind
}

// Bind returns the named top-level binding, if present.
func (p *Program) Bind(name string) (*Bind, bool) {
	for _, b := range p.Binds {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// ConOwner returns the data declaration defining the named constructor.
func (p *Program) ConOwner(name string) (*Data, *ConDef, bool) {
	for _, d := range p.Datas {
		for i := range d.Cons {
			if d.Cons[i].Name == name {
				return d, &d.Cons[i], true
			}
		}
	}
	return nil, nil, false
}
