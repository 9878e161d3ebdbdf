package ast

import (
	"fern/internal/source"
	"fern/internal/types"
)

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprLit represents an integer literal.
	ExprLit ExprKind = iota
	// ExprId represents an identifier reference.
	ExprId
	// ExprCon represents a data-constructor reference.
	ExprCon
	// ExprLam represents a single-parameter lambda abstraction; the parser
	// desugars multi-parameter lambdas into nested ones.
	ExprLam
	// ExprApp represents the application of a function to one argument.
	ExprApp
	// ExprArith represents integer addition or subtraction.
	ExprArith
	// ExprLet represents a non-recursive let with a single binding.
	ExprLet
	// ExprCase represents a case expression over ordered branches.
	ExprCase
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Lit"
	case ExprId:
		return "Id"
	case ExprCon:
		return "Con"
	case ExprLam:
		return "Lam"
	case ExprApp:
		return "App"
	case ExprArith:
		return "Arith"
	case ExprLet:
		return "Let"
	case ExprCase:
		return "Case"
	default:
		return "Unknown"
	}
}

// Expr represents an expression node. Ty is nil until the type checker has
// annotated the tree; every later stage may rely on it being set.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Ty   *types.Type
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LitData holds data for ExprLit.
type LitData struct {
	Value int64
}

func (LitData) exprData() {}

// IdData holds data for ExprId.
type IdData struct {
	Name string
}

func (IdData) exprData() {}

// ConData holds data for ExprCon.
type ConData struct {
	Name string
}

func (ConData) exprData() {}

// LamData holds data for ExprLam.
type LamData struct {
	Param string
	Body  *Expr
}

func (LamData) exprData() {}

// AppData holds data for ExprApp.
type AppData struct {
	Fn  *Expr
	Arg *Expr
}

func (AppData) exprData() {}

// ArithOp selects the arithmetic operation of an ExprArith node.
type ArithOp uint8

const (
	OpAdd ArithOp = iota
	OpSub
)

func (op ArithOp) String() string {
	if op == OpAdd {
		return "+"
	}
	return "-"
}

// ArithData holds data for ExprArith.
type ArithData struct {
	Op    ArithOp
	Left  *Expr
	Right *Expr
}

func (ArithData) exprData() {}

// LetData holds data for ExprLet.
type LetData struct {
	Name  string
	Bound *Expr
	Body  *Expr
}

func (LetData) exprData() {}

// CaseData holds data for ExprCase.
type CaseData struct {
	Scrut    *Expr
	Branches []Branch
}

func (CaseData) exprData() {}

// Branch is one arm of a case expression.
type Branch struct {
	Pat  Pattern
	Body *Expr
	Span source.Span
}

// Convenience constructors used by the parser and the tree-rewriting stages.

func NewLit(span source.Span, value int64) *Expr {
	return &Expr{Kind: ExprLit, Span: span, Data: LitData{Value: value}}
}

func NewId(span source.Span, name string) *Expr {
	return &Expr{Kind: ExprId, Span: span, Data: IdData{Name: name}}
}

func NewCon(span source.Span, name string) *Expr {
	return &Expr{Kind: ExprCon, Span: span, Data: ConData{Name: name}}
}

func NewLam(span source.Span, param string, body *Expr) *Expr {
	return &Expr{Kind: ExprLam, Span: span, Data: LamData{Param: param, Body: body}}
}

func NewApp(span source.Span, fn, arg *Expr) *Expr {
	return &Expr{Kind: ExprApp, Span: span, Data: AppData{Fn: fn, Arg: arg}}
}

func NewArith(span source.Span, op ArithOp, left, right *Expr) *Expr {
	return &Expr{Kind: ExprArith, Span: span, Data: ArithData{Op: op, Left: left, Right: right}}
}

func NewLet(span source.Span, name string, bound, body *Expr) *Expr {
	return &Expr{Kind: ExprLet, Span: span, Data: LetData{Name: name, Bound: bound, Body: body}}
}

func NewCase(span source.Span, scrut *Expr, branches []Branch) *Expr {
	return &Expr{Kind: ExprCase, Span: span, Data: CaseData{Scrut: scrut, Branches: branches}}
}
