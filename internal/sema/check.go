package sema

import (
	"errors"
	"fmt"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/types"
)

// Options configure a checking pass.
type Options struct {
	Reporter diag.Reporter
}

// Check type-checks prog and annotates every expression with its inferred
// type. Returns false if anything was reported. On success the body
// annotations of a polymorphic binding use the signature's own variable
// names, which is what specialization later maps against.
func Check(prog *ast.Program, opts Options) bool {
	c := &checker{
		prog:     prog,
		reporter: opts.Reporter,
		globals:  make(map[string]*types.Type),
		cons:     make(map[string]*types.Type),
		datas:    make(map[string]*ast.Data),
	}
	ok := c.buildScopes()
	if !c.validateDecls() {
		ok = false
	}
	if !ok {
		return false
	}
	for _, b := range prog.Binds {
		if err := c.checkBind(b); err != nil {
			c.reportErr(err)
			return false
		}
	}
	return true
}

func (c *checker) buildScopes() bool {
	ok := true
	conAt := make(map[string]source.Span)
	for _, d := range c.prog.Datas {
		c.datas[d.Name] = d
		for _, con := range d.Cons {
			if first, dup := conAt[con.Name]; dup {
				b := diag.ReportError(c.reporter, diag.SemaDuplicateConstructor, con.Span,
					fmt.Sprintf("constructor %s is declared twice", con.Name))
				b.WithNote(first, "first declared here").Emit()
				ok = false
				continue
			}
			conAt[con.Name] = con.Span
			c.cons[con.Name] = con.Ty
		}
	}
	for _, b := range c.prog.Binds {
		if b.Ty != nil {
			c.globals[b.Name] = b.Ty
		}
	}
	return ok
}

// validateDecls checks every declared type: data references must name a
// declared type at its declared arity, constructor fields may only use the
// data declaration's own parameters, and main must exist with a concrete
// signature.
func (c *checker) validateDecls() bool {
	ok := true
	for _, d := range c.prog.Datas {
		scope := make(map[string]bool, len(d.TyVars))
		for _, v := range d.TyVars {
			scope[v] = true
		}
		for _, con := range d.Cons {
			if !c.validateType(con.Ty, con.Span) {
				ok = false
			}
			for _, v := range types.FreeVars(con.Ty) {
				if !scope[v] {
					c.report(diag.SemaUnknownTypeName, con.Span,
						"type variable %s is not a parameter of %s", v, d.Name)
					ok = false
				}
			}
		}
	}
	for _, b := range c.prog.Binds {
		if b.Ty != nil && !c.validateType(b.Ty, b.Span) {
			ok = false
		}
	}
	main, found := c.prog.Bind("main")
	switch {
	case !found:
		c.report(diag.SemaMissingMain, source.Span{}, "program has no main binding")
		ok = false
	case !types.IsConcrete(main.Ty):
		c.report(diag.SemaSignatureMismatch, main.Span,
			"main must have a concrete type, got %s", main.Ty)
		ok = false
	}
	return ok
}

func (c *checker) validateType(t *types.Type, sp source.Span) bool {
	switch t.Kind {
	case types.Fn:
		okDom := c.validateType(t.Dom, sp)
		return c.validateType(t.Cod, sp) && okDom
	case types.Data:
		decl, known := c.datas[t.Name]
		if !known {
			c.report(diag.SemaUnknownTypeName, sp, "unknown type %s", t.Name)
			return false
		}
		if len(t.Args) != len(decl.TyVars) {
			c.report(diag.SemaConstructorArity, sp,
				"type %s expects %d arguments, got %d", t.Name, len(decl.TyVars), len(t.Args))
			return false
		}
		ok := true
		for _, a := range t.Args {
			if !c.validateType(a, sp) {
				ok = false
			}
		}
		return ok
	}
	return true
}

// checkBind infers the binding body with its parameters carrying the
// declared domain types, pins the leftover inference variables by unifying
// against the declared signature, and then requires the two types to agree
// up to variable renaming. Parameters beyond the signature's arrows fall
// back to fresh variables; the signature gate reports the mismatch.
func (c *checker) checkBind(b *ast.Bind) error {
	e := newEnv()
	paramTys := make([]*types.Type, len(b.Params))
	sig := b.Ty
	for i, p := range b.Params {
		var tv *types.Type
		if sig != nil && sig.Kind == types.Fn {
			tv = sig.Dom
			sig = sig.Cod
		} else {
			tv = c.freshVar()
		}
		paramTys[i] = tv
		e = e.extend(p, types.MonoScheme(tv))
	}
	s, bodyTy, err := c.infer(e, b.Body)
	if err != nil {
		return err
	}
	inferred := s.Apply(bodyTy)
	for i := len(paramTys) - 1; i >= 0; i-- {
		inferred = types.NewFn(s.Apply(paramTys[i]), inferred)
	}
	s2, err := unify(inferred, b.Ty)
	if err != nil {
		return errAt(diag.SemaSignatureMismatch, b.Span,
			"%s declares %s but its body has type %s", b.Name, b.Ty, inferred)
	}
	final := types.Compose(s2, s)
	pinned := final.Apply(inferred)
	if !types.LooseEqual(b.Ty, pinned) {
		return errAt(diag.SemaSignatureMismatch, b.Span,
			"%s declares %s but its body has type %s", b.Name, b.Ty, pinned)
	}
	annotate(b.Body, final)
	return nil
}

// annotate rewrites every provisional node type under the binding's final
// substitution.
func annotate(e *ast.Expr, s types.Subst) {
	if e == nil {
		return
	}
	if e.Ty != nil {
		e.Ty = s.Apply(e.Ty)
	}
	switch data := e.Data.(type) {
	case ast.LamData:
		annotate(data.Body, s)
	case ast.AppData:
		annotate(data.Fn, s)
		annotate(data.Arg, s)
	case ast.ArithData:
		annotate(data.Left, s)
		annotate(data.Right, s)
	case ast.LetData:
		annotate(data.Bound, s)
		annotate(data.Body, s)
	case ast.CaseData:
		annotate(data.Scrut, s)
		for i := range data.Branches {
			annotate(data.Branches[i].Body, s)
		}
	}
}

func (c *checker) report(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(c.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (c *checker) reportErr(err error) {
	var se *semaError
	if errors.As(err, &se) {
		diag.ReportError(c.reporter, se.code, se.span, se.msg).Emit()
		return
	}
	diag.ReportError(c.reporter, diag.SemaInfo, source.Span{}, err.Error()).Emit()
}
