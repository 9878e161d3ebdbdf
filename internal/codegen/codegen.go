// Package codegen translates a monomorphic program into ir instructions.
// Any failure here signals an upstream invariant violation, not a user
// error: by this point the program is type checked, lifted, and concrete.
package codegen

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/ir"
	"fern/internal/types"
)

// funcInfo is the arity and type metadata of one callable global. The table
// is read-only after Generate builds it.
type funcInfo struct {
	arity  int
	params []*types.Type
	ret    *types.Type
}

// Generator owns the state of one code-generation pass.
type Generator struct {
	prog  *ast.Program
	funcs map[string]funcInfo
}

// Generate compiles prog into an ir module, one function definition per
// top-level binding, in program order.
func Generate(prog *ast.Program) (*ir.Module, error) {
	g := &Generator{
		prog:  prog,
		funcs: make(map[string]funcInfo),
	}
	for _, b := range prog.Binds {
		info, err := bindInfo(b)
		if err != nil {
			return nil, err
		}
		g.funcs[b.Name] = info
	}
	// Constructors call into runtime-provided allocators and are callable
	// globals like any binding.
	for _, d := range prog.Datas {
		for _, c := range d.Cons {
			params, ret := splitFnType(c.Ty)
			g.funcs[c.Name] = funcInfo{arity: len(params), params: params, ret: ret}
		}
	}

	mod := &ir.Module{Funcs: make([]*ir.Func, 0, len(prog.Binds))}
	for _, b := range prog.Binds {
		f, err := g.genFunc(b)
		if err != nil {
			return nil, err
		}
		mod.Funcs = append(mod.Funcs, f)
	}
	return mod, nil
}

func bindInfo(b *ast.Bind) (funcInfo, error) {
	params := make([]*types.Type, 0, len(b.Params))
	ty := b.Ty
	for range b.Params {
		if ty == nil || ty.Kind != types.Fn {
			return funcInfo{}, fmt.Errorf("codegen: bug: %s has %d parameters but type %s", b.Name, len(b.Params), b.Ty)
		}
		params = append(params, ty.Dom)
		ty = ty.Cod
	}
	return funcInfo{arity: len(b.Params), params: params, ret: ty}, nil
}

// genFunc compiles one binding into a function definition. The register and
// label counters restart at zero for every function.
func (g *Generator) genFunc(b *ast.Bind) (*ir.Func, error) {
	info := g.funcs[b.Name]
	fe := &funcEmitter{
		g:      g,
		locals: make(map[string]ir.Value, len(b.Params)),
	}
	params := make([]ir.Param, len(b.Params))
	for i, p := range b.Params {
		params[i] = ir.Param{Name: p, Ty: tyStr(info.params[i])}
		fe.locals[p] = ir.Local(p)
	}

	val, err := fe.genExpr(b.Body)
	if err != nil {
		return nil, err
	}

	retTy := tyStr(info.ret)
	if b.Name == "main" {
		dst := fe.freshReg()
		fe.emit(ir.Instr{Kind: ir.InstrCall, Call: ir.CallInstr{
			Dst:    dst,
			Ret:    "i32",
			Sig:    "i32 (ptr, ...)",
			Callee: ir.Global("printf"),
			Args: []ir.Arg{
				{Ty: "ptr", Val: ir.Global(ir.FmtGlobal)},
				{Ty: "i64", Val: val},
			},
		}})
		fe.emit(ir.Instr{Kind: ir.InstrRet, Ret: ir.RetInstr{Ty: "i64", Val: ir.Imm(0)}})
		retTy = "i64"
	} else {
		fe.emit(ir.Instr{Kind: ir.InstrRet, Ret: ir.RetInstr{Ty: retTy, Val: val}})
	}

	return &ir.Func{Name: b.Name, Ret: retTy, Params: params, Body: fe.body}, nil
}

// funcEmitter compiles one function body, appending instructions as a side
// effect of value translation.
type funcEmitter struct {
	g      *Generator
	body   []ir.Instr
	regs   int
	labels int
	locals map[string]ir.Value
}

func (fe *funcEmitter) emit(in ir.Instr) {
	fe.body = append(fe.body, in)
}

func (fe *funcEmitter) freshReg() string {
	r := fmt.Sprintf("r%d", fe.regs)
	fe.regs++
	return r
}

func (fe *funcEmitter) freshLabel() string {
	l := fmt.Sprintf("l%d", fe.labels)
	fe.labels++
	return l
}

// tyStr maps a source type to its IR value type. Integers are i64, data
// values and function values are pointers.
func tyStr(t *types.Type) string {
	if t == nil {
		return "i64"
	}
	switch t.Kind {
	case types.Data, types.Fn:
		return "ptr"
	default:
		return "i64"
	}
}

func splitFnType(t *types.Type) ([]*types.Type, *types.Type) {
	var params []*types.Type
	for t != nil && t.Kind == types.Fn {
		params = append(params, t.Dom)
		t = t.Cod
	}
	return params, t
}
