package codegen

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/ir"
)

// genExpr materializes e into a value, emitting whatever instructions the
// computation needs.
func (fe *funcEmitter) genExpr(e *ast.Expr) (ir.Value, error) {
	switch data := e.Data.(type) {
	case ast.LitData:
		return ir.Imm(data.Value), nil

	case ast.IdData:
		return fe.genName(data.Name)

	case ast.ConData:
		return fe.genName(data.Name)

	case ast.ArithData:
		left, err := fe.genExpr(data.Left)
		if err != nil {
			return ir.Value{}, err
		}
		right, err := fe.genExpr(data.Right)
		if err != nil {
			return ir.Value{}, err
		}
		op := ir.OpAdd
		if data.Op == ast.OpSub {
			op = ir.OpSub
		}
		dst := fe.freshReg()
		fe.emit(ir.Instr{Kind: ir.InstrBin, Bin: ir.BinInstr{
			Op: op, Dst: dst, Ty: "i64", A: left, B: right,
		}})
		return ir.Reg(dst), nil

	case ast.AppData:
		return fe.genApp(e)

	case ast.CaseData:
		return fe.genCase(e, data)

	case ast.LetData:
		// Impossible after lifting and monomorphization; the reference
		// behavior degrades to a comment instead of failing hard.
		fe.emit(ir.Instr{Kind: ir.InstrComment, Comment: ir.CommentInstr{
			Text: "unexpected let expression in code generation",
		}})
		return ir.Imm(0), nil

	case ast.LamData:
		fe.emit(ir.Instr{Kind: ir.InstrComment, Comment: ir.CommentInstr{
			Text: "unexpected lambda expression in code generation",
		}})
		return ir.Imm(0), nil
	}
	return ir.Value{}, fmt.Errorf("codegen: bug: unhandled expression kind %s", e.Kind)
}

// genName resolves a bare name. A zero-argument global becomes a call; a
// global with parameters becomes a function value for later application; a
// local is its raw value.
func (fe *funcEmitter) genName(name string) (ir.Value, error) {
	if v, ok := fe.locals[name]; ok {
		return v, nil
	}
	if info, ok := fe.g.funcs[name]; ok {
		if info.arity == 0 {
			dst := fe.freshReg()
			fe.emit(ir.Instr{Kind: ir.InstrCall, Call: ir.CallInstr{
				Dst:    dst,
				Ret:    tyStr(info.ret),
				Callee: ir.Global(name),
			}})
			return ir.Reg(dst), nil
		}
		return ir.Global(name), nil
	}
	// Unknown names fall out of the degrade paths (constructor-pattern
	// binders); treat them as raw locals so emission can continue.
	return ir.Local(name), nil
}

// genApp flattens a curried application spine into one call. Collected
// arguments are materialized in collection order (outermost first, i.e.
// innermost last) and passed in source order.
func (fe *funcEmitter) genApp(e *ast.Expr) (ir.Value, error) {
	var collected []*ast.Expr
	spine := e
	for spine.Kind == ast.ExprApp {
		app := spine.Data.(ast.AppData)
		collected = append(collected, app.Arg)
		spine = app.Fn
	}

	vals := make([]ir.Value, len(collected))
	for i, arg := range collected {
		v, err := fe.genExpr(arg)
		if err != nil {
			return ir.Value{}, err
		}
		vals[i] = v
	}

	var callee ir.Value
	switch data := spine.Data.(type) {
	case ast.IdData:
		callee = fe.calleeValue(data.Name)
	case ast.ConData:
		callee = ir.Global(data.Name)
	default:
		// The spine bottomed out in a computed expression; call it as a
		// local function value.
		v, err := fe.genExpr(spine)
		if err != nil {
			return ir.Value{}, err
		}
		callee = v
	}

	// collected holds arguments outermost first; the call site wants
	// source order.
	args := make([]ir.Arg, 0, len(collected))
	for i := len(collected) - 1; i >= 0; i-- {
		args = append(args, ir.Arg{Ty: tyStr(collected[i].Ty), Val: vals[i]})
	}

	dst := fe.freshReg()
	fe.emit(ir.Instr{Kind: ir.InstrCall, Call: ir.CallInstr{
		Dst:    dst,
		Ret:    tyStr(e.Ty),
		Callee: callee,
		Args:   args,
	}})
	return ir.Reg(dst), nil
}

// calleeValue picks call visibility: global when the name is a known
// top-level function not shadowed by a local, local otherwise.
func (fe *funcEmitter) calleeValue(name string) ir.Value {
	if v, ok := fe.locals[name]; ok {
		return v
	}
	if _, ok := fe.g.funcs[name]; ok {
		return ir.Global(name)
	}
	return ir.Local(name)
}
