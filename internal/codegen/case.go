package codegen

import (
	"fern/internal/ast"
	"fern/internal/ir"
)

// genCase lowers a case expression through one shared stack slot. Each
// integer-literal branch compares, conditionally branches into a block that
// stores its value and jumps to the shared escape label, then continues at
// the failure label. A catch-all branch stores unconditionally and falls
// through, so it only behaves as a default when it is the last branch; the
// source branch order is preserved either way.
func (fe *funcEmitter) genCase(e *ast.Expr, data ast.CaseData) (ir.Value, error) {
	scrut, err := fe.genExpr(data.Scrut)
	if err != nil {
		return ir.Value{}, err
	}

	slotTy := tyStr(e.Ty)
	slotReg := fe.freshReg()
	fe.emit(ir.Instr{Kind: ir.InstrAlloca, Alloca: ir.AllocaInstr{Dst: slotReg, Ty: slotTy}})
	slot := ir.Reg(slotReg)

	escape := ""
	for i := range data.Branches {
		br := &data.Branches[i]
		switch br.Pat.Kind {
		case ast.PatLit:
			cmp := fe.freshReg()
			fe.emit(ir.Instr{Kind: ir.InstrCmp, Cmp: ir.CmpInstr{
				Dst: cmp, Ty: "i64", A: scrut, B: ir.Imm(br.Pat.Value),
			}})
			hit := fe.freshLabel()
			miss := fe.freshLabel()
			if escape == "" {
				escape = fe.freshLabel()
			}
			fe.emit(ir.Instr{Kind: ir.InstrCondBr, CondBr: ir.CondBrInstr{
				Cond: ir.Reg(cmp), True: hit, False: miss,
			}})
			fe.emit(ir.Instr{Kind: ir.InstrLabel, Label: ir.LabelInstr{Name: hit}})
			val, err := fe.genExpr(br.Body)
			if err != nil {
				return ir.Value{}, err
			}
			fe.emit(ir.Instr{Kind: ir.InstrStore, Store: ir.StoreInstr{Ty: slotTy, Val: val, Slot: slot}})
			fe.emit(ir.Instr{Kind: ir.InstrBr, Br: ir.BrInstr{Target: escape}})
			fe.emit(ir.Instr{Kind: ir.InstrLabel, Label: ir.LabelInstr{Name: miss}})

		case ast.PatWild, ast.PatVar:
			if br.Pat.Kind == ast.PatVar {
				fe.locals[br.Pat.Name] = scrut
			}
			val, err := fe.genExpr(br.Body)
			if err != nil {
				return ir.Value{}, err
			}
			fe.emit(ir.Instr{Kind: ir.InstrStore, Store: ir.StoreInstr{Ty: slotTy, Val: val, Slot: slot}})

		case ast.PatCon:
			// Constructor matching never reached the backend in the
			// reference pipeline; degrade the same way let and lambda do.
			fe.emit(ir.Instr{Kind: ir.InstrComment, Comment: ir.CommentInstr{
				Text: "unexpected constructor pattern " + br.Pat.Name + " in code generation",
			}})
			for _, v := range br.Pat.Vars {
				if v != "_" {
					fe.locals[v] = scrut
				}
			}
			val, err := fe.genExpr(br.Body)
			if err != nil {
				return ir.Value{}, err
			}
			fe.emit(ir.Instr{Kind: ir.InstrStore, Store: ir.StoreInstr{Ty: slotTy, Val: val, Slot: slot}})
		}
	}

	if escape == "" {
		escape = fe.freshLabel()
	}
	fe.emit(ir.Instr{Kind: ir.InstrLabel, Label: ir.LabelInstr{Name: escape}})
	res := fe.freshReg()
	fe.emit(ir.Instr{Kind: ir.InstrLoad, Load: ir.LoadInstr{Dst: res, Ty: slotTy, Slot: slot}})
	return ir.Reg(res), nil
}
