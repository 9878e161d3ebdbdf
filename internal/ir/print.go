package ir

import (
	"fmt"
	"strings"
)

// Preamble is the fixed constant pool emitted before any function: the
// printf format string and the external print declaration. The downstream
// runner depends on this exact text.
const Preamble = "@fmt = constant [4 x i8] c\"%d\\0A\\00\"\ndeclare i32 @printf(ptr, ...)\n"

// FmtGlobal names the format-string constant of the preamble.
const FmtGlobal = "fmt"

// Render produces the textual form of the module: the preamble followed by
// one definition block per function, in module order.
func Render(m *Module) string {
	var sb strings.Builder
	sb.WriteString(Preamble)
	for _, f := range m.Funcs {
		sb.WriteByte('\n')
		renderFunc(&sb, f)
	}
	return sb.String()
}

func renderFunc(sb *strings.Builder, f *Func) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Ty + " %" + p.Name
	}
	fmt.Fprintf(sb, "define %s @%s(%s) {\n", f.Ret, f.Name, strings.Join(params, ", "))
	for i := range f.Body {
		renderInstr(sb, &f.Body[i])
	}
	sb.WriteString("}\n")
}

func renderInstr(sb *strings.Builder, in *Instr) {
	switch in.Kind {
	case InstrBin:
		fmt.Fprintf(sb, "  %%%s = %s %s %s, %s\n", in.Bin.Dst, in.Bin.Op, in.Bin.Ty, in.Bin.A, in.Bin.B)
	case InstrCmp:
		fmt.Fprintf(sb, "  %%%s = icmp eq %s %s, %s\n", in.Cmp.Dst, in.Cmp.Ty, in.Cmp.A, in.Cmp.B)
	case InstrCondBr:
		fmt.Fprintf(sb, "  br i1 %s, label %%%s, label %%%s\n", in.CondBr.Cond, in.CondBr.True, in.CondBr.False)
	case InstrBr:
		fmt.Fprintf(sb, "  br label %%%s\n", in.Br.Target)
	case InstrLabel:
		fmt.Fprintf(sb, "%s:\n", in.Label.Name)
	case InstrAlloca:
		fmt.Fprintf(sb, "  %%%s = alloca %s\n", in.Alloca.Dst, in.Alloca.Ty)
	case InstrStore:
		fmt.Fprintf(sb, "  store %s %s, ptr %s\n", in.Store.Ty, in.Store.Val, in.Store.Slot)
	case InstrLoad:
		fmt.Fprintf(sb, "  %%%s = load %s, ptr %s\n", in.Load.Dst, in.Load.Ty, in.Load.Slot)
	case InstrCall:
		args := make([]string, len(in.Call.Args))
		for i, a := range in.Call.Args {
			args[i] = a.Ty + " " + a.Val.String()
		}
		sig := in.Call.Ret
		if in.Call.Sig != "" {
			sig = in.Call.Sig
		}
		fmt.Fprintf(sb, "  %%%s = call %s %s(%s)\n", in.Call.Dst, sig, in.Call.Callee, strings.Join(args, ", "))
	case InstrRet:
		fmt.Fprintf(sb, "  ret %s %s\n", in.Ret.Ty, in.Ret.Val)
	case InstrComment:
		fmt.Fprintf(sb, "  ; %s\n", in.Comment.Text)
	}
}
