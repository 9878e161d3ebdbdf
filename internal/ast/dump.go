package ast

import (
	"fmt"
	"strings"
)

// DumpProgram renders a program as an indented textual tree for debug
// output. Node types appear after "::" once the checker has filled them.
func DumpProgram(p *Program) string {
	var sb strings.Builder
	for _, d := range p.Datas {
		dumpData(&sb, d)
	}
	for _, b := range p.Binds {
		dumpBind(&sb, b)
	}
	return sb.String()
}

func dumpData(sb *strings.Builder, d *Data) {
	sb.WriteString("data ")
	sb.WriteString(d.Name)
	for _, v := range d.TyVars {
		sb.WriteByte(' ')
		sb.WriteString(v)
	}
	sb.WriteString(":\n")
	for _, c := range d.Cons {
		fmt.Fprintf(sb, "  %s : %s\n", c.Name, c.Ty)
	}
}

func dumpBind(sb *strings.Builder, b *Bind) {
	sb.WriteString("bind ")
	sb.WriteString(b.Name)
	if len(b.Params) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(b.Params, " "))
	}
	if b.Ty != nil {
		fmt.Fprintf(sb, " : %s", b.Ty)
	}
	sb.WriteString(":\n")
	dumpExpr(sb, b.Body, 1)
}

func dumpExpr(sb *strings.Builder, e *Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	if e == nil {
		sb.WriteString(indent + "<nil>\n")
		return
	}
	sb.WriteString(indent)
	switch data := e.Data.(type) {
	case LitData:
		fmt.Fprintf(sb, "Lit %d", data.Value)
	case IdData:
		fmt.Fprintf(sb, "Id %s", data.Name)
	case ConData:
		fmt.Fprintf(sb, "Con %s", data.Name)
	case LamData:
		fmt.Fprintf(sb, "Lam %s", data.Param)
	case AppData:
		sb.WriteString("App")
	case ArithData:
		fmt.Fprintf(sb, "Arith %s", data.Op)
	case LetData:
		fmt.Fprintf(sb, "Let %s", data.Name)
	case CaseData:
		sb.WriteString("Case")
	default:
		sb.WriteString("Unknown")
	}
	if e.Ty != nil {
		fmt.Fprintf(sb, " :: %s", e.Ty)
	}
	sb.WriteByte('\n')

	switch data := e.Data.(type) {
	case LamData:
		dumpExpr(sb, data.Body, depth+1)
	case AppData:
		dumpExpr(sb, data.Fn, depth+1)
		dumpExpr(sb, data.Arg, depth+1)
	case ArithData:
		dumpExpr(sb, data.Left, depth+1)
		dumpExpr(sb, data.Right, depth+1)
	case LetData:
		dumpExpr(sb, data.Bound, depth+1)
		dumpExpr(sb, data.Body, depth+1)
	case CaseData:
		dumpExpr(sb, data.Scrut, depth+1)
		for _, br := range data.Branches {
			sb.WriteString(strings.Repeat("  ", depth+1))
			sb.WriteString("branch ")
			sb.WriteString(dumpPattern(br.Pat))
			sb.WriteByte('\n')
			dumpExpr(sb, br.Body, depth+2)
		}
	}
}

func dumpPattern(p Pattern) string {
	switch p.Kind {
	case PatLit:
		return fmt.Sprintf("%d", p.Value)
	case PatWild:
		return "_"
	case PatVar:
		return p.Name
	case PatCon:
		if len(p.Vars) == 0 {
			return p.Name
		}
		return p.Name + " " + strings.Join(p.Vars, " ")
	default:
		return "?"
	}
}
