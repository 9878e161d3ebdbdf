package ast

// CloneProgram returns a structurally independent copy of prog. Type
// annotations are shared: once checking finishes they are read-only.
func CloneProgram(prog *Program) *Program {
	out := &Program{
		Datas: append([]*Data(nil), prog.Datas...),
		Binds: make([]*Bind, len(prog.Binds)),
	}
	for i, b := range prog.Binds {
		out.Binds[i] = cloneBind(b)
	}
	return out
}

func cloneBind(b *Bind) *Bind {
	c := *b
	c.Params = append([]string(nil), b.Params...)
	c.Body = CloneExpr(b.Body)
	return &c
}

// CloneExpr deep-copies an expression tree.
func CloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	c := *e
	switch data := e.Data.(type) {
	case LamData:
		data.Body = CloneExpr(data.Body)
		c.Data = data
	case AppData:
		data.Fn = CloneExpr(data.Fn)
		data.Arg = CloneExpr(data.Arg)
		c.Data = data
	case ArithData:
		data.Left = CloneExpr(data.Left)
		data.Right = CloneExpr(data.Right)
		c.Data = data
	case LetData:
		data.Bound = CloneExpr(data.Bound)
		data.Body = CloneExpr(data.Body)
		c.Data = data
	case CaseData:
		data.Scrut = CloneExpr(data.Scrut)
		branches := make([]Branch, len(data.Branches))
		for i, br := range data.Branches {
			br.Pat.Vars = append([]string(nil), br.Pat.Vars...)
			br.Body = CloneExpr(br.Body)
			branches[i] = br
		}
		data.Branches = branches
		c.Data = data
	}
	return &c
}
