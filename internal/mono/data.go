package mono

import (
	"fmt"

	"fern/internal/ast"
	"fern/internal/types"
)

// registerCon records that the named constructor is used at the concrete
// constructor type conTy and returns its specialized name. The parent data
// type's instantiation is remembered so that one concrete declaration per
// distinct instantiation can be synthesized at the end of the run.
func (b *builder) registerCon(name string, conTy *types.Type) (string, error) {
	decl, _, ok := b.prog.ConOwner(name)
	if !ok {
		return "", fmt.Errorf("mono: bug: reference to unknown constructor %s", name)
	}
	if conTy == nil || !types.IsConcrete(conTy) {
		return "", fmt.Errorf("mono: bug: constructor %s used at non-concrete type %s", name, conTy)
	}
	ret := finalReturn(conTy)
	if ret.Kind != types.Data {
		return "", fmt.Errorf("mono: bug: constructor %s does not produce a data type: %s", name, conTy)
	}

	key := types.Suffix(ret)
	inst, ok := b.datas[key]
	if !ok {
		inst = &dataInst{decl: decl, ty: ret, seen: make(map[string]bool)}
		b.datas[key] = inst
		b.dataOrder = append(b.dataOrder, key)
	}
	if !inst.seen[name] {
		inst.seen[name] = true
		inst.consOrder = append(inst.consOrder, name)
	}
	return name + "_" + key, nil
}

// registerPatternCon resolves a pattern constructor against the concrete
// scrutinee type and registers the resulting instantiation.
func (b *builder) registerPatternCon(name string, scrutTy *types.Type) (string, error) {
	_, con, ok := b.prog.ConOwner(name)
	if !ok {
		return "", fmt.Errorf("mono: bug: pattern names unknown constructor %s", name)
	}
	sub := make(types.Subst)
	if err := mapTypes(sub, finalReturn(con.Ty), scrutTy); err != nil {
		return "", fmt.Errorf("mono: bug: pattern %s against scrutinee %s: %w", name, scrutTy, err)
	}
	return b.registerCon(name, sub.Apply(con.Ty))
}

// synthesizeDatas builds one concrete data declaration per distinct
// instantiation observed during the run, in first-observed order, merging
// the constructors seen at that instantiation.
func (b *builder) synthesizeDatas() ([]*ast.Data, error) {
	out := make([]*ast.Data, 0, len(b.dataOrder))
	for _, key := range b.dataOrder {
		inst := b.datas[key]
		sub := make(types.Subst)
		declRet := declaredReturn(inst.decl)
		if err := mapTypes(sub, declRet, inst.ty); err != nil {
			return nil, fmt.Errorf("mono: bug: instantiation %s of data %s: %w", inst.ty, inst.decl.Name, err)
		}
		d := &ast.Data{Name: key, Span: inst.decl.Span}
		for _, conName := range inst.consOrder {
			cd := findCon(inst.decl, conName)
			d.Cons = append(d.Cons, ast.ConDef{
				Name: conName + "_" + key,
				Ty:   sub.Apply(cd.Ty),
				Span: cd.Span,
			})
		}
		out = append(out, d)
	}
	return out, nil
}

// declaredReturn is the data type a declaration's constructors produce, with
// its own type parameters as arguments.
func declaredReturn(d *ast.Data) *types.Type {
	args := make([]*types.Type, len(d.TyVars))
	for i, v := range d.TyVars {
		args[i] = types.NewVar(v)
	}
	return types.NewData(d.Name, args...)
}

func findCon(d *ast.Data, name string) *ast.ConDef {
	for i := range d.Cons {
		if d.Cons[i].Name == name {
			return &d.Cons[i]
		}
	}
	return nil
}

// finalReturn unwinds a curried function type to its result.
func finalReturn(t *types.Type) *types.Type {
	for t.Kind == types.Fn {
		t = t.Cod
	}
	return t
}
