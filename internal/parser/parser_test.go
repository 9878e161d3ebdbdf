package parser

import (
	"strings"
	"testing"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/types"
)

func parseSrc(t *testing.T, src string) (*ast.Program, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("parse.fn", []byte(src))
	bag := diag.NewBag(32)
	prog, ok := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return prog, bag, ok
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %+v", bag.Items())
	}
	return prog
}

func TestParseBindingAndSignature(t *testing.T) {
	prog := mustParse(t, "main : Int;\nmain = 1 + 2;\n")
	if len(prog.Binds) != 1 {
		t.Fatalf("binds: got=%d want=1", len(prog.Binds))
	}
	b := prog.Binds[0]
	if b.Name != "main" || len(b.Params) != 0 {
		t.Fatalf("bind shape: got=%+v", b)
	}
	if !types.Equal(b.Ty, types.Int()) {
		t.Fatalf("bind type: got=%s want=Int", b.Ty)
	}
	if b.Body.Kind != ast.ExprArith {
		t.Fatalf("body kind: got=%s want=Arith", b.Body.Kind)
	}
}

func TestParseParams(t *testing.T) {
	prog := mustParse(t, "add : Int -> Int -> Int;\nadd x y = x + y;\n")
	b := prog.Binds[0]
	if len(b.Params) != 2 || b.Params[0] != "x" || b.Params[1] != "y" {
		t.Fatalf("params: got=%v want=[x y]", b.Params)
	}
	want := types.NewFn(types.Int(), types.NewFn(types.Int(), types.Int()))
	if !types.Equal(b.Ty, want) {
		t.Fatalf("type: got=%s want=%s", b.Ty, want)
	}
}

func TestParseLambdaDesugar(t *testing.T) {
	prog := mustParse(t, "f : Int -> Int -> Int;\nf = \\x y -> x + y;\n")
	body := prog.Binds[0].Body
	if body.Kind != ast.ExprLam {
		t.Fatalf("expected outer lambda, got %s", body.Kind)
	}
	outer := body.Data.(ast.LamData)
	if outer.Param != "x" {
		t.Fatalf("outer param: got=%q want=x", outer.Param)
	}
	if outer.Body.Kind != ast.ExprLam {
		t.Fatalf("expected nested lambda, got %s", outer.Body.Kind)
	}
	inner := outer.Body.Data.(ast.LamData)
	if inner.Param != "y" {
		t.Fatalf("inner param: got=%q want=y", inner.Param)
	}
}

func TestParseApplicationLeftAssociative(t *testing.T) {
	prog := mustParse(t, "r : Int;\nr = f 1 2 + g 3;\nf : Int -> Int -> Int;\nf x y = x;\ng : Int -> Int;\ng x = x;\n")
	body := prog.Binds[0].Body
	arith := body.Data.(ast.ArithData)
	if arith.Op != ast.OpAdd {
		t.Fatalf("op: got=%s want=+", arith.Op)
	}
	// Left operand must be ((f 1) 2).
	left := arith.Left
	if left.Kind != ast.ExprApp {
		t.Fatalf("left kind: got=%s want=App", left.Kind)
	}
	outer := left.Data.(ast.AppData)
	if outer.Fn.Kind != ast.ExprApp {
		t.Fatalf("application must nest left: got=%s", outer.Fn.Kind)
	}
	innerFn := outer.Fn.Data.(ast.AppData).Fn
	if innerFn.Kind != ast.ExprId || innerFn.Data.(ast.IdData).Name != "f" {
		t.Fatalf("spine head: got=%+v", innerFn)
	}
}

func TestParseDataDecl(t *testing.T) {
	prog := mustParse(t, "data List a = Cons a (List a) | Nil;\nmain : Int;\nmain = 0;\n")
	if len(prog.Datas) != 1 {
		t.Fatalf("datas: got=%d want=1", len(prog.Datas))
	}
	d := prog.Datas[0]
	if d.Name != "List" || len(d.TyVars) != 1 || d.TyVars[0] != "a" {
		t.Fatalf("data header: got=%+v", d)
	}
	if len(d.Cons) != 2 {
		t.Fatalf("constructors: got=%d want=2", len(d.Cons))
	}
	listA := types.NewData("List", types.NewVar("a"))
	wantCons := types.NewFn(types.NewVar("a"), types.NewFn(listA, listA))
	if !types.Equal(d.Cons[0].Ty, wantCons) {
		t.Fatalf("Cons type: got=%s want=%s", d.Cons[0].Ty, wantCons)
	}
	if !types.Equal(d.Cons[1].Ty, listA) {
		t.Fatalf("Nil type: got=%s want=%s", d.Cons[1].Ty, listA)
	}
}

func TestParseCaseBranches(t *testing.T) {
	prog := mustParse(t, `
len : List Int -> Int;
len xs = case xs of {
  Cons y ys -> 1 + len ys;
  Nil -> 0;
};
data List a = Cons a (List a) | Nil;
`)
	body := prog.Binds[0].Body
	if body.Kind != ast.ExprCase {
		t.Fatalf("body kind: got=%s want=Case", body.Kind)
	}
	c := body.Data.(ast.CaseData)
	if len(c.Branches) != 2 {
		t.Fatalf("branches: got=%d want=2", len(c.Branches))
	}
	first := c.Branches[0].Pat
	if first.Kind != ast.PatCon || first.Name != "Cons" || len(first.Vars) != 2 {
		t.Fatalf("first pattern: got=%+v", first)
	}
	second := c.Branches[1].Pat
	if second.Kind != ast.PatCon || second.Name != "Nil" || len(second.Vars) != 0 {
		t.Fatalf("second pattern: got=%+v", second)
	}
}

func TestParseCaseLiteralAndCatchAll(t *testing.T) {
	prog := mustParse(t, "f : Int -> Int;\nf x = case x of { 0 -> 1; n -> n };\n")
	c := prog.Binds[0].Body.Data.(ast.CaseData)
	if c.Branches[0].Pat.Kind != ast.PatLit || c.Branches[0].Pat.Value != 0 {
		t.Fatalf("literal pattern: got=%+v", c.Branches[0].Pat)
	}
	if c.Branches[1].Pat.Kind != ast.PatVar || c.Branches[1].Pat.Name != "n" {
		t.Fatalf("var pattern: got=%+v", c.Branches[1].Pat)
	}
	if !c.Branches[1].Pat.IsCatchAll() {
		t.Fatal("var pattern must be catch-all")
	}
}

func TestParseLetIn(t *testing.T) {
	prog := mustParse(t, "main : Int;\nmain = let x = 1 in x + 2;\n")
	body := prog.Binds[0].Body
	if body.Kind != ast.ExprLet {
		t.Fatalf("body kind: got=%s want=Let", body.Kind)
	}
	l := body.Data.(ast.LetData)
	if l.Name != "x" || l.Bound.Kind != ast.ExprLit || l.Body.Kind != ast.ExprArith {
		t.Fatalf("let shape: got=%+v", l)
	}
}

func TestParseTypeArrowRightAssociative(t *testing.T) {
	prog := mustParse(t, "f : (Int -> Int) -> Int -> Int;\nf g x = g x;\n")
	ty := prog.Binds[0].Ty
	if ty.Kind != types.Fn || ty.Dom.Kind != types.Fn {
		t.Fatalf("domain must be a function type: got=%s", ty)
	}
	if ty.Cod.Kind != types.Fn || ty.Cod.Dom.Kind != types.Mono {
		t.Fatalf("codomain shape: got=%s", ty.Cod)
	}
}

func TestParseMissingSignatureReported(t *testing.T) {
	_, bag, ok := parseSrc(t, "main = 1;\n")
	if ok {
		t.Fatal("expected parse errors")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMissingSignature {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynMissingSignature, got %+v", bag.Items())
	}
}

func TestParseSignatureWithoutBindingReported(t *testing.T) {
	_, bag, ok := parseSrc(t, "f : Int;\nmain : Int;\nmain = 0;\n")
	if ok {
		t.Fatal("expected parse errors")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMissingSignature {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynMissingSignature for dangling sig, got %+v", bag.Items())
	}
}

func TestParseRecoversAfterBadDecl(t *testing.T) {
	prog, bag, ok := parseSrc(t, "f : Int -> ;\nmain : Int;\nmain = 7;\n")
	if ok {
		t.Fatal("expected parse errors")
	}
	if bag.Len() == 0 {
		t.Fatal("expected diagnostics")
	}
	if _, found := prog.Bind("main"); !found {
		t.Fatal("parser must recover and keep parsing after a bad declaration")
	}
}

func TestParseDumpShape(t *testing.T) {
	prog := mustParse(t, "main : Int;\nmain = 1 + 2;\n")
	dump := ast.DumpProgram(prog)
	want := "bind main : Int:\n  Arith +\n    Lit 1\n    Lit 2\n"
	if dump != want {
		t.Fatalf("dump:\n got=%q\nwant=%q", dump, want)
	}
	if strings.Contains(dump, "::") {
		t.Fatal("types must not be present before checking")
	}
}
