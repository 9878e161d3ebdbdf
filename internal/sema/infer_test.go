package sema

import (
	"testing"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/parser"
	"fern/internal/source"
	"fern/internal/types"
)

func checkSrc(t *testing.T, src string) (*ast.Program, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("check.fn", []byte(src))
	bag := diag.NewBag(32)
	prog, ok := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok {
		t.Fatalf("parse failed: %+v", bag.Items())
	}
	return prog, bag, Check(prog, Options{Reporter: diag.BagReporter{Bag: bag}})
}

func mustCheck(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag, ok := checkSrc(t, src)
	if !ok {
		t.Fatalf("check failed: %+v", bag.Items())
	}
	return prog
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestInferArithmeticLiteral(t *testing.T) {
	prog := mustCheck(t, "main : Int;\nmain = 3 + 4;\n")
	b, _ := prog.Bind("main")
	if !types.Equal(b.Body.Ty, types.Int()) {
		t.Fatalf("type: got=%s want=Int", b.Body.Ty)
	}
	if fv := types.FreeVars(b.Body.Ty); len(fv) != 0 {
		t.Fatalf("free variables left over: %v", fv)
	}
}

func TestInferDeterministic(t *testing.T) {
	src := `
data List a = Cons a (List a) | Nil;
len : List Int -> Int;
len xs = case xs of { Cons y ys -> 1 + len ys; Nil -> 0 };
main : Int;
main = len (Cons 1 Nil);
`
	first := ast.DumpProgram(mustCheck(t, src))
	second := ast.DumpProgram(mustCheck(t, src))
	if first != second {
		t.Fatalf("inference not deterministic:\n%s\nvs\n%s", first, second)
	}
}

func TestInferFunctionApplication(t *testing.T) {
	prog := mustCheck(t, "inc : Int -> Int;\ninc x = x + 1;\nmain : Int;\nmain = inc 41;\n")
	b, _ := prog.Bind("main")
	if !types.Equal(b.Body.Ty, types.Int()) {
		t.Fatalf("application type: got=%s want=Int", b.Body.Ty)
	}
	inc, _ := prog.Bind("inc")
	if !types.Equal(inc.Body.Ty, types.Int()) {
		t.Fatalf("inc body type: got=%s want=Int", inc.Body.Ty)
	}
}

func TestInferPolymorphicIdentityKeepsSignatureVars(t *testing.T) {
	prog := mustCheck(t, "id : a -> a;\nid x = x;\nmain : Int;\nmain = id 3;\n")
	id, _ := prog.Bind("id")
	// The body annotation must use the signature's own variable, since
	// specialization maps signature variables to concrete types.
	if id.Body.Ty.Kind != types.Var || id.Body.Ty.Name != "a" {
		t.Fatalf("id body type: got=%s want=a", id.Body.Ty)
	}
	b, _ := prog.Bind("main")
	if !types.Equal(b.Body.Ty, types.Int()) {
		t.Fatalf("main body type: got=%s want=Int", b.Body.Ty)
	}
}

func TestInferLetGeneralization(t *testing.T) {
	src := `
inc : Int -> Int;
inc x = x + 1;
main : Int;
main = let id = \y -> y in (id inc) (id 2);
`
	prog := mustCheck(t, src)
	b, _ := prog.Bind("main")
	if !types.Equal(b.Body.Ty, types.Int()) {
		t.Fatalf("let body type: got=%s want=Int", b.Body.Ty)
	}
}

func TestInferLambdaBindingPinnedBySignature(t *testing.T) {
	prog := mustCheck(t, "f : Int -> Int;\nf = \\x -> x;\nmain : Int;\nmain = f 0;\n")
	f, _ := prog.Bind("f")
	want := types.NewFn(types.Int(), types.Int())
	if !types.Equal(f.Body.Ty, want) {
		t.Fatalf("lambda type: got=%s want=%s", f.Body.Ty, want)
	}
}

func TestInferCaseOverData(t *testing.T) {
	src := `
data List a = Cons a (List a) | Nil;
len : List Int -> Int;
len xs = case xs of { Cons y ys -> 1 + len ys; Nil -> 0 };
main : Int;
main = len Nil;
`
	prog := mustCheck(t, src)
	lenBind, _ := prog.Bind("len")
	if !types.Equal(lenBind.Body.Ty, types.Int()) {
		t.Fatalf("case type: got=%s want=Int", lenBind.Body.Ty)
	}
	c := lenBind.Body.Data.(ast.CaseData)
	want := types.NewData("List", types.Int())
	if !types.Equal(c.Scrut.Ty, want) {
		t.Fatalf("scrutinee type: got=%s want=%s", c.Scrut.Ty, want)
	}
}

func TestInferCaseBranchBindings(t *testing.T) {
	src := `
data Pair a b = MkPair a b;
second : Pair Int Int -> Int;
second p = case p of { MkPair x y -> y };
main : Int;
main = second (MkPair 1 2);
`
	prog := mustCheck(t, src)
	b, _ := prog.Bind("second")
	c := b.Body.Data.(ast.CaseData)
	if !types.Equal(c.Branches[0].Body.Ty, types.Int()) {
		t.Fatalf("branch body type: got=%s want=Int", c.Branches[0].Body.Ty)
	}
}

func TestInferUnboundVariable(t *testing.T) {
	_, bag, ok := checkSrc(t, "main : Int;\nmain = x;\n")
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaUnboundName) {
		t.Fatalf("expected SemaUnboundName, got %+v", bag.Items())
	}
}

func TestInferUnboundConstructor(t *testing.T) {
	_, bag, ok := checkSrc(t, "main : Int;\nmain = case Whoops of { _ -> 0 };\n")
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaUnboundName) {
		t.Fatalf("expected SemaUnboundName, got %+v", bag.Items())
	}
}

func TestInferCaseBranchTypeMismatch(t *testing.T) {
	src := `
data List a = Cons a (List a) | Nil;
f : Int -> Int;
f x = case x of { 0 -> 1; _ -> Nil };
main : Int;
main = f 0;
`
	_, bag, ok := checkSrc(t, src)
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaCaseBranchType) {
		t.Fatalf("expected SemaCaseBranchType, got %+v", bag.Items())
	}
}

func TestInferPatternArityMismatch(t *testing.T) {
	src := `
data Pair a b = MkPair a b;
f : Pair Int Int -> Int;
f p = case p of { MkPair x -> x };
main : Int;
main = f (MkPair 1 2);
`
	_, bag, ok := checkSrc(t, src)
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaPatternArity) {
		t.Fatalf("expected SemaPatternArity, got %+v", bag.Items())
	}
}

func TestInferPatternWrongConstructor(t *testing.T) {
	src := `
data List a = Cons a (List a) | Nil;
f : Int -> Int;
f x = case x of { Cons y ys -> 1; _ -> 0 };
main : Int;
main = f 0;
`
	_, bag, ok := checkSrc(t, src)
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaPatternNotSpecific) {
		t.Fatalf("expected SemaPatternNotSpecific, got %+v", bag.Items())
	}
}

func TestInferOccursCheckViaSelfApplication(t *testing.T) {
	_, bag, ok := checkSrc(t, "main : Int;\nmain = let w = \\x -> x x in 0;\n")
	if ok {
		t.Fatal("expected check failure")
	}
	if !hasCode(bag, diag.SemaOccursCheck) {
		t.Fatalf("expected SemaOccursCheck, got %+v", bag.Items())
	}
}
