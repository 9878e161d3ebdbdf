package lexer

import (
	"testing"

	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lex.fn", []byte(src))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func TestTokenizeBinding(t *testing.T) {
	toks, bag := lexAll(t, "main : Int;\nmain = 1 + 2;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{
		token.Ident, token.Colon, token.ConIdent, token.Semicolon,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.Semicolon,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got=%d want=%d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestTokenizeLambdaAndCase(t *testing.T) {
	toks, bag := lexAll(t, `f = \x -> case x of { 0 -> 1; _ -> 2 };`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{
		token.Ident, token.Assign, token.Backslash, token.Ident, token.Arrow,
		token.KwCase, token.Ident, token.KwOf, token.LBrace,
		token.IntLit, token.Arrow, token.IntLit, token.Semicolon,
		token.Underscore, token.Arrow, token.IntLit,
		token.RBrace, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got=%d want=%d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestTokenizeCommentsAndSpans(t *testing.T) {
	toks, bag := lexAll(t, "# leading comment\nid x = x; # trailing\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "id" {
		t.Fatalf("first token: got=%s %q", toks[0].Kind, toks[0].Text)
	}
	if toks[0].Span.Start != 18 || toks[0].Span.End != 20 {
		t.Fatalf("first token span: got=%v", toks[0].Span)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("last token: got=%s want=eof", last.Kind)
	}
}

func TestTokenizeKeywordsVsIdents(t *testing.T) {
	toks, _ := lexAll(t, "let letx in cased data case of")
	want := []token.Kind{
		token.KwLet, token.Ident, token.KwIn, token.Ident,
		token.KwData, token.KwCase, token.KwOf, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestTokenizePrimedIdent(t *testing.T) {
	toks, bag := lexAll(t, "x' = 1;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "x'" {
		t.Fatalf("primed ident: got=%s %q", toks[0].Kind, toks[0].Text)
	}
}

func TestUnknownCharReported(t *testing.T) {
	toks, bag := lexAll(t, "main = 1 $ 2;")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for '$'")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnknownChar {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnknownChar, got %+v", bag.Items())
	}
	hasInvalid := false
	for _, tk := range toks {
		if tk.Kind == token.Invalid {
			hasInvalid = true
		}
	}
	if !hasInvalid {
		t.Fatal("expected an Invalid token in the stream")
	}
}

func TestBadNumberReported(t *testing.T) {
	_, bag := lexAll(t, "main = 12abc;")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexBadNumber {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexBadNumber, got %+v", bag.Items())
	}
}
