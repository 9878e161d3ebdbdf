package types

import (
	"strings"
	"testing"
)

func TestEqualStructural(t *testing.T) {
	a := NewFn(Int(), NewData("List", NewVar("a")))
	b := NewFn(Int(), NewData("List", NewVar("a")))
	if !Equal(a, b) {
		t.Fatalf("expected %s == %s", a, b)
	}
	c := NewFn(Int(), NewData("List", NewVar("b")))
	if Equal(a, c) {
		t.Fatalf("expected %s != %s", a, c)
	}
	if Equal(Int(), NewVar("Int")) {
		t.Fatal("base type and variable must not be equal")
	}
}

func TestLooseEqualTreatsVarsAsEqual(t *testing.T) {
	declared := NewFn(NewVar("a"), NewVar("a"))
	inferred := NewFn(NewVar("t0"), NewVar("t1"))
	if !LooseEqual(declared, inferred) {
		t.Fatalf("expected %s ~ %s", declared, inferred)
	}
	if LooseEqual(NewVar("a"), Int()) {
		t.Fatal("variable vs concrete must not be loosely equal")
	}
	if LooseEqual(NewFn(NewVar("a"), Int()), NewFn(NewVar("a"), NewVar("b"))) {
		t.Fatal("concrete codomain vs variable must not be loosely equal")
	}
}

func TestMoreSpecificIsOneDirectional(t *testing.T) {
	if !MoreSpecific(Int(), NewVar("a")) {
		t.Fatal("concrete must be at least as specific as a variable")
	}
	if MoreSpecific(NewVar("a"), Int()) {
		t.Fatal("variable must not be at least as specific as a concrete type")
	}
	if !MoreSpecific(NewVar("a"), NewVar("b")) {
		t.Fatal("variable vs variable must pass")
	}
	lhs := NewData("List", Int())
	rhs := NewData("List", NewVar("a"))
	if !MoreSpecific(lhs, rhs) {
		t.Fatalf("expected %s to be at least as specific as %s", lhs, rhs)
	}
	if MoreSpecific(rhs, lhs) {
		t.Fatalf("expected %s not to be at least as specific as %s", rhs, lhs)
	}
}

func TestFreeVarsOrderAndDedup(t *testing.T) {
	ty := NewFn(NewVar("b"), NewFn(NewData("Pair", NewVar("a"), NewVar("b")), NewVar("c")))
	got := FreeVars(ty)
	want := []string{"b", "a", "c"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("free vars: got=%v want=%v", got, want)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		ty   *Type
		want string
	}{
		{Int(), "Int"},
		{NewVar("a"), "a"},
		{NewFn(Int(), NewFn(NewVar("a"), Int())), "Int -> a -> Int"},
		{NewFn(NewFn(Int(), Int()), NewVar("a")), "(Int -> Int) -> a"},
		{NewData("List", Int()), "List Int"},
		{NewData("List", NewData("List", Int())), "List (List Int)"},
		{NewData("Nil"), "Nil"},
		{NewFn(NewData("List", NewVar("a")), Int()), "List a -> Int"},
	}
	for _, tc := range cases {
		if got := tc.ty.String(); got != tc.want {
			t.Fatalf("String: got=%q want=%q", got, tc.want)
		}
	}
}

func TestIsConcrete(t *testing.T) {
	if !IsConcrete(NewFn(Int(), NewData("List", Int()))) {
		t.Fatal("fully mono type must be concrete")
	}
	if IsConcrete(NewData("List", NewVar("a"))) {
		t.Fatal("type with variable must not be concrete")
	}
}
