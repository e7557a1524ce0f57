package object

import "testing"

func TestEnvironmentDeclareGetSet(t *testing.T) {
	env := NewEnvironment()

	if env.IsDeclared("x") {
		t.Fatal("x should not be declared yet")
	}

	env.Declare("x", IntKind, Int(1))
	if !env.IsDeclared("x") {
		t.Fatal("x should be declared")
	}

	v, ok := env.Get("x")
	if !ok || v.Int != 1 {
		t.Fatalf("Get(x) = %+v, %v, want Int(1), true", v, ok)
	}

	kind, ok := env.DeclaredKind("x")
	if !ok || kind != IntKind {
		t.Fatalf("DeclaredKind(x) = %v, %v, want IntKind, true", kind, ok)
	}

	env.Set("x", Int(42))
	v, _ = env.Get("x")
	if v.Int != 42 {
		t.Fatalf("after Set, Get(x) = %+v, want Int(42)", v)
	}

	kind, _ = env.DeclaredKind("x")
	if kind != IntKind {
		t.Fatalf("DeclaredKind(x) changed after Set: got %v, want IntKind", kind)
	}
}

func TestEnvironmentGetUndeclared(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.Get("missing"); ok {
		t.Fatal("Get on an undeclared name should return ok=false")
	}
	if _, ok := env.DeclaredKind("missing"); ok {
		t.Fatal("DeclaredKind on an undeclared name should return ok=false")
	}
}
