package lang

import (
	"strings"
	"testing"
)

func TestResolveAccepts(t *testing.T) {
	for _, src := range []string{
		"var x = 1; print x;",
		"var x = 1; { var x = x + 1; print x; }",
		"fn f(n) { return n; } print f(1);",
		"fn outer() { var x = 1; fn inner() { return x; } return inner; }",
		"for (var i = 0; i < 3; i = i + 1) print i;",
		"fn f() { if (true) { return 1; } return 2; }",
		"var g = fn (a) { return a; };",
	} {
		if err := Resolve(mustParse(t, src)); err != nil {
			t.Fatalf("%q: unexpected resolve error: %v", src, err)
		}
	}
}

func TestResolveRejectsSelfInitializer(t *testing.T) {
	for _, src := range []string{
		"{ var a = a; }",
		"fn f() { var a = a + 1; }",
		"{ var a = 1; { var a = a; } }",
	} {
		err := Resolve(mustParse(t, src))
		if err == nil {
			t.Fatalf("%q: expected resolve error", src)
		}
		if !strings.Contains(err.Error(), "in its own initializer") {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
	}
}

func TestResolveGlobalSelfReferenceAllowed(t *testing.T) {
	// At the top level the chain lookup decides; var a = a; fails at run
	// time with an undefined variable, not at resolve time.
	if err := Resolve(mustParse(t, "var a = a;")); err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
}

func TestResolveRejectsTopLevelReturn(t *testing.T) {
	for _, src := range []string{
		"return;",
		"return 1;",
		"{ return 1; }",
		"if (true) return 1;",
		"while (true) { return; }",
	} {
		err := Resolve(mustParse(t, src))
		if err == nil {
			t.Fatalf("%q: expected resolve error", src)
		}
		if !strings.Contains(err.Error(), "return outside function") {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
	}
}

func TestResolveReturnInsideNestedFn(t *testing.T) {
	src := `
fn outer() {
	fn inner() {
		return 1;
	}
	return inner();
}
`
	if err := Resolve(mustParse(t, src)); err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
}

func TestResolveErrorHasLine(t *testing.T) {
	err := Resolve(mustParse(t, "\n\n{ var a = a; }"))
	if err == nil {
		t.Fatalf("expected resolve error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line 3 in error, got %v", err)
	}
}
