package lang

import (
	"errors"
	"testing"
)

func TestEnvDefineGetAssign(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", NumberValue(1))
	child := NewEnv(parent)

	if err := child.Assign("x", NumberValue(2)); err != nil {
		t.Fatalf("Assign should update parent binding: %v", err)
	}
	val, err := parent.Get("x")
	if err != nil || val.Num() != 2 {
		t.Fatalf("expected parent value updated to 2, got %v err=%v", val, err)
	}

	// Define in the child shadows, Assign then hits the child slot only.
	child.Define("x", NumberValue(10))
	if err := child.Assign("x", NumberValue(11)); err != nil {
		t.Fatalf("Assign on shadowed binding: %v", err)
	}
	if val, _ := child.Get("x"); val.Num() != 11 {
		t.Fatalf("expected shadowed value 11, got %v", val)
	}
	if val, _ := parent.Get("x"); val.Num() != 2 {
		t.Fatalf("expected parent value untouched at 2, got %v", val)
	}

	if child.Parent() != parent {
		t.Fatalf("expected Parent to expose enclosing environment")
	}
}

func TestEnvUndefinedErrors(t *testing.T) {
	env := NewEnv(nil)

	_, err := env.Get("missing")
	var evalErr *Error
	if !errors.As(err, &evalErr) || evalErr.Kind != UndefinedVariable {
		t.Fatalf("expected UndefinedVariable from Get, got %v", err)
	}
	if evalErr.Name != "missing" {
		t.Fatalf("expected offending name in error, got %q", evalErr.Name)
	}

	if err := env.Assign("missing", Nil); err == nil {
		t.Fatalf("expected error assigning missing binding")
	} else if !errors.As(err, &evalErr) || evalErr.Kind != UndefinedVariable {
		t.Fatalf("expected UndefinedVariable from Assign, got %v", err)
	}
}

func TestEnvSharedMutation(t *testing.T) {
	shared := NewEnv(nil)
	shared.Define("i", NumberValue(0))

	// Two chains alias the same environment; a write through one is
	// visible through the other.
	a := NewEnv(shared)
	b := NewEnv(shared)
	if err := a.Assign("i", NumberValue(5)); err != nil {
		t.Fatalf("Assign through first child: %v", err)
	}
	val, err := b.Get("i")
	if err != nil || val.Num() != 5 {
		t.Fatalf("expected shared mutation visible, got %v err=%v", val, err)
	}
}

func TestEnvRedefineOverwrites(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", NumberValue(1))
	env.Define("x", StringValue("two"))
	val, err := env.Get("x")
	if err != nil || val.Type != TypeString || val.Str() != "two" {
		t.Fatalf("expected redefinition to overwrite, got %v err=%v", val, err)
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{Nil, "nil"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NumberValue(1), "1"},
		{NumberValue(2.5), "2.5"},
		{NumberValue(-0.25), "-0.25"},
		{StringValue("hello"), "hello"},
		{FunctionValue(&Function{Name: "count"}), "<fn count>"},
		{FunctionValue(&Function{}), "<fn>"},
	}
	for _, c := range cases {
		if got := c.val.String(); got != c.want {
			t.Fatalf("String() => %q, want %q", got, c.want)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		val   Value
		truth bool
	}{
		{Nil, false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{NumberValue(0), false},
		{NumberValue(3), true},
		{StringValue(""), false},
		{StringValue("x"), true},
	}
	for _, c := range cases {
		truth, ok := c.val.Truthy()
		if !ok {
			t.Fatalf("Truthy(%v) not defined", c.val)
		}
		if truth != c.truth {
			t.Fatalf("Truthy(%v) => %v, want %v", c.val, truth, c.truth)
		}
	}

	if _, ok := FunctionValue(&Function{}).Truthy(); ok {
		t.Fatalf("expected functions to have no truth value")
	}
}

func TestValueEqual(t *testing.T) {
	if !NumberValue(2).Equal(NumberValue(2)) {
		t.Fatalf("expected equal numbers")
	}
	if NumberValue(2).Equal(StringValue("2")) {
		t.Fatalf("expected cross-type equality to be false")
	}
	if !Nil.Equal(Nil) {
		t.Fatalf("expected nil == nil")
	}

	fn := &Function{Name: "f"}
	if !FunctionValue(fn).Equal(FunctionValue(fn)) {
		t.Fatalf("expected same closure to be equal")
	}
	if FunctionValue(fn).Equal(FunctionValue(&Function{Name: "f"})) {
		t.Fatalf("expected distinct closures to be unequal")
	}
}
