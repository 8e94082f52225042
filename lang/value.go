// Package lang implements the runtime core of the rl interpreter: values,
// environments and the tree-walking evaluator.
package lang

import (
	"strconv"

	"github.com/sergev/rlang/ast"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeFunction
)

func (vt ValueType) String() string {
	switch vt {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload interface{}
}

// NativeFn is a built-in Go function exposed to rl programs.
type NativeFn func(args []Value) (Value, error)

// Function is a callable value. A user-defined function pairs the shared,
// immutable definition (parameter names and body) with the environment that
// was active when the fn literal was evaluated. A native function carries a
// Go implementation instead and has no captured environment.
type Function struct {
	Name   string // empty for anonymous functions
	Params []string
	Body   []ast.Stmt
	Env    *Env
	Native NativeFn
}

// Arity returns the number of parameters the function expects.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Nil is the nil value.
var Nil = Value{Type: TypeNil}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a numeric Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// FunctionValue wraps a callable.
func FunctionValue(fn *Function) Value {
	return Value{Type: TypeFunction, payload: fn}
}

// NativeValue wraps a Go function as a callable with fixed parameter names.
func NativeValue(name string, params []string, fn NativeFn) Value {
	return FunctionValue(&Function{
		Name:   name,
		Params: params,
		Native: fn,
	})
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Num() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Function() *Function {
	if f, ok := v.payload.(*Function); ok {
		return f
	}
	return nil
}

// Equal reports value equality. Values of different types are never equal;
// two function values are equal only when they are the same closure.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TypeNil:
		return true
	case TypeBool:
		return v.Bool() == other.Bool()
	case TypeNumber:
		return v.Num() == other.Num()
	case TypeString:
		return v.Str() == other.Str()
	case TypeFunction:
		return v.Function() == other.Function()
	default:
		return false
	}
}

// Truthy reports whether the value counts as true in a condition. False,
// nil, zero and the empty string are falsy. Functions have no truth value;
// ok is false for them.
func (v Value) Truthy() (truth, ok bool) {
	switch v.Type {
	case TypeNil:
		return false, true
	case TypeBool:
		return v.Bool(), true
	case TypeNumber:
		return v.Num() != 0, true
	case TypeString:
		return v.Str() != "", true
	default:
		return false, false
	}
}

func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case TypeNumber:
		return strconv.FormatFloat(v.Num(), 'g', -1, 64)
	case TypeString:
		return v.Str()
	case TypeFunction:
		if fn := v.Function(); fn != nil && fn.Name != "" {
			return "<fn " + fn.Name + ">"
		}
		return "<fn>"
	default:
		return "<unknown>"
	}
}
