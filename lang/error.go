package lang

import "fmt"

// ErrorKind enumerates the evaluation failure categories.
type ErrorKind int

const (
	// UndefinedVariable: a name was read or assigned with no binding
	// anywhere on the environment chain.
	UndefinedVariable ErrorKind = iota
	// NotCallable: a call expression's callee is not a function.
	NotCallable
	// ArityMismatch: a call supplied the wrong number of arguments.
	ArityMismatch
	// TypeMismatch: an operator was applied to operands of unsupported
	// types.
	TypeMismatch
)

// Error is a structured evaluation error. Every evaluation failure is one
// of the four kinds; the evaluator never coerces or substitutes defaults.
type Error struct {
	Kind ErrorKind
	Name string    // variable name for UndefinedVariable
	Op   string    // operator for TypeMismatch
	Want int       // expected argument count for ArityMismatch
	Got  int       // supplied argument count for ArityMismatch
	Val  ValueType // offending value type for NotCallable
	Args []ValueType
}

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable: %s", e.Name)
	case NotCallable:
		return fmt.Sprintf("value of type %s is not callable", e.Val)
	case ArityMismatch:
		return fmt.Sprintf("expected %d arguments, got %d", e.Want, e.Got)
	case TypeMismatch:
		if len(e.Args) == 2 {
			return fmt.Sprintf("operator %s is not defined for %s and %s", e.Op, e.Args[0], e.Args[1])
		}
		if len(e.Args) == 1 {
			return fmt.Sprintf("operator %s is not defined for %s", e.Op, e.Args[0])
		}
		return fmt.Sprintf("operator %s applied to invalid operands", e.Op)
	default:
		return "evaluation error"
	}
}

func undefinedVariable(name string) *Error {
	return &Error{Kind: UndefinedVariable, Name: name}
}

func notCallable(v Value) *Error {
	return &Error{Kind: NotCallable, Val: v.Type}
}

func arityMismatch(want, got int) *Error {
	return &Error{Kind: ArityMismatch, Want: want, Got: got}
}

func typeMismatch(op string, args ...ValueType) *Error {
	return &Error{Kind: TypeMismatch, Op: op, Args: args}
}
