package lang

import "fmt"

// applyBinary implements the rl binary operator table. Arithmetic and
// ordering are defined on numbers, concatenation and ordering on strings,
// "+" additionally appends a number to a string, and equality is defined
// for every pair of types.
func applyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return BoolValue(left.Equal(right)), nil
	case "!=":
		return BoolValue(!left.Equal(right)), nil
	}

	switch {
	case left.Type == TypeNumber && right.Type == TypeNumber:
		return applyNumeric(op, left.Num(), right.Num())
	case left.Type == TypeString && right.Type == TypeString:
		return applyString(op, left.Str(), right.Str())
	case left.Type == TypeString && right.Type == TypeNumber && op == "+":
		return StringValue(left.Str() + NumberValue(right.Num()).String()), nil
	default:
		return Value{}, typeMismatch(op, left.Type, right.Type)
	}
}

func applyNumeric(op string, x, y float64) (Value, error) {
	switch op {
	case "+":
		return NumberValue(x + y), nil
	case "-":
		return NumberValue(x - y), nil
	case "*":
		return NumberValue(x * y), nil
	case "/":
		return NumberValue(x / y), nil
	case "<":
		return BoolValue(x < y), nil
	case "<=":
		return BoolValue(x <= y), nil
	case ">":
		return BoolValue(x > y), nil
	case ">=":
		return BoolValue(x >= y), nil
	default:
		return Value{}, fmt.Errorf("unhandled binary operator %s", op)
	}
}

func applyString(op string, x, y string) (Value, error) {
	switch op {
	case "+":
		return StringValue(x + y), nil
	case "<":
		return BoolValue(x < y), nil
	case "<=":
		return BoolValue(x <= y), nil
	case ">":
		return BoolValue(x > y), nil
	case ">=":
		return BoolValue(x >= y), nil
	default:
		return Value{}, typeMismatch(op, TypeString, TypeString)
	}
}
