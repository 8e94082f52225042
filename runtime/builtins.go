package runtime

import (
	"time"

	"github.com/sergev/rlang/lang"
)

func installBuiltins(ev *lang.Evaluator) {
	env := ev.Global
	define := func(name string, params []string, fn lang.NativeFn) {
		env.Define(name, lang.NativeValue(name, params, fn))
	}

	define("clock", nil, builtinClock)
	define("str", []string{"value"}, builtinStr)
	define("len", []string{"value"}, builtinLen)
}

// builtinClock returns seconds since the Unix epoch.
func builtinClock(_ []lang.Value) (lang.Value, error) {
	now := float64(time.Now().UnixNano()) / float64(time.Second)
	return lang.NumberValue(now), nil
}

// builtinStr renders any value in its printed form.
func builtinStr(args []lang.Value) (lang.Value, error) {
	return lang.StringValue(args[0].String()), nil
}

// builtinLen returns the length of a string in bytes.
func builtinLen(args []lang.Value) (lang.Value, error) {
	if args[0].Type != lang.TypeString {
		return lang.Value{}, &lang.Error{
			Kind: lang.TypeMismatch,
			Op:   "len",
			Args: []lang.ValueType{args[0].Type},
		}
	}
	return lang.NumberValue(float64(len(args[0].Str()))), nil
}
