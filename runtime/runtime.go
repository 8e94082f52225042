// Package runtime bootstraps the rl interpreter: builtins, the prelude and
// the script entry points.
package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/rlang/lang"
	"github.com/sergev/rlang/parser"
)

// NewEvaluator constructs an evaluator with the standard runtime installed:
// native builtins plus the rl-source prelude, all defined into the global
// environment.
func NewEvaluator() *lang.Evaluator {
	ev := lang.NewEvaluator()
	installBuiltins(ev)
	if err := installLibrary(ev); err != nil {
		panic(fmt.Errorf("runtime bootstrap failed: %w", err))
	}
	return ev
}

// SetArgv exposes script arguments to rl programs. rl has no list type, so
// the count is bound to argc and the values are reached through the arg(i)
// native, which yields nil for an out-of-range index.
func SetArgv(env *lang.Env, args []string) {
	env.Define("argc", lang.NumberValue(float64(len(args))))
	env.Define("arg", lang.NativeValue("arg", []string{"index"}, func(callArgs []lang.Value) (lang.Value, error) {
		if callArgs[0].Type != lang.TypeNumber {
			return lang.Value{}, &lang.Error{
				Kind: lang.TypeMismatch,
				Op:   "arg",
				Args: []lang.ValueType{callArgs[0].Type},
			}
		}
		i := int(callArgs[0].Num())
		if i < 0 || i >= len(args) {
			return lang.Nil, nil
		}
		return lang.StringValue(args[i]), nil
	}))
}

// EvaluateSource parses, resolves and runs rl source. The name appears in
// parse error messages.
func EvaluateSource(ev *lang.Evaluator, name, src string) error {
	prog, err := parser.Parse(name, src)
	if err != nil {
		return err
	}
	if err := lang.Resolve(prog); err != nil {
		return err
	}
	return ev.Run(prog, nil)
}

// EvaluateReader consumes all source from the reader and runs it.
func EvaluateReader(ev *lang.Evaluator, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return EvaluateSource(ev, name, string(data))
}

// EvaluateFile loads and executes an rl script, allowing a #! shebang line.
func EvaluateFile(ev *lang.Evaluator, path string) error {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return err
	}
	return EvaluateReader(ev, path, bytes.NewReader(data))
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

func installLibrary(ev *lang.Evaluator) error {
	for _, src := range preludeSources {
		prog, err := parser.Parse("prelude", src)
		if err != nil {
			return err
		}
		if err := ev.Run(prog, nil); err != nil {
			return err
		}
	}
	return nil
}
