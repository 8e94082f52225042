package lang

import (
	"fmt"
	"io"
	"os"

	"github.com/sergev/rlang/ast"
)

// Evaluator executes rl programs. Each evaluator owns its environment tree;
// independent evaluators share no state and may run in separate goroutines.
type Evaluator struct {
	Global *Env
	Stdout io.Writer // sink for print statements
}

// NewEvaluator constructs an evaluator rooted at a new global environment,
// printing to standard output.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Global: NewEnv(nil),
		Stdout: os.Stdout,
	}
}

// Run executes every statement of the program against env (the global
// environment when env is nil). Execution stops at the first error.
func (ev *Evaluator) Run(prog *ast.Program, env *Env) error {
	if env == nil {
		env = ev.Global
	}
	for _, stmt := range prog.Stmts {
		if err := ev.execStmt(stmt, env); err != nil {
			if _, ok := err.(*returnControl); ok {
				return fmt.Errorf("return outside function")
			}
			return err
		}
	}
	return nil
}

// returnControl carries a return value up through nested statements to the
// enclosing call. It travels the error channel but is unwound at every call
// boundary, so it never surfaces as an evaluation error.
type returnControl struct {
	value Value
}

func (*returnControl) Error() string { return "return" }

func (ev *Evaluator) execStmt(stmt ast.Stmt, env *Env) error {
	switch s := stmt.(type) {
	case *ast.VarStmt:
		value := Nil
		if s.Init != nil {
			val, err := ev.evalExpr(s.Init, env)
			if err != nil {
				return err
			}
			value = val
		}
		env.Define(s.Name, value)
		return nil
	case *ast.FnStmt:
		// The closure environment is the one active right here; the
		// function's own name is defined into it so the body can
		// recurse and "return name;" in an outer fn yields this value.
		fn := &Function{
			Name:   s.Name,
			Params: s.Params,
			Body:   s.Body,
			Env:    env,
		}
		env.Define(s.Name, FunctionValue(fn))
		return nil
	case *ast.ExprStmt:
		_, err := ev.evalExpr(s.Expr, env)
		return err
	case *ast.PrintStmt:
		val, err := ev.evalExpr(s.Expr, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(ev.Stdout, val.String())
		return nil
	case *ast.BlockStmt:
		block := NewEnv(env)
		for _, inner := range s.Stmts {
			if err := ev.execStmt(inner, block); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStmt:
		truth, err := ev.evalCondition("if", s.Cond, env)
		if err != nil {
			return err
		}
		if truth {
			return ev.execStmt(s.Then, env)
		}
		if s.Else != nil {
			return ev.execStmt(s.Else, env)
		}
		return nil
	case *ast.WhileStmt:
		for {
			truth, err := ev.evalCondition("while", s.Cond, env)
			if err != nil {
				return err
			}
			if !truth {
				return nil
			}
			if err := ev.execStmt(s.Body, env); err != nil {
				return err
			}
		}
	case *ast.ForStmt:
		// The init clause scopes to the loop, not the surrounding block.
		loop := NewEnv(env)
		if s.Init != nil {
			if err := ev.execStmt(s.Init, loop); err != nil {
				return err
			}
		}
		for {
			if s.Cond != nil {
				truth, err := ev.evalCondition("for", s.Cond, loop)
				if err != nil {
					return err
				}
				if !truth {
					return nil
				}
			}
			if err := ev.execStmt(s.Body, loop); err != nil {
				return err
			}
			if s.Post != nil {
				if _, err := ev.evalExpr(s.Post, loop); err != nil {
					return err
				}
			}
		}
	case *ast.ReturnStmt:
		value := Nil
		if s.Result != nil {
			val, err := ev.evalExpr(s.Result, env)
			if err != nil {
				return err
			}
			value = val
		}
		return &returnControl{value: value}
	default:
		return fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (ev *Evaluator) evalExpr(expr ast.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return NumberValue(e.Value), nil
	case *ast.StringExpr:
		return StringValue(e.Value), nil
	case *ast.BoolExpr:
		return BoolValue(e.Value), nil
	case *ast.NilExpr:
		return Nil, nil
	case *ast.VariableExpr:
		return env.Get(e.Name)
	case *ast.AssignExpr:
		val, err := ev.evalExpr(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		if err := env.Assign(e.Name, val); err != nil {
			return Value{}, err
		}
		return val, nil
	case *ast.GroupingExpr:
		return ev.evalExpr(e.Expr, env)
	case *ast.UnaryExpr:
		return ev.evalUnary(e, env)
	case *ast.LogicalExpr:
		return ev.evalLogical(e, env)
	case *ast.BinaryExpr:
		left, err := ev.evalExpr(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := ev.evalExpr(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return applyBinary(e.Op, left, right)
	case *ast.CallExpr:
		return ev.evalCall(e, env)
	case *ast.FnExpr:
		fn := &Function{
			Params: e.Params,
			Body:   e.Body,
			Env:    env,
		}
		return FunctionValue(fn), nil
	default:
		return Value{}, fmt.Errorf("unhandled expression %T", expr)
	}
}

func (ev *Evaluator) evalCondition(op string, expr ast.Expr, env *Env) (bool, error) {
	val, err := ev.evalExpr(expr, env)
	if err != nil {
		return false, err
	}
	truth, ok := val.Truthy()
	if !ok {
		return false, typeMismatch(op, val.Type)
	}
	return truth, nil
}

func (ev *Evaluator) evalUnary(e *ast.UnaryExpr, env *Env) (Value, error) {
	val, err := ev.evalExpr(e.Right, env)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case "-":
		if val.Type != TypeNumber {
			return Value{}, typeMismatch("-", val.Type)
		}
		return NumberValue(-val.Num()), nil
	case "!":
		truth, ok := val.Truthy()
		if !ok {
			return Value{}, typeMismatch("!", val.Type)
		}
		return BoolValue(!truth), nil
	default:
		return Value{}, fmt.Errorf("unhandled unary operator %s", e.Op)
	}
}

// evalLogical short-circuits and yields the deciding operand's value.
func (ev *Evaluator) evalLogical(e *ast.LogicalExpr, env *Env) (Value, error) {
	left, err := ev.evalExpr(e.Left, env)
	if err != nil {
		return Value{}, err
	}
	truth, ok := left.Truthy()
	if !ok {
		return Value{}, typeMismatch(e.Op, left.Type)
	}
	if e.Op == "or" {
		if truth {
			return left, nil
		}
	} else {
		if !truth {
			return left, nil
		}
	}
	return ev.evalExpr(e.Right, env)
}

func (ev *Evaluator) evalCall(e *ast.CallExpr, env *Env) (Value, error) {
	callee, err := ev.evalExpr(e.Callee, env)
	if err != nil {
		return Value{}, err
	}
	if callee.Type != TypeFunction {
		return Value{}, notCallable(callee)
	}
	args := make([]Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := ev.evalExpr(argExpr, env)
		if err != nil {
			return Value{}, err
		}
		args = append(args, arg)
	}
	return ev.Call(callee.Function(), args)
}

// Call invokes a function value with already-evaluated arguments. Each call
// creates a fresh frame parented to the environment the function captured
// at definition time, never to the call site.
func (ev *Evaluator) Call(fn *Function, args []Value) (Value, error) {
	if len(args) != fn.Arity() {
		return Value{}, arityMismatch(fn.Arity(), len(args))
	}
	if fn.Native != nil {
		return fn.Native(args)
	}
	frame := NewEnv(fn.Env)
	for i, param := range fn.Params {
		frame.Define(param, args[i])
	}
	for _, stmt := range fn.Body {
		if err := ev.execStmt(stmt, frame); err != nil {
			if ret, ok := err.(*returnControl); ok {
				return ret.value, nil
			}
			return Value{}, err
		}
	}
	return Nil, nil
}
