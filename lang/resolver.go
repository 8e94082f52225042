package lang

import (
	"fmt"

	"github.com/sergev/rlang/ast"
)

// Resolve statically checks a parsed program before evaluation. It tracks
// local scopes and rejects reading a variable in its own initializer and
// return statements outside any function. Names that only resolve at the
// global scope are left to the environment chain at run time.
func Resolve(prog *ast.Program) error {
	r := &resolver{}
	for _, stmt := range prog.Stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

type resolver struct {
	scopes  []map[string]bool // name -> fully defined
	fnDepth int
}

func (r *resolver) resolveStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			if err := r.resolveExpr(s.Init); err != nil {
				return err
			}
		}
		r.define(s.Name)
		return nil
	case *ast.FnStmt:
		r.declare(s.Name)
		r.define(s.Name)
		return r.resolveFunction(s.Params, s.Body)
	case *ast.ExprStmt:
		return r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		return r.resolveExpr(s.Expr)
	case *ast.BlockStmt:
		r.beginScope()
		defer r.endScope()
		return r.resolveStmts(s.Stmts)
	case *ast.IfStmt:
		if err := r.resolveExpr(s.Cond); err != nil {
			return err
		}
		if err := r.resolveStmt(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStmt(s.Else)
		}
		return nil
	case *ast.WhileStmt:
		if err := r.resolveExpr(s.Cond); err != nil {
			return err
		}
		return r.resolveStmt(s.Body)
	case *ast.ForStmt:
		r.beginScope()
		defer r.endScope()
		if s.Init != nil {
			if err := r.resolveStmt(s.Init); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			if err := r.resolveExpr(s.Cond); err != nil {
				return err
			}
		}
		if s.Post != nil {
			if err := r.resolveExpr(s.Post); err != nil {
				return err
			}
		}
		return r.resolveStmt(s.Body)
	case *ast.ReturnStmt:
		if r.fnDepth == 0 {
			return fmt.Errorf("line %d: return outside function", s.Posn.Line)
		}
		if s.Result != nil {
			return r.resolveExpr(s.Result)
		}
		return nil
	default:
		return fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.NumberExpr, *ast.StringExpr, *ast.BoolExpr, *ast.NilExpr:
		return nil
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			scope := r.scopes[len(r.scopes)-1]
			if defined, present := scope[e.Name]; present && !defined {
				return fmt.Errorf("line %d: cannot read local variable %s in its own initializer", e.Posn.Line, e.Name)
			}
		}
		return nil
	case *ast.AssignExpr:
		return r.resolveExpr(e.Value)
	case *ast.GroupingExpr:
		return r.resolveExpr(e.Expr)
	case *ast.UnaryExpr:
		return r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)
	case *ast.CallExpr:
		if err := r.resolveExpr(e.Callee); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.FnExpr:
		return r.resolveFunction(e.Params, e.Body)
	default:
		return fmt.Errorf("unhandled expression %T", expr)
	}
}

func (r *resolver) resolveFunction(params []string, body []ast.Stmt) error {
	r.fnDepth++
	r.beginScope()
	defer func() {
		r.endScope()
		r.fnDepth--
	}()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	return r.resolveStmts(body)
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}
