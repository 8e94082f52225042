package ast

import "testing"

func TestPrintExpressions(t *testing.T) {
	expr := &BinaryExpr{
		Op: "*",
		Left: &UnaryExpr{
			Op:    "-",
			Right: &NumberExpr{Value: 123},
		},
		Right: &GroupingExpr{
			Expr: &NumberExpr{Value: 45.67},
		},
	}
	if got, want := Print(expr), "(* (- 123) (group 45.67))"; got != want {
		t.Fatalf("Print => %q, want %q", got, want)
	}
}

func TestPrintStatements(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{
			&VarStmt{Name: "x", Init: &NumberExpr{Value: 1}},
			"(var x 1)",
		},
		{
			&VarStmt{Name: "y"},
			"(var y)",
		},
		{
			&PrintStmt{Expr: &StringExpr{Value: "hi"}},
			`(print "hi")`,
		},
		{
			&FnStmt{
				Name:   "inc",
				Params: []string{"n"},
				Body: []Stmt{
					&ReturnStmt{Result: &BinaryExpr{
						Op:    "+",
						Left:  &VariableExpr{Name: "n"},
						Right: &NumberExpr{Value: 1},
					}},
				},
			},
			"(fn inc (n) (return (+ n 1)))",
		},
		{
			&BlockStmt{Stmts: []Stmt{
				&ExprStmt{Expr: &AssignExpr{Name: "x", Value: &BoolExpr{Value: true}}},
				&ReturnStmt{},
			}},
			"(block (= x true) (return))",
		},
		{
			&IfStmt{
				Cond: &LogicalExpr{Op: "and", Left: &VariableExpr{Name: "a"}, Right: &NilExpr{}},
				Then: &PrintStmt{Expr: &BoolExpr{Value: false}},
			},
			"(if (and a nil) (print false))",
		},
		{
			&WhileStmt{
				Cond: &BinaryExpr{Op: "<", Left: &VariableExpr{Name: "i"}, Right: &NumberExpr{Value: 3}},
				Body: &ExprStmt{Expr: &CallExpr{
					Callee: &VariableExpr{Name: "step"},
					Args:   []Expr{&VariableExpr{Name: "i"}},
				}},
			},
			"(while (< i 3) (call step i))",
		},
	}
	for _, c := range cases {
		if got := Print(c.node); got != c.want {
			t.Fatalf("Print => %q, want %q", got, c.want)
		}
	}
}

func TestPrintProgram(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&VarStmt{Name: "x", Init: &NumberExpr{Value: 2}},
		&PrintStmt{Expr: &VariableExpr{Name: "x"}},
	}}
	want := "(var x 2)\n(print x)"
	if got := PrintProgram(prog); got != want {
		t.Fatalf("PrintProgram => %q, want %q", got, want)
	}
}

func TestPrintAnonymousFn(t *testing.T) {
	expr := &FnExpr{
		Params: []string{"a", "b"},
		Body: []Stmt{
			&ReturnStmt{Result: &BinaryExpr{
				Op:    "+",
				Left:  &VariableExpr{Name: "a"},
				Right: &VariableExpr{Name: "b"},
			}},
		},
	}
	if got, want := Print(expr), "(fn (a b) (return (+ a b)))"; got != want {
		t.Fatalf("Print => %q, want %q", got, want)
	}
}
