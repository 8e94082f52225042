package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sergev/rlang/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("test", src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return prog
}

// diffAST compares two trees ignoring source positions.
func diffAST(got, want interface{}) string {
	return cmp.Diff(want, got, cmpopts.IgnoreTypes(ast.Position{}))
}

func TestParseFnDecl(t *testing.T) {
	src := `
fn fact(n) {
	if (n == 0) {
		return 1;
	}
	return n * fact(n - 1);
}
`
	prog := mustParse(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	fn, ok := prog.Stmts[0].(*ast.FnStmt)
	if !ok {
		t.Fatalf("expected FnStmt, got %T", prog.Stmts[0])
	}
	if fn.Name != "fact" {
		t.Fatalf("expected function name fact, got %s", fn.Name)
	}
	if len(fn.Params) != 1 || fn.Params[0] != "n" {
		t.Fatalf("expected single parameter n, got %v", fn.Params)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements in body, got %d", len(fn.Body))
	}
	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected first statement to be IfStmt, got %T", fn.Body[0])
	}
	then, ok := ifStmt.Then.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected then-branch to be a block, got %T", ifStmt.Then)
	}
	if _, ok := then.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expected then-branch to contain ReturnStmt, got %T", then.Stmts[0])
	}
}

func TestParseVarAndAssignment(t *testing.T) {
	prog := mustParse(t, "var i = 0; i = i + 1;")
	want := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.VarStmt{
				Name: "i",
				Init: &ast.NumberExpr{Value: 0},
			},
			&ast.ExprStmt{
				Expr: &ast.AssignExpr{
					Name: "i",
					Value: &ast.BinaryExpr{
						Op:    "+",
						Left:  &ast.VariableExpr{Name: "i"},
						Right: &ast.NumberExpr{Value: 1},
					},
				},
			},
		},
	}
	if diff := diffAST(prog, want); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "print 1 + 2 * 3 == 7;")
	want := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.PrintStmt{
				Expr: &ast.BinaryExpr{
					Op: "==",
					Left: &ast.BinaryExpr{
						Op:   "+",
						Left: &ast.NumberExpr{Value: 1},
						Right: &ast.BinaryExpr{
							Op:    "*",
							Left:  &ast.NumberExpr{Value: 2},
							Right: &ast.NumberExpr{Value: 3},
						},
					},
					Right: &ast.NumberExpr{Value: 7},
				},
			},
		},
	}
	if diff := diffAST(prog, want); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLogicalAndGrouping(t *testing.T) {
	prog := mustParse(t, "var ok = a or b and (c == nil);")
	want := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.VarStmt{
				Name: "ok",
				Init: &ast.LogicalExpr{
					Op:   "or",
					Left: &ast.VariableExpr{Name: "a"},
					Right: &ast.LogicalExpr{
						Op:   "and",
						Left: &ast.VariableExpr{Name: "b"},
						Right: &ast.GroupingExpr{
							Expr: &ast.BinaryExpr{
								Op:    "==",
								Left:  &ast.VariableExpr{Name: "c"},
								Right: &ast.NilExpr{},
							},
						},
					},
				},
			},
		},
	}
	if diff := diffAST(prog, want); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAnonymousFn(t *testing.T) {
	prog := mustParse(t, "var add = fn (a, b) { return a + b; };")
	varStmt, ok := prog.Stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected VarStmt, got %T", prog.Stmts[0])
	}
	fnExpr, ok := varStmt.Init.(*ast.FnExpr)
	if !ok {
		t.Fatalf("expected FnExpr initializer, got %T", varStmt.Init)
	}
	if len(fnExpr.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %v", fnExpr.Params)
	}
}

func TestParseImmediatelyInvokedFn(t *testing.T) {
	prog := mustParse(t, "fn (x) { print x; }(3);")
	exprStmt, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Stmts[0])
	}
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", exprStmt.Expr)
	}
	if _, ok := call.Callee.(*ast.FnExpr); !ok {
		t.Fatalf("expected FnExpr callee, got %T", call.Callee)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	forStmt, ok := prog.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", prog.Stmts[0])
	}
	if _, ok := forStmt.Init.(*ast.VarStmt); !ok {
		t.Fatalf("expected VarStmt init, got %T", forStmt.Init)
	}
	if forStmt.Cond == nil || forStmt.Post == nil {
		t.Fatalf("expected condition and post clauses, got %v %v", forStmt.Cond, forStmt.Post)
	}
	if _, ok := forStmt.Body.(*ast.PrintStmt); !ok {
		t.Fatalf("expected PrintStmt body, got %T", forStmt.Body)
	}
}

func TestParseForLoopEmptyClauses(t *testing.T) {
	prog := mustParse(t, "for (;;) {}")
	forStmt, ok := prog.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", prog.Stmts[0])
	}
	if forStmt.Init != nil || forStmt.Cond != nil || forStmt.Post != nil {
		t.Fatalf("expected empty clauses, got %v %v %v", forStmt.Init, forStmt.Cond, forStmt.Post)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := Parse("test", "1 + 2 = 3;")
	if err == nil || !strings.Contains(err.Error(), "invalid assignment target") {
		t.Fatalf("expected invalid assignment target error, got %v", err)
	}
}

func TestParseIncompleteInput(t *testing.T) {
	for _, src := range []string{
		"fn make() {",
		"if (x) {",
		"var s = \"open",
		"print 1 +",
	} {
		_, err := Parse("test", src)
		if err == nil {
			t.Fatalf("%q: expected error", src)
		}
		if !IsIncomplete(err) {
			t.Fatalf("%q: expected incomplete error, got %v", src, err)
		}
	}
}

func TestParseErrorHasPosition(t *testing.T) {
	_, err := Parse("test", "var = 3;")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "test:1:") {
		t.Fatalf("expected position in error, got %v", err)
	}
}
