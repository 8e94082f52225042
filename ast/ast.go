// Package ast defines the syntax tree shared by the parser and the evaluator.
package ast

// Position tracks a source location within an rl source file.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

// Node represents any AST node with a source position.
type Node interface {
	Pos() Position
}

// Program is the root of a parsed rl script.
type Program struct {
	Stmts []Stmt
}

// Stmt represents a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}

// VarStmt declares a mutable binding, optionally initialised.
type VarStmt struct {
	Name string
	Init Expr // may be nil
	Posn Position
}

func (s *VarStmt) Pos() Position { return s.Posn }
func (*VarStmt) stmtNode()       {}

// FnStmt introduces a named function in the current scope.
type FnStmt struct {
	Name   string
	Params []string
	Body   []Stmt
	Posn   Position
}

func (s *FnStmt) Pos() Position { return s.Posn }
func (*FnStmt) stmtNode()       {}

// ExprStmt evaluates an expression for side-effects.
type ExprStmt struct {
	Expr Expr
	Posn Position
}

func (s *ExprStmt) Pos() Position { return s.Posn }
func (*ExprStmt) stmtNode()       {}

// PrintStmt writes the textual form of its expression to the output sink.
type PrintStmt struct {
	Expr Expr
	Posn Position
}

func (s *PrintStmt) Pos() Position { return s.Posn }
func (*PrintStmt) stmtNode()       {}

// BlockStmt is a braced block introducing a new scope.
type BlockStmt struct {
	Stmts []Stmt
	Posn  Position
}

func (s *BlockStmt) Pos() Position { return s.Posn }
func (*BlockStmt) stmtNode()       {}

// IfStmt conditionally executes branches.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
	Posn Position
}

func (s *IfStmt) Pos() Position { return s.Posn }
func (*IfStmt) stmtNode()       {}

// WhileStmt repeats its body while the condition is truthy.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Posn Position
}

func (s *WhileStmt) Pos() Position { return s.Posn }
func (*WhileStmt) stmtNode()       {}

// ForStmt is the C-style loop; every clause is optional.
type ForStmt struct {
	Init Stmt // may be nil; VarStmt or ExprStmt
	Cond Expr // may be nil, meaning true
	Post Expr // may be nil
	Body Stmt
	Posn Position
}

func (s *ForStmt) Pos() Position { return s.Posn }
func (*ForStmt) stmtNode()       {}

// ReturnStmt exits the current function, optionally with a value.
type ReturnStmt struct {
	Result Expr // may be nil
	Posn   Position
}

func (s *ReturnStmt) Pos() Position { return s.Posn }
func (*ReturnStmt) stmtNode()       {}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value float64
	Posn  Position
}

func (e *NumberExpr) Pos() Position { return e.Posn }
func (*NumberExpr) exprNode()       {}

// StringExpr is a double-quoted string literal.
type StringExpr struct {
	Value string
	Posn  Position
}

func (e *StringExpr) Pos() Position { return e.Posn }
func (*StringExpr) exprNode()       {}

// BoolExpr is a boolean literal.
type BoolExpr struct {
	Value bool
	Posn  Position
}

func (e *BoolExpr) Pos() Position { return e.Posn }
func (*BoolExpr) exprNode()       {}

// NilExpr is the nil literal.
type NilExpr struct {
	Posn Position
}

func (e *NilExpr) Pos() Position { return e.Posn }
func (*NilExpr) exprNode()       {}

// VariableExpr refers to a binding by name.
type VariableExpr struct {
	Name string
	Posn Position
}

func (e *VariableExpr) Pos() Position { return e.Posn }
func (*VariableExpr) exprNode()       {}

// AssignExpr mutates the nearest enclosing binding of Name.
type AssignExpr struct {
	Name  string
	Value Expr
	Posn  Position
}

func (e *AssignExpr) Pos() Position { return e.Posn }
func (*AssignExpr) exprNode()       {}

// UnaryExpr represents prefix operator application ("-" or "!").
type UnaryExpr struct {
	Op    string
	Right Expr
	Posn  Position
}

func (e *UnaryExpr) Pos() Position { return e.Posn }
func (*UnaryExpr) exprNode()       {}

// BinaryExpr represents infix operator application.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
	Posn        Position
}

func (e *BinaryExpr) Pos() Position { return e.Posn }
func (*BinaryExpr) exprNode()       {}

// LogicalExpr represents short-circuiting "and" / "or".
type LogicalExpr struct {
	Op          string
	Left, Right Expr
	Posn        Position
}

func (e *LogicalExpr) Pos() Position { return e.Posn }
func (*LogicalExpr) exprNode()       {}

// GroupingExpr is a parenthesised expression.
type GroupingExpr struct {
	Expr Expr
	Posn Position
}

func (e *GroupingExpr) Pos() Position { return e.Posn }
func (*GroupingExpr) exprNode()       {}

// CallExpr invokes an expression with arguments.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Posn   Position
}

func (e *CallExpr) Pos() Position { return e.Posn }
func (*CallExpr) exprNode()       {}

// FnExpr is an anonymous function literal.
type FnExpr struct {
	Params []string
	Body   []Stmt
	Posn   Position
}

func (e *FnExpr) Pos() Position { return e.Posn }
func (*FnExpr) exprNode()       {}
