package ast

import (
	"strconv"
	"strings"
)

// Print renders a node as a parenthesised form, mainly for tests and
// debugging. The rendering is deterministic for any given tree.
func Print(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// PrintProgram renders every statement of a program, one per line.
func PrintProgram(prog *Program) string {
	var lines []string
	for _, stmt := range prog.Stmts {
		lines = append(lines, Print(stmt))
	}
	return strings.Join(lines, "\n")
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *VarStmt:
		b.WriteString("(var ")
		b.WriteString(n.Name)
		if n.Init != nil {
			b.WriteString(" ")
			writeNode(b, n.Init)
		}
		b.WriteString(")")
	case *FnStmt:
		b.WriteString("(fn ")
		b.WriteString(n.Name)
		writeParams(b, n.Params)
		writeBody(b, n.Body)
		b.WriteString(")")
	case *ExprStmt:
		writeNode(b, n.Expr)
	case *PrintStmt:
		b.WriteString("(print ")
		writeNode(b, n.Expr)
		b.WriteString(")")
	case *BlockStmt:
		b.WriteString("(block")
		writeBody(b, n.Stmts)
		b.WriteString(")")
	case *IfStmt:
		b.WriteString("(if ")
		writeNode(b, n.Cond)
		b.WriteString(" ")
		writeNode(b, n.Then)
		if n.Else != nil {
			b.WriteString(" ")
			writeNode(b, n.Else)
		}
		b.WriteString(")")
	case *WhileStmt:
		b.WriteString("(while ")
		writeNode(b, n.Cond)
		b.WriteString(" ")
		writeNode(b, n.Body)
		b.WriteString(")")
	case *ForStmt:
		b.WriteString("(for")
		if n.Init != nil {
			b.WriteString(" ")
			writeNode(b, n.Init)
		}
		if n.Cond != nil {
			b.WriteString(" ")
			writeNode(b, n.Cond)
		}
		if n.Post != nil {
			b.WriteString(" ")
			writeNode(b, n.Post)
		}
		b.WriteString(" ")
		writeNode(b, n.Body)
		b.WriteString(")")
	case *ReturnStmt:
		if n.Result == nil {
			b.WriteString("(return)")
			return
		}
		b.WriteString("(return ")
		writeNode(b, n.Result)
		b.WriteString(")")
	case *NumberExpr:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringExpr:
		b.WriteString(strconv.Quote(n.Value))
	case *BoolExpr:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *NilExpr:
		b.WriteString("nil")
	case *VariableExpr:
		b.WriteString(n.Name)
	case *AssignExpr:
		b.WriteString("(= ")
		b.WriteString(n.Name)
		b.WriteString(" ")
		writeNode(b, n.Value)
		b.WriteString(")")
	case *UnaryExpr:
		b.WriteString("(")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeNode(b, n.Right)
		b.WriteString(")")
	case *BinaryExpr:
		b.WriteString("(")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeNode(b, n.Left)
		b.WriteString(" ")
		writeNode(b, n.Right)
		b.WriteString(")")
	case *LogicalExpr:
		b.WriteString("(")
		b.WriteString(n.Op)
		b.WriteString(" ")
		writeNode(b, n.Left)
		b.WriteString(" ")
		writeNode(b, n.Right)
		b.WriteString(")")
	case *GroupingExpr:
		b.WriteString("(group ")
		writeNode(b, n.Expr)
		b.WriteString(")")
	case *CallExpr:
		b.WriteString("(call ")
		writeNode(b, n.Callee)
		for _, arg := range n.Args {
			b.WriteString(" ")
			writeNode(b, arg)
		}
		b.WriteString(")")
	case *FnExpr:
		b.WriteString("(fn")
		writeParams(b, n.Params)
		writeBody(b, n.Body)
		b.WriteString(")")
	default:
		b.WriteString("<unknown>")
	}
}

func writeParams(b *strings.Builder, params []string) {
	b.WriteString(" (")
	b.WriteString(strings.Join(params, " "))
	b.WriteString(")")
}

func writeBody(b *strings.Builder, stmts []Stmt) {
	for _, stmt := range stmts {
		b.WriteString(" ")
		writeNode(b, stmt)
	}
}
