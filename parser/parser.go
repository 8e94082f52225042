package parser

import (
	"fmt"
	"strconv"

	"github.com/sergev/rlang/ast"
)

// Parse translates source text into a Program AST. The name is used in
// error messages only.
func Parse(name, src string) (*ast.Program, error) {
	p := &parser{
		name: name,
		lx:   newLexer(src),
	}
	if err := p.advance(); err != nil {
		return nil, wrapError(err)
	}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, wrapError(err)
	}
	return prog, nil
}

type parser struct {
	name    string
	lx      *lexer
	curr    Token
	peekTok Token
	hasPeek bool
}

func (p *parser) advance() error {
	if p.hasPeek {
		p.curr = p.peekTok
		p.hasPeek = false
		return nil
	}
	tok, err := p.lx.nextToken()
	if err != nil {
		return err
	}
	p.curr = tok
	return nil
}

func (p *parser) peek() (Token, error) {
	if !p.hasPeek {
		tok, err := p.lx.nextToken()
		if err != nil {
			return Token{}, err
		}
		p.peekTok = tok
		p.hasPeek = true
	}
	return p.peekTok, nil
}

func (p *parser) expect(tt TokenType) (Token, error) {
	if p.curr.Type != tt {
		return Token{}, p.errorAt(p.curr, "expected %s, found %s", tt, p.curr.Type)
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	var stmts []ast.Stmt
	for p.curr.Type != tokenEOF {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Stmts: stmts}, nil
}

func (p *parser) parseDeclaration() (ast.Stmt, error) {
	switch p.curr.Type {
	case tokenVar:
		return p.parseVarDecl()
	case tokenFn:
		// "fn name(" declares a function; "fn (" starts a function
		// literal inside an expression statement.
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == tokenIdentifier {
			return p.parseFnDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseVarDecl() (ast.Stmt, error) {
	varTok, err := p.expect(tokenVar)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(tokenIdentifier)
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.curr.Type == tokenAssign {
		if _, err := p.expect(tokenAssign); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init = value
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.VarStmt{
		Name: nameTok.Lexeme,
		Init: init,
		Posn: varTok.Pos,
	}, nil
}

func (p *parser) parseFnDecl() (ast.Stmt, error) {
	fnTok, err := p.expect(tokenFn)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(tokenIdentifier)
	if err != nil {
		return nil, err
	}
	params, body, err := p.parseFnRest()
	if err != nil {
		return nil, err
	}
	return &ast.FnStmt{
		Name:   nameTok.Lexeme,
		Params: params,
		Body:   body,
		Posn:   fnTok.Pos,
	}, nil
}

// parseFnRest parses "(params) { body }", shared by named and anonymous
// functions.
func (p *parser) parseFnRest() ([]string, []ast.Stmt, error) {
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, nil, err
	}
	params, err := p.parseParamNames()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return params, block.Stmts, nil
}

func (p *parser) parseParamNames() ([]string, error) {
	var params []string
	if p.curr.Type == tokenRParen {
		return params, nil
	}
	for {
		tok, err := p.expect(tokenIdentifier)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Lexeme)
		if p.curr.Type != tokenComma {
			break
		}
		if _, err := p.expect(tokenComma); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (p *parser) parseBlock() (*ast.BlockStmt, error) {
	braceTok, err := p.expect(tokenLBrace)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.curr.Type != tokenRBrace && p.curr.Type != tokenEOF {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if p.curr.Type != tokenRBrace {
		return nil, newIncompleteError(p.errorAt(p.curr, "expected } to close block"))
	}
	if _, err := p.expect(tokenRBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{
		Stmts: stmts,
		Posn:  braceTok.Pos,
	}, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch p.curr.Type {
	case tokenPrint:
		return p.parsePrintStmt()
	case tokenReturn:
		return p.parseReturnStmt()
	case tokenIf:
		return p.parseIfStmt()
	case tokenWhile:
		return p.parseWhileStmt()
	case tokenFor:
		return p.parseForStmt()
	case tokenLBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parsePrintStmt() (ast.Stmt, error) {
	printTok, err := p.expect(tokenPrint)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{
		Expr: expr,
		Posn: printTok.Pos,
	}, nil
}

func (p *parser) parseReturnStmt() (ast.Stmt, error) {
	retTok, err := p.expect(tokenReturn)
	if err != nil {
		return nil, err
	}
	var result ast.Expr
	if p.curr.Type != tokenSemicolon {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		result = expr
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{
		Result: result,
		Posn:   retTok.Pos,
	}, nil
}

func (p *parser) parseIfStmt() (ast.Stmt, error) {
	ifTok, err := p.expect(tokenIf)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.curr.Type == tokenElse {
		if _, err := p.expect(tokenElse); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		elseStmt = stmt
	}
	return &ast.IfStmt{
		Cond: cond,
		Then: then,
		Else: elseStmt,
		Posn: ifTok.Pos,
	}, nil
}

func (p *parser) parseWhileStmt() (ast.Stmt, error) {
	whTok, err := p.expect(tokenWhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{
		Cond: cond,
		Body: body,
		Posn: whTok.Pos,
	}, nil
}

func (p *parser) parseForStmt() (ast.Stmt, error) {
	forTok, err := p.expect(tokenFor)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var init ast.Stmt
	switch p.curr.Type {
	case tokenSemicolon:
		if _, err := p.expect(tokenSemicolon); err != nil {
			return nil, err
		}
	case tokenVar:
		stmt, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		init = stmt
	default:
		stmt, err := p.parseExprStmt()
		if err != nil {
			return nil, err
		}
		init = stmt
	}

	var cond ast.Expr
	if p.curr.Type != tokenSemicolon {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cond = expr
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}

	var post ast.Expr
	if p.curr.Type != tokenRParen {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		post = expr
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Init: init,
		Cond: cond,
		Post: post,
		Body: body,
		Posn: forTok.Pos,
	}, nil
}

func (p *parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{
		Expr: expr,
		Posn: expr.Pos(),
	}, nil
}

func (p *parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (ast.Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != tokenAssign {
		return expr, nil
	}
	eqTok, err := p.expect(tokenAssign)
	if err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	target, ok := expr.(*ast.VariableExpr)
	if !ok {
		return nil, p.errorAt(eqTok, "invalid assignment target")
	}
	return &ast.AssignExpr{
		Name:  target.Name,
		Value: value,
		Posn:  target.Posn,
	}, nil
}

func (p *parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenOr {
		opTok, _ := p.expect(tokenOr)
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{
			Op:    "or",
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenAnd {
		opTok, _ := p.expect(tokenAnd)
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{
			Op:    "and",
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenEqualEqual || p.curr.Type == tokenBangEqual {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:    opTok.Type.String(),
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenLess || p.curr.Type == tokenLessEqual ||
		p.curr.Type == tokenGreater || p.curr.Type == tokenGreaterEqual {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:    opTok.Type.String(),
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenPlus || p.curr.Type == tokenMinus {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:    opTok.Type.String(),
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseFactor() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenStar || p.curr.Type == tokenSlash {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:    opTok.Type.String(),
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.curr.Type == tokenBang || p.curr.Type == tokenMinus {
		opTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Op:    opTok.Type.String(),
			Right: expr,
			Posn:  opTok.Pos,
		}, nil
	}
	return p.parseCall()
}

func (p *parser) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == tokenLParen {
		callTok, _ := p.expect(tokenLParen)
		args, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		expr = &ast.CallExpr{
			Callee: expr,
			Args:   args,
			Posn:   callTok.Pos,
		}
	}
	return expr, nil
}

func (p *parser) parseArgumentList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.curr.Type == tokenRParen {
		return args, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
		if p.curr.Type != tokenComma {
			break
		}
		if _, err := p.expect(tokenComma); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	switch p.curr.Type {
	case tokenIdentifier:
		tok, err := p.expect(tokenIdentifier)
		if err != nil {
			return nil, err
		}
		return &ast.VariableExpr{
			Name: tok.Lexeme,
			Posn: tok.Pos,
		}, nil
	case tokenNumber:
		tok, err := p.expect(tokenNumber)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number literal %q", tok.Lexeme)
		}
		return &ast.NumberExpr{
			Value: value,
			Posn:  tok.Pos,
		}, nil
	case tokenString:
		tok, err := p.expect(tokenString)
		if err != nil {
			return nil, err
		}
		strVal, _ := tok.Value.(string)
		return &ast.StringExpr{
			Value: strVal,
			Posn:  tok.Pos,
		}, nil
	case tokenTrue, tokenFalse:
		tok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolExpr{
			Value: tok.Type == tokenTrue,
			Posn:  tok.Pos,
		}, nil
	case tokenNil:
		tok, err := p.expect(tokenNil)
		if err != nil {
			return nil, err
		}
		return &ast.NilExpr{Posn: tok.Pos}, nil
	case tokenFn:
		return p.parseFnExpr()
	case tokenLParen:
		lpTok, err := p.expect(tokenLParen)
		if err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{
			Expr: expr,
			Posn: lpTok.Pos,
		}, nil
	case tokenEOF:
		return nil, newIncompleteError(p.errorAt(p.curr, "unexpected end of input in expression"))
	default:
		return nil, p.errorAt(p.curr, "unexpected token %s in expression", p.curr.Type)
	}
}

func (p *parser) parseFnExpr() (ast.Expr, error) {
	fnTok, err := p.expect(tokenFn)
	if err != nil {
		return nil, err
	}
	if p.curr.Type != tokenLParen {
		return nil, p.errorAt(p.curr, "expected ( after fn")
	}
	params, body, err := p.parseFnRest()
	if err != nil {
		return nil, err
	}
	return &ast.FnExpr{
		Params: params,
		Body:   body,
		Posn:   fnTok.Pos,
	}, nil
}

func (p *parser) errorAt(tok Token, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %s", p.name, tok.Pos.Line, tok.Pos.Column, fmt.Sprintf(format, args...))
}
