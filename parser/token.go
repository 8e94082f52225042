package parser

import "github.com/sergev/rlang/ast"

// TokenType enumerates lexical categories recognised by the rl lexer.
type TokenType int

const (
	tokenEOF TokenType = iota
	tokenIllegal

	tokenIdentifier
	tokenNumber
	tokenString

	// Keywords
	tokenAnd
	tokenElse
	tokenFalse
	tokenFn
	tokenFor
	tokenIf
	tokenNil
	tokenOr
	tokenPrint
	tokenReturn
	tokenTrue
	tokenVar
	tokenWhile

	// Operators and punctuation
	tokenAssign       // =
	tokenEqualEqual   // ==
	tokenBangEqual    // !=
	tokenLess         // <
	tokenLessEqual    // <=
	tokenGreater      // >
	tokenGreaterEqual // >=
	tokenPlus         // +
	tokenMinus        // -
	tokenStar         // *
	tokenSlash        // /
	tokenBang         // !

	tokenComma     // ,
	tokenSemicolon // ;
	tokenLParen    // (
	tokenRParen    // )
	tokenLBrace    // {
	tokenRBrace    // }
)

func (tt TokenType) String() string {
	switch tt {
	case tokenEOF:
		return "EOF"
	case tokenIllegal:
		return "illegal"
	case tokenIdentifier:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenAnd:
		return "and"
	case tokenElse:
		return "else"
	case tokenFalse:
		return "false"
	case tokenFn:
		return "fn"
	case tokenFor:
		return "for"
	case tokenIf:
		return "if"
	case tokenNil:
		return "nil"
	case tokenOr:
		return "or"
	case tokenPrint:
		return "print"
	case tokenReturn:
		return "return"
	case tokenTrue:
		return "true"
	case tokenVar:
		return "var"
	case tokenWhile:
		return "while"
	case tokenAssign:
		return "="
	case tokenEqualEqual:
		return "=="
	case tokenBangEqual:
		return "!="
	case tokenLess:
		return "<"
	case tokenLessEqual:
		return "<="
	case tokenGreater:
		return ">"
	case tokenGreaterEqual:
		return ">="
	case tokenPlus:
		return "+"
	case tokenMinus:
		return "-"
	case tokenStar:
		return "*"
	case tokenSlash:
		return "/"
	case tokenBang:
		return "!"
	case tokenComma:
		return ","
	case tokenSemicolon:
		return ";"
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	case tokenLBrace:
		return "{"
	case tokenRBrace:
		return "}"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type   TokenType
	Lexeme string      // raw lexeme when useful (identifiers, numbers)
	Value  interface{} // decoded literal value for strings
	Pos    ast.Position
}
