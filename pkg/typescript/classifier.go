package typescript

import (
	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

type declarationKind int

const (
	declNone declarationKind = iota
	declInterface
	declType
	declEnum
	declDeclare
)

// Contextual words that may start a declaration statement. They stay
// ordinary identifiers everywhere else.
var declarationKeywords = map[string]declarationKind{
	"interface": declInterface,
	"type":      declType,
	"enum":      declEnum,
	"declare":   declDeclare,
}

type typeOperator int

const (
	opNone typeOperator = iota
	opTypeof
	opKeyof
	opInfer
)

var typeOperators = map[string]typeOperator{
	"typeof": opTypeof,
	"keyof":  opKeyof,
	"infer":  opInfer,
}

// isTypeKeyword reports whether the current token names a keyword type.
// void and null are reserved words in the host and arrive with their own
// token types.
func (g *Plugin) isTypeKeyword() bool {
	tok := g.h.Cur()
	switch tok.Type {
	case lexer.VOID, lexer.NULL:
		return true
	case lexer.IDENT:
		_, ok := ast.TypeKeywords[tok.Literal]
		return ok
	}
	return false
}

func (g *Plugin) isContextual(word string) bool {
	tok := g.h.Cur()
	return tok.Type == lexer.IDENT && tok.Literal == word
}

func (g *Plugin) operatorAt() typeOperator {
	tok := g.h.Cur()
	if tok.Type != lexer.IDENT {
		return opNone
	}
	return typeOperators[tok.Literal]
}

// --- Angle brackets ---

// isAngle reports whether the current token's text starts with c. The host
// lexes "<=", "<<", ">>", ">>>=" and friends as single tokens; in type
// positions only their first character matters.
func (g *Plugin) isAngle(c byte) bool {
	lit := g.h.Cur().Literal
	return len(lit) > 0 && lit[0] == c
}

// eatAngle consumes one angle character if the current token starts with c.
func (g *Plugin) eatAngle(c byte) (bool, error) {
	if !g.isAngle(c) {
		return false, nil
	}
	return true, g.h.SplitAngle()
}

// --- Object-like members ---

type memberKind int

const (
	memberInvalid memberKind = iota
	memberMethod
	memberProperty
)

// classifyMember decides what follows a member key in a type literal or
// interface body.
func (g *Plugin) classifyMember() memberKind {
	switch g.h.Cur().Type {
	case lexer.LPAREN:
		return memberMethod
	case lexer.COLON, lexer.SEMICOLON, lexer.COMMA, lexer.RBRACE:
		return memberProperty
	}
	if g.isAngle('<') {
		return memberMethod
	}
	if g.h.HasLineBreak(g.h.LastTokEnd(), g.h.Cur().StartPos) {
		return memberProperty
	}
	return memberInvalid
}
