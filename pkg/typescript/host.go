// Package typescript extends the host parser with the type annotation
// grammar: type expressions, generics, interface and type alias
// declarations, annotations on bindings and return positions, and `as`
// assertions.
package typescript

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
	"github.com/nooga/tsgrammar/pkg/parser"
)

// Host is what the type grammar needs from the parser it extends: the token
// cursor, node lifecycle and a few reentrant productions.
type Host interface {
	Cur() lexer.Token
	Next() error
	Eat(t lexer.TokenType) (bool, error)
	Expect(t lexer.TokenType) error
	Unexpected() error
	LastTokStart() int
	LastTokEnd() int
	// SplitAngle consumes one '<' or '>' character from the current token
	// and re-tokenizes whatever follows it.
	SplitAngle() error

	StartNode() ast.BaseNode
	StartNodeAt(pos int) ast.BaseNode
	FinishNode(b *ast.BaseNode)
	Locations() bool

	ParseIdent() (*ast.Identifier, error)
	ParseLiteral() (*ast.Literal, error)
	ParseBindingList(close lexer.TokenType) ([]ast.Pattern, error)
	ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error)
	Semicolon() error
	HasLineBreak(from, to int) bool

	Logger() *zap.Logger
}

var (
	_ Host          = (*parser.Parser)(nil)
	_ parser.Plugin = (*Plugin)(nil)
)

// Plugin implements parser.Plugin with the type grammar.
type Plugin struct {
	h   Host
	log *zap.Logger
}

// New returns the type grammar plugin bound to h. Install it with
// (*parser.Parser).Use.
func New(h Host) *Plugin {
	log := h.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	return &Plugin{h: h, log: log.Named("typescript")}
}

// Install creates a plugin for p and installs it.
func Install(p *parser.Parser) *Plugin {
	g := New(p)
	p.Use(g)
	return g
}

// --- Node helpers ---

func (g *Plugin) startAtNode(n ast.Node) ast.BaseNode {
	return g.h.StartNodeAt(n.Base().Start)
}

// widen extends b so that it ends where child ends.
func (g *Plugin) widen(b *ast.BaseNode, child *ast.BaseNode) {
	b.End = child.End
	if g.h.Locations() && b.Loc != nil && child.Loc != nil {
		b.Loc.End = child.Loc.End
	}
}
