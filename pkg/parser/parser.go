package parser

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/errors"
	"github.com/nooga/tsgrammar/pkg/lexer"
	"github.com/nooga/tsgrammar/pkg/source"
)

// Options configures a Parser.
type Options struct {
	// Locations enables line/column tracking on every node. When false no
	// line information is computed at all.
	Locations bool
	// Logger receives debug traces; nil means zap.NewNop().
	Logger *zap.Logger
}

// Plugin is called by the host grammar at its extension points. Every hook
// has a default behaviour on Parser; a plugin that does not want to change
// a hook delegates back to the Parser method of the same name.
type Plugin interface {
	// ParseExpressionStatement finishes a statement whose leading
	// expression has been parsed. start is the statement's start offset.
	ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error)
	// ParseBindingAtom post-processes a freshly parsed binding atom.
	ParseBindingAtom(atom ast.Pattern) (ast.Pattern, error)
	// ParseFunctionBody runs after a function's parameter list, right
	// before its body block.
	ParseFunctionBody(fn *ast.Function) error
	// ParseExpression post-processes a comma-level expression.
	// parenthesized reports whether it began with '('.
	ParseExpression(expr ast.Expression, parenthesized bool, parenStart int) (ast.Expression, error)
	// ParseParenItem post-processes each item of a parenthesized list.
	ParseParenItem(item ast.Expression) (ast.Expression, error)
}

// Parser is a recursive-descent parser for the host scripting language.
// It keeps exactly one token of lookahead. A Parser is not safe for
// concurrent use.
type Parser struct {
	l      *lexer.Lexer
	source *source.SourceFile
	opts   Options
	logger *zap.Logger
	plugin Plugin

	cur          lexer.Token
	lastTokStart int
	lastTokEnd   int
}

// NewParser creates a new Parser reading from l. The first token is read
// lazily by ParseProgram so that lexer errors surface as parse errors.
func NewParser(l *lexer.Lexer, opts Options) *Parser {
	p := &Parser{
		l:      l,
		source: l.GetSource(),
		opts:   opts,
		logger: opts.Logger,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	p.plugin = defaultPlugin{p}
	return p
}

// Use installs a grammar plugin. Passing nil restores the plain host
// grammar.
func (p *Parser) Use(plugin Plugin) {
	if plugin == nil {
		plugin = defaultPlugin{p}
	}
	p.plugin = plugin
}

// ParseProgram parses the entire input. The first syntax error aborts the
// parse and is returned as *errors.SyntaxError.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{SourceType: "script", Body: []ast.Statement{}}
	program.BaseNode = p.StartNodeAt(0)
	if err := p.Next(); err != nil {
		return nil, err
	}
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}
	// Program spans the whole input, trailing whitespace included.
	program.End = len(p.source.Content)
	if p.opts.Locations {
		program.Loc.End = p.source.LineInfo(program.End)
	}
	return program, nil
}

// --- Cursor ---

// Cur returns the current lookahead token.
func (p *Parser) Cur() lexer.Token { return p.cur }

// LastTokStart is the start offset of the most recently consumed token.
func (p *Parser) LastTokStart() int { return p.lastTokStart }

// LastTokEnd is the end offset of the most recently consumed token.
func (p *Parser) LastTokEnd() int { return p.lastTokEnd }

// Next consumes the current token and reads the next one.
func (p *Parser) Next() error {
	p.lastTokStart = p.cur.StartPos
	p.lastTokEnd = p.cur.EndPos
	return p.read()
}

func (p *Parser) read() error {
	p.cur = p.l.NextToken()
	if p.cur.Type == lexer.ILLEGAL {
		msg := p.cur.Value
		if msg == "" {
			msg = "Unexpected character"
		}
		return &errors.SyntaxError{Position: p.pos(p.cur), Msg: msg}
	}
	return nil
}

// Is reports whether the current token has type t.
func (p *Parser) Is(t lexer.TokenType) bool { return p.cur.Type == t }

// Eat consumes the current token if it has type t.
func (p *Parser) Eat(t lexer.TokenType) (bool, error) {
	if p.cur.Type != t {
		return false, nil
	}
	return true, p.Next()
}

// Expect consumes a token of type t or fails.
func (p *Parser) Expect(t lexer.TokenType) error {
	if p.cur.Type != t {
		return errors.Expected(p.pos(p.cur), describe(t))
	}
	return p.Next()
}

// Unexpected builds the error for the current token.
func (p *Parser) Unexpected() error {
	return errors.Unexpected(p.pos(p.cur))
}

// SplitAngle consumes exactly one '<' or '>' character from the current
// token. A single-character token is consumed whole; a longer one such as
// ">>" or "<=" is split: the first character counts as consumed and the
// lexer re-tokenizes the remainder from the next offset.
func (p *Parser) SplitAngle() error {
	tok := p.cur
	if len(tok.Literal) <= 1 {
		return p.Next()
	}
	p.logger.Debug("splitting angle token", zap.String("token", tok.Literal), zap.Int("offset", tok.StartPos))
	p.lastTokStart = tok.StartPos
	p.lastTokEnd = tok.StartPos + 1
	p.l.Rescan(tok.StartPos + 1)
	return p.read()
}

// Semicolon implements automatic semicolon insertion: it consumes a ';'
// or accepts a '}', EOF or a line break before the current token.
func (p *Parser) Semicolon() error {
	if ok, err := p.Eat(lexer.SEMICOLON); ok || err != nil {
		return err
	}
	if p.CanInsertSemicolon() {
		return nil
	}
	return errors.Expected(p.pos(p.cur), "';'")
}

// CanInsertSemicolon reports whether a statement may end before the
// current token.
func (p *Parser) CanInsertSemicolon() bool {
	return p.cur.Type == lexer.EOF || p.cur.Type == lexer.RBRACE ||
		p.HasLineBreak(p.lastTokEnd, p.cur.StartPos)
}

// HasLineBreak reports whether the source between two offsets contains a
// line terminator.
func (p *Parser) HasLineBreak(from, to int) bool {
	return p.source.HasLineBreak(from, to)
}

// Source returns the source file being parsed.
func (p *Parser) Source() *source.SourceFile { return p.source }

// Logger returns the parser's logger.
func (p *Parser) Logger() *zap.Logger { return p.logger }

// Locations reports whether location tracking is enabled.
func (p *Parser) Locations() bool { return p.opts.Locations }

func (p *Parser) pos(tok lexer.Token) errors.Position {
	return errors.At(p.source, tok.StartPos, tok.EndPos)
}

// --- Node lifecycle ---

// StartNode begins a node at the current token.
func (p *Parser) StartNode() ast.BaseNode {
	return p.StartNodeAt(p.cur.StartPos)
}

// StartNodeAt begins a node at an explicit offset.
func (p *Parser) StartNodeAt(pos int) ast.BaseNode {
	b := ast.BaseNode{Start: pos}
	if p.opts.Locations {
		b.Loc = &ast.SourceLocation{Start: p.source.LineInfo(pos)}
	}
	return b
}

// FinishNode stamps the end of the most recently consumed token.
func (p *Parser) FinishNode(b *ast.BaseNode) {
	p.FinishNodeAt(b, p.lastTokEnd)
}

// FinishNodeAt stamps an explicit end offset.
func (p *Parser) FinishNodeAt(b *ast.BaseNode, end int) {
	b.End = end
	if p.opts.Locations && b.Loc != nil {
		b.Loc.End = p.source.LineInfo(end)
	}
}

// startAtNode begins a node at the start of an existing one.
func (p *Parser) startAtNode(n ast.Node) ast.BaseNode {
	return p.StartNodeAt(n.Base().Start)
}

// --- Default plugin ---

type defaultPlugin struct{ p *Parser }

func (d defaultPlugin) ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error) {
	return d.p.ParseExpressionStatement(start, expr)
}
func (d defaultPlugin) ParseBindingAtom(atom ast.Pattern) (ast.Pattern, error) {
	return d.p.ParseBindingAtom(atom)
}
func (d defaultPlugin) ParseFunctionBody(fn *ast.Function) error {
	return d.p.ParseFunctionBody(fn)
}
func (d defaultPlugin) ParseExpression(expr ast.Expression, parenthesized bool, parenStart int) (ast.Expression, error) {
	return d.p.ParseExpression(expr, parenthesized, parenStart)
}
func (d defaultPlugin) ParseParenItem(item ast.Expression) (ast.Expression, error) {
	return d.p.ParseParenItem(item)
}

// ParseExpressionStatement is the default statement hook.
func (p *Parser) ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error) {
	stmt := &ast.ExpressionStatement{BaseNode: p.StartNodeAt(start), Expression: expr}
	if err := p.Semicolon(); err != nil {
		return nil, err
	}
	p.FinishNode(&stmt.BaseNode)
	return stmt, nil
}

// ParseBindingAtom is the default binding-atom hook; it returns the atom
// unchanged.
func (p *Parser) ParseBindingAtom(atom ast.Pattern) (ast.Pattern, error) { return atom, nil }

// ParseFunctionBody is the default function-body hook; it does nothing.
func (p *Parser) ParseFunctionBody(fn *ast.Function) error { return nil }

// ParseExpression is the default expression hook; it returns expr
// unchanged.
func (p *Parser) ParseExpression(expr ast.Expression, parenthesized bool, parenStart int) (ast.Expression, error) {
	return expr, nil
}

// ParseParenItem is the default paren-item hook; it returns item unchanged.
func (p *Parser) ParseParenItem(item ast.Expression) (ast.Expression, error) { return item, nil }

func describe(t lexer.TokenType) string {
	switch t {
	case lexer.IDENT:
		return "identifier"
	case lexer.EOF:
		return "end of input"
	}
	if lexer.IsKeyword(t) {
		return "'" + keywordText(t) + "'"
	}
	return "'" + string(t) + "'"
}

func keywordText(t lexer.TokenType) string {
	b := []byte(string(t))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
