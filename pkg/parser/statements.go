package parser

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Statements ---

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case lexer.VAR, lexer.LET, lexer.CONST:
		return p.parseVarStatement()
	case lexer.FUNCTION:
		return p.parseFunctionStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.SEMICOLON:
		stmt := &ast.EmptyStatement{BaseNode: p.StartNode()}
		if err := p.Next(); err != nil {
			return nil, err
		}
		p.FinishNode(&stmt.BaseNode)
		return stmt, nil
	}

	// Everything else, contextual declarations included, starts as an
	// expression; the plugin decides what the statement really is.
	start := p.cur.StartPos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return p.plugin.ParseExpressionStatement(start, expr)
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	block := &ast.BlockStatement{BaseNode: p.StartNode(), Body: []ast.Statement{}}
	if err := p.Expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type == lexer.EOF {
			return nil, p.Unexpected()
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	if err := p.Next(); err != nil {
		return nil, err
	}
	p.FinishNode(&block.BaseNode)
	return block, nil
}

func (p *Parser) parseVarStatement() (*ast.VariableDeclaration, error) {
	decl := &ast.VariableDeclaration{BaseNode: p.StartNode(), Kind: keywordText(p.cur.Type)}
	if err := p.Next(); err != nil {
		return nil, err
	}
	for {
		d := &ast.VariableDeclarator{BaseNode: p.StartNode()}
		id, err := p.parseBindingAtom()
		if err != nil {
			return nil, err
		}
		d.ID = id
		if ok, err := p.Eat(lexer.ASSIGN); err != nil {
			return nil, err
		} else if ok {
			if d.Init, err = p.parseMaybeAssign(); err != nil {
				return nil, err
			}
		} else if decl.Kind == "const" {
			return nil, p.Unexpected()
		}
		p.FinishNode(&d.BaseNode)
		decl.Declarations = append(decl.Declarations, d)
		if ok, err := p.Eat(lexer.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if err := p.Semicolon(); err != nil {
		return nil, err
	}
	p.FinishNode(&decl.BaseNode)
	return decl, nil
}

func (p *Parser) parseFunctionStatement() (*ast.FunctionDeclaration, error) {
	fn := &ast.FunctionDeclaration{}
	if err := p.parseFunction(&fn.Function, true); err != nil {
		return nil, err
	}
	p.logger.Debug("function declaration", zap.String("name", fn.ID.Name))
	return fn, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	stmt := &ast.ReturnStatement{BaseNode: p.StartNode()}
	if err := p.Next(); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.SEMICOLON && !p.CanInsertSemicolon() {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Argument = arg
	}
	if err := p.Semicolon(); err != nil {
		return nil, err
	}
	p.FinishNode(&stmt.BaseNode)
	return stmt, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	stmt := &ast.IfStatement{BaseNode: p.StartNode()}
	if err := p.Next(); err != nil {
		return nil, err
	}
	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	stmt.Test = test
	if stmt.Consequent, err = p.parseStatement(); err != nil {
		return nil, err
	}
	if ok, err := p.Eat(lexer.ELSE); err != nil {
		return nil, err
	} else if ok {
		if stmt.Alternate, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	p.FinishNode(&stmt.BaseNode)
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	stmt := &ast.WhileStatement{BaseNode: p.StartNode()}
	if err := p.Next(); err != nil {
		return nil, err
	}
	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	stmt.Test = test
	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	p.FinishNode(&stmt.BaseNode)
	return stmt, nil
}

func (p *Parser) parseThrowStatement() (*ast.ThrowStatement, error) {
	stmt := &ast.ThrowStatement{BaseNode: p.StartNode()}
	if err := p.Next(); err != nil {
		return nil, err
	}
	if p.HasLineBreak(p.lastTokEnd, p.cur.StartPos) {
		return nil, p.Unexpected()
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Argument = arg
	if err := p.Semicolon(); err != nil {
		return nil, err
	}
	p.FinishNode(&stmt.BaseNode)
	return stmt, nil
}

// parseParenExpression parses `( Expression )` as used by if and while.
func (p *Parser) parseParenExpression() (ast.Expression, error) {
	if err := p.Expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.Expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// --- Functions ---

// parseFunction parses `function name? (params) body`. The body hook runs
// between the parameter list and the body.
func (p *Parser) parseFunction(fn *ast.Function, statement bool) error {
	fn.BaseNode = p.StartNode()
	if err := p.Expect(lexer.FUNCTION); err != nil {
		return err
	}
	if p.cur.Type == lexer.IDENT {
		id, err := p.ParseIdent()
		if err != nil {
			return err
		}
		fn.ID = id
	} else if statement {
		return p.expected("identifier")
	}
	if err := p.Expect(lexer.LPAREN); err != nil {
		return err
	}
	params, err := p.ParseBindingList(lexer.RPAREN)
	if err != nil {
		return err
	}
	fn.Params = params
	if err := p.plugin.ParseFunctionBody(fn); err != nil {
		return err
	}
	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	fn.Body = body
	p.FinishNode(&fn.BaseNode)
	return nil
}
