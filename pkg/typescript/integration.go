package typescript

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Host hooks ---

// ParseExpressionStatement turns `interface Name ...` and `type Name ...`
// into declarations. Any other statement, including `type = 5`, is left to
// the host.
func (g *Plugin) ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error) {
	id, ok := expr.(*ast.Identifier)
	if ok && id.Extra == nil && g.h.Cur().Type == lexer.IDENT {
		switch declarationKeywords[id.Name] {
		case declInterface:
			return g.parseInterface(start)
		case declType:
			return g.parseTypeAlias(start)
		case declEnum, declDeclare:
			g.log.Debug("declaration keyword without grammar", zap.String("keyword", id.Name))
		}
	}
	return g.h.ParseExpressionStatement(start, expr)
}

// ParseBindingAtom attaches an optional `: Type` to a binding and widens
// the binding over it.
func (g *Plugin) ParseBindingAtom(atom ast.Pattern) (ast.Pattern, error) {
	ok, err := g.h.Eat(lexer.COLON)
	if err != nil || !ok {
		return atom, err
	}
	target, ok := atom.(ast.Annotatable)
	if !ok {
		return nil, g.h.Unexpected()
	}
	ann, err := g.parseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	target.SetTypeAnnotation(ann)
	g.widen(atom.Base(), &ann.BaseNode)
	return atom, nil
}

// ParseFunctionBody reads an optional `: Type` return type before the body.
func (g *Plugin) ParseFunctionBody(fn *ast.Function) error {
	ok, err := g.h.Eat(lexer.COLON)
	if err != nil || !ok {
		return err
	}
	fn.ReturnType, err = g.parseTypeAnnotation()
	return err
}

// ParseExpression tags expressions that start with '(' and otherwise folds
// trailing `as Type` assertions onto expr.
func (g *Plugin) ParseExpression(expr ast.Expression, parenthesized bool, parenStart int) (ast.Expression, error) {
	if parenthesized {
		expr.Base().Extra = &ast.Extra{Parenthesized: true, ParenStart: parenStart}
		return expr, nil
	}
	return g.parseAsChain(expr)
}

// ParseParenItem folds trailing `as Type` assertions onto a parenthesized
// item.
func (g *Plugin) ParseParenItem(item ast.Expression) (ast.Expression, error) {
	return g.parseAsChain(item)
}

// parseAsChain builds left-associated TSAsExpression nodes:
// x as A as B is ((x as A) as B).
func (g *Plugin) parseAsChain(expr ast.Expression) (ast.Expression, error) {
	for g.isContextual("as") {
		node := &ast.TSAsExpression{BaseNode: g.startAtNode(expr), Expression: expr}
		if err := g.h.Next(); err != nil {
			return nil, err
		}
		t, err := g.parseType()
		if err != nil {
			return nil, err
		}
		node.TypeAnnotation = t
		g.h.FinishNode(&node.BaseNode)
		expr = node
	}
	return expr, nil
}
