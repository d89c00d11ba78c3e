package typescript

import (
	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// parseMaybeTypeParameters parses `<A, B extends C = D>` when the current
// token opens one, and returns nil otherwise.
func (g *Plugin) parseMaybeTypeParameters() (*ast.TSTypeParameterDeclaration, error) {
	if !g.isAngle('<') {
		return nil, nil
	}
	node := &ast.TSTypeParameterDeclaration{BaseNode: g.h.StartNode(), Params: []*ast.TSTypeParameter{}}
	err := g.parseAngleList(func() error {
		param, err := g.parseTypeParameter()
		if err != nil {
			return err
		}
		node.Params = append(node.Params, param)
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseTypeArguments parses `<T, U>`. The current token must open it.
func (g *Plugin) parseTypeArguments() (*ast.TSTypeParameterInstantiation, error) {
	node := &ast.TSTypeParameterInstantiation{BaseNode: g.h.StartNode(), Params: []ast.TSType{}}
	err := g.parseAngleList(func() error {
		t, err := g.parseType()
		if err != nil {
			return err
		}
		node.Params = append(node.Params, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseAngleList consumes '<', then comma separated elements until a '>'.
// Each delimiter may be the first character of a longer token. Empty lists
// and a trailing comma are accepted.
func (g *Plugin) parseAngleList(elem func() error) error {
	if err := g.h.SplitAngle(); err != nil {
		return err
	}
	for first := true; ; first = false {
		if ok, err := g.eatAngle('>'); err != nil || ok {
			return err
		}
		if !first {
			if err := g.h.Expect(lexer.COMMA); err != nil {
				return err
			}
			if ok, err := g.eatAngle('>'); err != nil || ok {
				return err
			}
		}
		if err := elem(); err != nil {
			return err
		}
	}
}

// parseTypeParameter parses `Name extends Constraint = Default`.
func (g *Plugin) parseTypeParameter() (*ast.TSTypeParameter, error) {
	node := &ast.TSTypeParameter{BaseNode: g.h.StartNode()}
	tok := g.h.Cur()
	if tok.Type != lexer.IDENT {
		return nil, g.h.Unexpected()
	}
	node.Name = tok.Literal
	if err := g.h.Next(); err != nil {
		return nil, err
	}
	if ok, err := g.h.Eat(lexer.EXTENDS); err != nil {
		return nil, err
	} else if ok {
		if node.Constraint, err = g.parseType(); err != nil {
			return nil, err
		}
	}
	if ok, err := g.h.Eat(lexer.ASSIGN); err != nil {
		return nil, err
	} else if ok {
		if node.Default, err = g.parseType(); err != nil {
			return nil, err
		}
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}
