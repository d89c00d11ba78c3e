package typescript

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Declarations ---

// parseTypeAlias parses `Name<Params> = Type;` after the `type` word.
func (g *Plugin) parseTypeAlias(start int) (*ast.TSTypeAliasDeclaration, error) {
	node := &ast.TSTypeAliasDeclaration{BaseNode: g.h.StartNodeAt(start)}
	var err error
	if node.ID, err = g.h.ParseIdent(); err != nil {
		return nil, err
	}
	if node.TypeParameters, err = g.parseMaybeTypeParameters(); err != nil {
		return nil, err
	}
	if err = g.h.Expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	if node.TypeAnnotation, err = g.parseType(); err != nil {
		return nil, err
	}
	if err = g.h.Semicolon(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	g.log.Debug("type alias", zap.String("name", node.ID.Name))
	return node, nil
}

// parseInterface parses `Name<Params> extends A, B<T> { ... }` after the
// `interface` word.
func (g *Plugin) parseInterface(start int) (*ast.TSInterfaceDeclaration, error) {
	node := &ast.TSInterfaceDeclaration{BaseNode: g.h.StartNodeAt(start)}
	var err error
	if node.ID, err = g.h.ParseIdent(); err != nil {
		return nil, err
	}
	if node.TypeParameters, err = g.parseMaybeTypeParameters(); err != nil {
		return nil, err
	}
	if ok, err := g.h.Eat(lexer.EXTENDS); err != nil {
		return nil, err
	} else if ok {
		for {
			h, err := g.parseHeritage()
			if err != nil {
				return nil, err
			}
			node.Heritage = append(node.Heritage, h)
			if ok, err := g.h.Eat(lexer.COMMA); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}
	if node.Body, err = g.parseInterfaceBody(); err != nil {
		return nil, err
	}
	if err = g.h.Semicolon(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	g.log.Debug("interface", zap.String("name", node.ID.Name), zap.Int("members", len(node.Body.Body)))
	return node, nil
}

// parseHeritage parses one `extends` entry: a possibly qualified name with
// optional type arguments.
func (g *Plugin) parseHeritage() (*ast.TSExpressionWithTypeArguments, error) {
	node := &ast.TSExpressionWithTypeArguments{BaseNode: g.h.StartNode()}
	id, err := g.h.ParseIdent()
	if err != nil {
		return nil, err
	}
	if node.Expr, err = g.parseQualifiedName(id); err != nil {
		return nil, err
	}
	if g.isAngle('<') {
		if node.TypeParameters, err = g.parseTypeArguments(); err != nil {
			return nil, err
		}
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// --- Object-like bodies ---

func (g *Plugin) parseTypeLiteral() (*ast.TSTypeLiteral, error) {
	node := &ast.TSTypeLiteral{BaseNode: g.h.StartNode()}
	members, err := g.parseTypeMembers()
	if err != nil {
		return nil, err
	}
	node.Members = members
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseInterfaceBody() (*ast.TSInterfaceBody, error) {
	node := &ast.TSInterfaceBody{BaseNode: g.h.StartNode()}
	members, err := g.parseTypeMembers()
	if err != nil {
		return nil, err
	}
	node.Body = members
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseTypeMembers parses `{ member* }`.
func (g *Plugin) parseTypeMembers() ([]ast.TSTypeElement, error) {
	if err := g.h.Expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	members := []ast.TSTypeElement{}
	for {
		if ok, err := g.h.Eat(lexer.RBRACE); err != nil {
			return nil, err
		} else if ok {
			return members, nil
		}
		m, err := g.parseTypeMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
}

func (g *Plugin) parseTypeMember() (ast.TSTypeElement, error) {
	switch g.h.Cur().Type {
	case lexer.NEW:
		return g.parseConstructSignature()
	case lexer.IDENT:
		key, err := g.h.ParseIdent()
		if err != nil {
			return nil, err
		}
		switch g.classifyMember() {
		case memberMethod:
			return g.parseMethodSignature(key)
		case memberProperty:
			return g.parsePropertySignature(key)
		}
	}
	return nil, g.h.Unexpected()
}

func (g *Plugin) parseMethodSignature(key *ast.Identifier) (*ast.TSMethodSignature, error) {
	node := &ast.TSMethodSignature{BaseNode: g.startAtNode(key), Key: key}
	var err error
	if node.TypeParameters, err = g.parseMaybeTypeParameters(); err != nil {
		return nil, err
	}
	if err = g.h.Expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if node.Parameters, err = g.h.ParseBindingList(lexer.RPAREN); err != nil {
		return nil, err
	}
	if ok, err := g.h.Eat(lexer.COLON); err != nil {
		return nil, err
	} else if ok {
		if node.TypeAnnotation, err = g.parseType(); err != nil {
			return nil, err
		}
	}
	if err = g.eatMemberSeparator(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parsePropertySignature(key *ast.Identifier) (*ast.TSPropertySignature, error) {
	node := &ast.TSPropertySignature{BaseNode: g.startAtNode(key), Key: key}
	if ok, err := g.h.Eat(lexer.COLON); err != nil {
		return nil, err
	} else if ok {
		if node.TypeAnnotation, err = g.parseType(); err != nil {
			return nil, err
		}
	}
	if err := g.eatMemberSeparator(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseConstructSignature parses `new <T>(params): Type` inside a body.
// The return type is optional.
func (g *Plugin) parseConstructSignature() (*ast.TSConstructSignatureDeclaration, error) {
	node := &ast.TSConstructSignatureDeclaration{BaseNode: g.h.StartNode()}
	params, tparams, err := g.parseSignatureStart()
	if err != nil {
		return nil, err
	}
	node.Parameters, node.TypeParameters = params, tparams
	if ok, err := g.h.Eat(lexer.COLON); err != nil {
		return nil, err
	} else if ok {
		if node.TypeAnnotation, err = g.parseTypeAnnotation(); err != nil {
			return nil, err
		}
	}
	if err := g.eatMemberSeparator(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// eatMemberSeparator consumes at most one ',' or ';'.
func (g *Plugin) eatMemberSeparator() error {
	ok, err := g.h.Eat(lexer.COMMA)
	if err != nil || ok {
		return err
	}
	_, err = g.h.Eat(lexer.SEMICOLON)
	return err
}
