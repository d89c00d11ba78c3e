package typescript

import (
	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Annotations ---

// parseTypeAnnotation parses a type right after a consumed ':' or '=>'.
// The annotation node starts at that token.
func (g *Plugin) parseTypeAnnotation() (*ast.TSTypeAnnotation, error) {
	node := &ast.TSTypeAnnotation{BaseNode: g.h.StartNodeAt(g.h.LastTokStart())}
	t, err := g.parseType()
	if err != nil {
		return nil, err
	}
	node.TypeAnnotation = t
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// --- Primary types ---

// parseSimpleType parses a primary type followed by any array or indexed
// access suffixes. It returns a nil type without error when the current
// token cannot start a primary type.
func (g *Plugin) parseSimpleType() (ast.TSType, error) {
	var node ast.TSType
	var err error
	switch g.h.Cur().Type {
	case lexer.IDENT:
		if g.isTypeKeyword() {
			node, err = g.parseKeywordType()
		} else {
			node, err = g.parseTypeReference()
		}
	case lexer.VOID, lexer.NULL:
		node, err = g.parseKeywordType()
	case lexer.LBRACE:
		node, err = g.parseTypeLiteral()
	case lexer.LPAREN:
		node, err = g.parseParenthesizedType()
	case lexer.LBRACKET:
		node, err = g.parseTupleType()
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE:
		node, err = g.parseLiteralType()
	case lexer.IMPORT:
		node, err = g.parseImportType()
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g.parseArraySuffixes(node)
}

func (g *Plugin) parseKeywordType() (*ast.TSKeywordType, error) {
	node := &ast.TSKeywordType{BaseNode: g.h.StartNode(), Keyword: g.h.Cur().Literal}
	if err := g.h.Next(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseTypeReference() (*ast.TSTypeReference, error) {
	node := &ast.TSTypeReference{BaseNode: g.h.StartNode()}
	id, err := g.h.ParseIdent()
	if err != nil {
		return nil, err
	}
	if node.TypeName, err = g.parseQualifiedName(id); err != nil {
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

// parseQualifiedName folds any `.name` continuations onto left, building a
// left-leaning chain. Without a '.', left is returned as is.
func (g *Plugin) parseQualifiedName(left ast.EntityName) (ast.EntityName, error) {
	for g.h.Cur().Type == lexer.DOT {
		node := &ast.TSQualifiedName{BaseNode: g.startAtNode(left), Left: left}
		if err := g.h.Next(); err != nil {
			return nil, err
		}
		right, err := g.h.ParseIdent()
		if err != nil {
			return nil, err
		}
		node.Right = right
		g.h.FinishNode(&node.BaseNode)
		left = node
	}
	return left, nil
}

func (g *Plugin) parseLiteralType() (*ast.TSLiteralType, error) {
	node := &ast.TSLiteralType{BaseNode: g.h.StartNode()}
	lit, err := g.h.ParseLiteral()
	if err != nil {
		return nil, err
	}
	node.Literal = lit
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseParenthesizedType() (*ast.TSParenthesizedType, error) {
	node := &ast.TSParenthesizedType{BaseNode: g.h.StartNode()}
	if err := g.h.Expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	t, err := g.parseType()
	if err != nil {
		return nil, err
	}
	node.TypeAnnotation = t
	if err := g.h.Expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// --- Tuples ---

// parseTupleType parses `[A, B?, ...C]`. Elements are plain type references,
// optionally marked with '?', or rest elements. Their order is not checked.
func (g *Plugin) parseTupleType() (*ast.TSTupleType, error) {
	node := &ast.TSTupleType{BaseNode: g.h.StartNode(), ElementTypes: []ast.TSType{}}
	if err := g.h.Expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	for first := true; ; first = false {
		if ok, err := g.h.Eat(lexer.RBRACKET); err != nil {
			return nil, err
		} else if ok {
			break
		}
		if !first {
			if err := g.h.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		switch g.h.Cur().Type {
		case lexer.IDENT:
			ref, err := g.parseTypeReference()
			if err != nil {
				return nil, err
			}
			if g.h.Cur().Type != lexer.QUESTION {
				node.ElementTypes = append(node.ElementTypes, ref)
				continue
			}
			opt, err := g.parseOptionalType(ref)
			if err != nil {
				return nil, err
			}
			node.ElementTypes = append(node.ElementTypes, opt)
		case lexer.SPREAD:
			rest, err := g.parseRestType()
			if err != nil {
				return nil, err
			}
			node.ElementTypes = append(node.ElementTypes, rest)
		case lexer.RBRACKET:
			// trailing comma
		default:
			return nil, g.h.Unexpected()
		}
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseOptionalType(ref ast.TSType) (*ast.TSOptionalType, error) {
	node := &ast.TSOptionalType{BaseNode: g.startAtNode(ref), TypeAnnotation: ref}
	if err := g.h.Expect(lexer.QUESTION); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseRestType() (*ast.TSRestType, error) {
	node := &ast.TSRestType{BaseNode: g.h.StartNode()}
	if err := g.h.Expect(lexer.SPREAD); err != nil {
		return nil, err
	}
	t, err := g.parseType()
	if err != nil {
		return nil, err
	}
	node.TypeAnnotation = t
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// --- Array and indexed access ---

// parseArraySuffixes wraps prev for every `[]` (array type) or `[Index]`
// (indexed access type) that follows it.
func (g *Plugin) parseArraySuffixes(prev ast.TSType) (ast.TSType, error) {
	for g.h.Cur().Type == lexer.LBRACKET {
		base := g.startAtNode(prev)
		if err := g.h.Next(); err != nil {
			return nil, err
		}
		if ok, err := g.h.Eat(lexer.RBRACKET); err != nil {
			return nil, err
		} else if ok {
			node := &ast.TSArrayType{BaseNode: base, ElementType: prev}
			g.h.FinishNode(&node.BaseNode)
			prev = node
			continue
		}
		node := &ast.TSIndexedAccessType{BaseNode: base, ObjectType: prev}
		index, err := g.parseType()
		if err != nil {
			return nil, err
		}
		node.IndexType = index
		if err := g.h.Expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		g.h.FinishNode(&node.BaseNode)
		prev = node
	}
	return prev, nil
}

// --- Import and constructor types ---

// parseImportType parses `import("module")` with an optional `.Qualifier`.
func (g *Plugin) parseImportType() (*ast.TSImportType, error) {
	node := &ast.TSImportType{BaseNode: g.h.StartNode()}
	if err := g.h.Expect(lexer.IMPORT); err != nil {
		return nil, err
	}
	if err := g.h.Expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if g.h.Cur().Type != lexer.STRING {
		return nil, g.h.Unexpected()
	}
	param, err := g.parseLiteralType()
	if err != nil {
		return nil, err
	}
	node.Parameter = param
	if err := g.h.Expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if ok, err := g.h.Eat(lexer.DOT); err != nil {
		return nil, err
	} else if ok {
		id, err := g.h.ParseIdent()
		if err != nil {
			return nil, err
		}
		if node.Qualifier, err = g.parseQualifiedName(id); err != nil {
			return nil, err
		}
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseConstructorType parses `new <T>(params) => Type`.
func (g *Plugin) parseConstructorType() (*ast.TSConstructorType, error) {
	node := &ast.TSConstructorType{BaseNode: g.h.StartNode()}
	params, tparams, err := g.parseSignatureStart()
	if err != nil {
		return nil, err
	}
	node.Parameters, node.TypeParameters = params, tparams
	if err := g.h.Expect(lexer.ARROW); err != nil {
		return nil, err
	}
	if node.TypeAnnotation, err = g.parseTypeAnnotation(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseSignatureStart parses `new`, optional type parameters and a
// parenthesized parameter list.
func (g *Plugin) parseSignatureStart() ([]ast.Pattern, *ast.TSTypeParameterDeclaration, error) {
	if err := g.h.Expect(lexer.NEW); err != nil {
		return nil, nil, err
	}
	tparams, err := g.parseMaybeTypeParameters()
	if err != nil {
		return nil, nil, err
	}
	if err := g.h.Expect(lexer.LPAREN); err != nil {
		return nil, nil, err
	}
	params, err := g.h.ParseBindingList(lexer.RPAREN)
	if err != nil {
		return nil, nil, err
	}
	return params, tparams, nil
}
