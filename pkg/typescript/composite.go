package typescript

import (
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// Precedence, loosest first: conditional, union, intersection, then the
// primary types with their array and indexed access suffixes.

// parseType is the entry point for a full type expression.
func (g *Plugin) parseType() (ast.TSType, error) {
	node, err := g.parseNonConditionalType()
	if err != nil {
		return nil, err
	}
	if g.h.Cur().Type == lexer.EXTENDS {
		return g.parseConditionalType(node)
	}
	return node, nil
}

// parseNonConditionalType parses everything but a top-level conditional:
// constructor and infer types, primary types with a trailing type argument
// list, and intersections and unions built on them. A leading '&' or '|'
// is allowed.
func (g *Plugin) parseNonConditionalType() (ast.TSType, error) {
	var node ast.TSType
	var err error
	switch {
	case g.h.Cur().Type == lexer.NEW:
		node, err = g.parseConstructorType()
	case g.operatorAt() == opInfer:
		node, err = g.parseInferType()
	default:
		node, err = g.parseSimpleType()
	}
	if err != nil {
		return nil, err
	}

	if node != nil && g.isAngle('<') {
		if node, err = g.attachTypeArguments(node); err != nil {
			return nil, err
		}
	}
	if g.h.Cur().Type == lexer.BITWISE_AND {
		if node, err = g.parseIntersectionType(node); err != nil {
			return nil, err
		}
	}
	if g.h.Cur().Type == lexer.PIPE {
		if node, err = g.parseUnionType(node); err != nil {
			return nil, err
		}
	}
	if node == nil {
		return nil, g.h.Unexpected()
	}
	return node, nil
}

// attachTypeArguments parses `<...>` after a type that did not consume one
// itself, e.g. `import("m").Foo<T>`, and widens the type over it.
func (g *Plugin) attachTypeArguments(node ast.TSType) (ast.TSType, error) {
	holder, ok := node.(ast.TypeArgumentHolder)
	if !ok || hasTypeArguments(node) {
		return nil, g.h.Unexpected()
	}
	args, err := g.parseTypeArguments()
	if err != nil {
		return nil, err
	}
	holder.SetTypeParameters(args)
	g.widen(node.Base(), &args.BaseNode)
	return g.parseArraySuffixes(node)
}

func hasTypeArguments(node ast.TSType) bool {
	switch n := node.(type) {
	case *ast.TSTypeReference:
		return n.TypeParameters != nil
	case *ast.TSImportType:
		return n.TypeParameters != nil
	}
	return false
}

// parseUnionType collects `| T` operands into one flat node. first, when
// not nil, is the already parsed leading operand.
func (g *Plugin) parseUnionType(first ast.TSType) (*ast.TSUnionType, error) {
	node := &ast.TSUnionType{Types: []ast.TSType{}}
	if first != nil {
		node.BaseNode = g.startAtNode(first)
		node.Types = append(node.Types, first)
	} else {
		node.BaseNode = g.h.StartNode()
	}
	for g.h.Cur().Type == lexer.PIPE {
		if err := g.h.Next(); err != nil {
			return nil, err
		}
		t, err := g.parseIntersectionTypeOrHigher()
		if err != nil {
			return nil, err
		}
		node.Types = append(node.Types, t)
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

// parseIntersectionType collects `& T` operands into one flat node.
func (g *Plugin) parseIntersectionType(first ast.TSType) (*ast.TSIntersectionType, error) {
	node := &ast.TSIntersectionType{Types: []ast.TSType{}}
	if first != nil {
		node.BaseNode = g.startAtNode(first)
		node.Types = append(node.Types, first)
	} else {
		node.BaseNode = g.h.StartNode()
	}
	for g.h.Cur().Type == lexer.BITWISE_AND {
		if err := g.h.Next(); err != nil {
			return nil, err
		}
		t, err := g.parseRequiredSimpleType()
		if err != nil {
			return nil, err
		}
		node.Types = append(node.Types, t)
	}
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}

func (g *Plugin) parseIntersectionTypeOrHigher() (ast.TSType, error) {
	node, err := g.parseRequiredSimpleType()
	if err != nil {
		return nil, err
	}
	if g.h.Cur().Type == lexer.BITWISE_AND {
		return g.parseIntersectionType(node)
	}
	return node, nil
}

func (g *Plugin) parseRequiredSimpleType() (ast.TSType, error) {
	node, err := g.parseSimpleType()
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, g.h.Unexpected()
	}
	return node, nil
}

// parseConditionalType parses `extends E ? T : F` after check. None of the
// three operands may itself be an unparenthesized conditional.
func (g *Plugin) parseConditionalType(check ast.TSType) (*ast.TSConditionalType, error) {
	node := &ast.TSConditionalType{BaseNode: g.startAtNode(check), CheckType: check}
	var err error
	if err = g.h.Expect(lexer.EXTENDS); err != nil {
		return nil, err
	}
	if node.ExtendsType, err = g.parseNonConditionalType(); err != nil {
		return nil, err
	}
	if err = g.h.Expect(lexer.QUESTION); err != nil {
		return nil, err
	}
	if node.TrueType, err = g.parseNonConditionalType(); err != nil {
		return nil, err
	}
	if err = g.h.Expect(lexer.COLON); err != nil {
		return nil, err
	}
	if node.FalseType, err = g.parseNonConditionalType(); err != nil {
		return nil, err
	}
	g.h.FinishNode(&node.BaseNode)
	g.log.Debug("conditional type", zap.Int("start", node.Start), zap.Int("end", node.End))
	return node, nil
}

// parseInferType parses `infer T`.
func (g *Plugin) parseInferType() (*ast.TSInferType, error) {
	node := &ast.TSInferType{BaseNode: g.h.StartNode()}
	if err := g.h.Next(); err != nil {
		return nil, err
	}
	param, err := g.parseTypeParameter()
	if err != nil {
		return nil, err
	}
	node.TypeParameter = param
	g.h.FinishNode(&node.BaseNode)
	return node, nil
}
