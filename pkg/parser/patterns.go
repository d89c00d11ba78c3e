package parser

import (
	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Binding patterns ---

// parseBindingAtom parses an identifier, array pattern or object pattern
// and passes it through the plugin's binding-atom hook.
func (p *Parser) parseBindingAtom() (ast.Pattern, error) {
	var atom ast.Pattern
	var err error
	switch p.cur.Type {
	case lexer.IDENT:
		atom, err = p.ParseIdent()
	case lexer.LBRACKET:
		atom, err = p.parseArrayPattern()
	case lexer.LBRACE:
		atom, err = p.parseObjectPattern()
	default:
		return nil, p.Unexpected()
	}
	if err != nil {
		return nil, err
	}
	return p.plugin.ParseBindingAtom(atom)
}

// ParseBindingList parses binding elements up to and including close; the
// opening token has already been consumed. Elements may carry defaults and
// the last one may be a rest element. A trailing comma is allowed.
func (p *Parser) ParseBindingList(close lexer.TokenType) ([]ast.Pattern, error) {
	out := []ast.Pattern{}
	first := true
	for {
		if ok, err := p.Eat(close); err != nil || ok {
			return out, err
		}
		if !first {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
			if ok, err := p.Eat(close); err != nil || ok {
				return out, err
			}
		}
		first = false
		if p.cur.Type == lexer.SPREAD {
			rest, err := p.parseRestBinding()
			if err != nil {
				return nil, err
			}
			out = append(out, rest)
			return out, p.Expect(close)
		}
		elem, err := p.parseMaybeDefault()
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
}

func (p *Parser) parseMaybeDefault() (ast.Pattern, error) {
	left, err := p.parseBindingAtom()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.ASSIGN {
		return left, nil
	}
	node := &ast.AssignmentPattern{BaseNode: p.startAtNode(left), Left: left}
	if err := p.Next(); err != nil {
		return nil, err
	}
	if node.Right, err = p.parseMaybeAssign(); err != nil {
		return nil, err
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parseRestBinding() (*ast.RestElement, error) {
	node := &ast.RestElement{BaseNode: p.StartNode()}
	if err := p.Expect(lexer.SPREAD); err != nil {
		return nil, err
	}
	arg, err := p.parseBindingAtom()
	if err != nil {
		return nil, err
	}
	node.Argument = arg
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parseArrayPattern() (*ast.ArrayPattern, error) {
	node := &ast.ArrayPattern{BaseNode: p.StartNode(), Elements: []ast.Pattern{}}
	if err := p.Expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	for {
		if ok, err := p.Eat(lexer.RBRACKET); err != nil {
			return nil, err
		} else if ok {
			break
		}
		if p.cur.Type == lexer.COMMA {
			node.Elements = append(node.Elements, nil)
			if err := p.Next(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Type == lexer.SPREAD {
			rest, err := p.parseRestBinding()
			if err != nil {
				return nil, err
			}
			node.Elements = append(node.Elements, rest)
			if err := p.Expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			break
		}
		elem, err := p.parseMaybeDefault()
		if err != nil {
			return nil, err
		}
		node.Elements = append(node.Elements, elem)
		if p.cur.Type != lexer.RBRACKET {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parseObjectPattern() (*ast.ObjectPattern, error) {
	node := &ast.ObjectPattern{BaseNode: p.StartNode(), Properties: []ast.Node{}}
	if err := p.Expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	for {
		if ok, err := p.Eat(lexer.RBRACE); err != nil {
			return nil, err
		} else if ok {
			break
		}
		if p.cur.Type == lexer.SPREAD {
			rest, err := p.parseRestBinding()
			if err != nil {
				return nil, err
			}
			node.Properties = append(node.Properties, rest)
			if err := p.Expect(lexer.RBRACE); err != nil {
				return nil, err
			}
			break
		}
		prop, err := p.parsePatternProperty()
		if err != nil {
			return nil, err
		}
		node.Properties = append(node.Properties, prop)
		if p.cur.Type != lexer.RBRACE {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parsePatternProperty() (*ast.Property, error) {
	prop := &ast.Property{BaseNode: p.StartNode(), Kind: "init"}
	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	prop.Key, prop.Computed = key, computed
	if ok, err := p.Eat(lexer.COLON); err != nil {
		return nil, err
	} else if ok {
		if prop.Value, err = p.parseMaybeDefault(); err != nil {
			return nil, err
		}
		p.FinishNode(&prop.BaseNode)
		return prop, nil
	}

	id, ok := key.(*ast.Identifier)
	if !ok || computed {
		return nil, p.Unexpected()
	}
	prop.Shorthand = true
	value := &ast.Identifier{BaseNode: id.BaseNode, Name: id.Name}
	prop.Value = value
	if p.cur.Type == lexer.ASSIGN {
		def := &ast.AssignmentPattern{BaseNode: p.startAtNode(value), Left: value}
		if err := p.Next(); err != nil {
			return nil, err
		}
		if def.Right, err = p.parseMaybeAssign(); err != nil {
			return nil, err
		}
		p.FinishNode(&def.BaseNode)
		prop.Value = def
	}
	p.FinishNode(&prop.BaseNode)
	return prop, nil
}

// --- Expression to pattern conversion ---

// toAssignable converts an expression parsed before its role was known,
// such as arrow parameters or the left side of '=', into a pattern.
func (p *Parser) toAssignable(expr ast.Expression) (ast.Pattern, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e, nil
	case *ast.MemberExpression:
		return e, nil
	case *ast.AssignmentExpression:
		left, ok := e.Left.(ast.Pattern)
		if e.Operator != "=" || !ok {
			return nil, p.invalidTarget(e)
		}
		return &ast.AssignmentPattern{BaseNode: e.BaseNode, Left: left, Right: e.Right}, nil
	case *ast.ArrayExpression:
		out := &ast.ArrayPattern{BaseNode: e.BaseNode, Elements: make([]ast.Pattern, 0, len(e.Elements))}
		for i, el := range e.Elements {
			if el == nil {
				out.Elements = append(out.Elements, nil)
				continue
			}
			if spread, ok := el.(*ast.SpreadElement); ok {
				if i != len(e.Elements)-1 {
					return nil, p.invalidTarget(spread)
				}
				rest, err := p.spreadToRest(spread)
				if err != nil {
					return nil, err
				}
				out.Elements = append(out.Elements, rest)
				continue
			}
			pat, err := p.toAssignable(el)
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, pat)
		}
		return out, nil
	case *ast.ObjectExpression:
		out := &ast.ObjectPattern{BaseNode: e.BaseNode, Properties: make([]ast.Node, 0, len(e.Properties))}
		for i, prop := range e.Properties {
			switch pr := prop.(type) {
			case *ast.SpreadElement:
				if i != len(e.Properties)-1 {
					return nil, p.invalidTarget(pr)
				}
				rest, err := p.spreadToRest(pr)
				if err != nil {
					return nil, err
				}
				out.Properties = append(out.Properties, rest)
			case *ast.Property:
				value, ok := pr.Value.(ast.Expression)
				if !ok || pr.Method {
					return nil, p.invalidTarget(pr)
				}
				pat, err := p.toAssignable(value)
				if err != nil {
					return nil, err
				}
				conv := *pr
				conv.Value = pat
				out.Properties = append(out.Properties, &conv)
			}
		}
		return out, nil
	}
	return nil, p.invalidTarget(expr)
}

func (p *Parser) spreadToRest(s *ast.SpreadElement) (*ast.RestElement, error) {
	arg, err := p.toAssignable(s.Argument)
	if err != nil {
		return nil, err
	}
	return &ast.RestElement{BaseNode: s.BaseNode, Argument: arg}, nil
}

func isSimpleTarget(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	}
	return false
}
