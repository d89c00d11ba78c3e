package parser

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/errors"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

// --- Precedence ---

type binop struct {
	prec    int
	logical bool
}

var binops = map[lexer.TokenType]binop{
	lexer.COALESCE:             {1, true},
	lexer.LOGICAL_OR:           {1, true},
	lexer.LOGICAL_AND:          {2, true},
	lexer.PIPE:                 {3, false},
	lexer.BITWISE_XOR:          {4, false},
	lexer.BITWISE_AND:          {5, false},
	lexer.EQ:                   {6, false},
	lexer.NOT_EQ:               {6, false},
	lexer.STRICT_EQ:            {6, false},
	lexer.STRICT_NE:            {6, false},
	lexer.LT:                   {7, false},
	lexer.GT:                   {7, false},
	lexer.LE:                   {7, false},
	lexer.GE:                   {7, false},
	lexer.INSTANCEOF:           {7, false},
	lexer.IN:                   {7, false},
	lexer.LEFT_SHIFT:           {8, false},
	lexer.RIGHT_SHIFT:          {8, false},
	lexer.UNSIGNED_RIGHT_SHIFT: {8, false},
	lexer.PLUS:                 {9, false},
	lexer.MINUS:                {9, false},
	lexer.ASTERISK:             {10, false},
	lexer.SLASH:                {10, false},
	lexer.REMAINDER:            {10, false},
	lexer.EXPONENT:             {11, false},
}

var assignOps = map[lexer.TokenType]bool{
	lexer.ASSIGN:                      true,
	lexer.PLUS_ASSIGN:                 true,
	lexer.MINUS_ASSIGN:                true,
	lexer.ASTERISK_ASSIGN:             true,
	lexer.SLASH_ASSIGN:                true,
	lexer.REMAINDER_ASSIGN:            true,
	lexer.EXPONENT_ASSIGN:             true,
	lexer.LEFT_SHIFT_ASSIGN:           true,
	lexer.RIGHT_SHIFT_ASSIGN:          true,
	lexer.UNSIGNED_RIGHT_SHIFT_ASSIGN: true,
	lexer.BITWISE_AND_ASSIGN:          true,
	lexer.BITWISE_OR_ASSIGN:           true,
	lexer.BITWISE_XOR_ASSIGN:          true,
	lexer.LOGICAL_AND_ASSIGN:          true,
	lexer.LOGICAL_OR_ASSIGN:           true,
	lexer.COALESCE_ASSIGN:             true,
}

// --- Expressions ---

// parseExpression parses a comma-separated expression and hands the
// result to the plugin's expression hook.
func (p *Parser) parseExpression() (ast.Expression, error) {
	parenthesized := p.cur.Type == lexer.LPAREN
	parenStart := -1
	if parenthesized {
		parenStart = p.cur.StartPos
	}
	start := p.cur.StartPos
	expr, err := p.parseMaybeAssign()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.COMMA {
		seq := &ast.SequenceExpression{BaseNode: p.StartNodeAt(start), Expressions: []ast.Expression{expr}}
		for p.cur.Type == lexer.COMMA {
			if err := p.Next(); err != nil {
				return nil, err
			}
			e, err := p.parseMaybeAssign()
			if err != nil {
				return nil, err
			}
			seq.Expressions = append(seq.Expressions, e)
		}
		p.FinishNode(&seq.BaseNode)
		expr = seq
	}
	return p.plugin.ParseExpression(expr, parenthesized, parenStart)
}

func (p *Parser) parseMaybeAssign() (ast.Expression, error) {
	return p.parseMaybeAssignAfter(nil)
}

// parseMaybeAssignAfter parses an assignment-level expression. afterLeft,
// when set, post-processes the conditional-level left side before any
// assignment operator is examined.
func (p *Parser) parseMaybeAssignAfter(afterLeft func(ast.Expression) (ast.Expression, error)) (ast.Expression, error) {
	start := p.cur.StartPos
	left, err := p.parseMaybeConditional()
	if err != nil {
		return nil, err
	}
	if afterLeft != nil {
		if left, err = afterLeft(left); err != nil {
			return nil, err
		}
	}
	if !assignOps[p.cur.Type] {
		return left, nil
	}
	op := p.cur
	var target ast.Node = left
	if op.Type == lexer.ASSIGN {
		if target, err = p.toAssignable(left); err != nil {
			return nil, err
		}
	} else if !isSimpleTarget(left) {
		return nil, p.invalidTarget(left)
	}
	if err := p.Next(); err != nil {
		return nil, err
	}
	right, err := p.parseMaybeAssign()
	if err != nil {
		return nil, err
	}
	node := &ast.AssignmentExpression{BaseNode: p.StartNodeAt(start), Operator: op.Literal, Left: target, Right: right}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parseMaybeConditional() (ast.Expression, error) {
	start := p.cur.StartPos
	test, err := p.parseExprOp(-1)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.QUESTION {
		return test, nil
	}
	if err := p.Next(); err != nil {
		return nil, err
	}
	node := &ast.ConditionalExpression{BaseNode: p.StartNodeAt(start), Test: test}
	if node.Consequent, err = p.parseMaybeAssign(); err != nil {
		return nil, err
	}
	if err := p.Expect(lexer.COLON); err != nil {
		return nil, err
	}
	if node.Alternate, err = p.parseMaybeAssign(); err != nil {
		return nil, err
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

// parseExprOp is operator-precedence climbing over binary operators whose
// precedence exceeds minPrec.
func (p *Parser) parseExprOp(minPrec int) (ast.Expression, error) {
	start := p.cur.StartPos
	left, err := p.parseMaybeUnary()
	if err != nil {
		return nil, err
	}
	return p.climb(start, left, minPrec)
}

func (p *Parser) climb(start int, left ast.Expression, minPrec int) (ast.Expression, error) {
	for {
		op, ok := binops[p.cur.Type]
		if !ok || op.prec <= minPrec {
			return left, nil
		}
		tok := p.cur
		if err := p.Next(); err != nil {
			return nil, err
		}
		nextMin := op.prec
		if tok.Type == lexer.EXPONENT {
			nextMin-- // right associative
		}
		rstart := p.cur.StartPos
		right, err := p.parseMaybeUnary()
		if err != nil {
			return nil, err
		}
		if right, err = p.climb(rstart, right, nextMin); err != nil {
			return nil, err
		}
		var node ast.Expression
		if op.logical {
			n := &ast.LogicalExpression{BaseNode: p.StartNodeAt(start), Operator: tok.Literal, Left: left, Right: right}
			p.FinishNode(&n.BaseNode)
			node = n
		} else {
			n := &ast.BinaryExpression{BaseNode: p.StartNodeAt(start), Operator: tok.Literal, Left: left, Right: right}
			p.FinishNode(&n.BaseNode)
			node = n
		}
		left = node
	}
}

func (p *Parser) parseMaybeUnary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.BANG, lexer.TILDE, lexer.PLUS, lexer.MINUS, lexer.TYPEOF, lexer.VOID, lexer.DELETE:
		node := &ast.UnaryExpression{BaseNode: p.StartNode(), Operator: p.cur.Literal, Prefix: true}
		if err := p.Next(); err != nil {
			return nil, err
		}
		arg, err := p.parseMaybeUnary()
		if err != nil {
			return nil, err
		}
		node.Argument = arg
		p.FinishNode(&node.BaseNode)
		return node, nil
	case lexer.INC, lexer.DEC:
		node := &ast.UpdateExpression{BaseNode: p.StartNode(), Operator: p.cur.Literal, Prefix: true}
		if err := p.Next(); err != nil {
			return nil, err
		}
		arg, err := p.parseMaybeUnary()
		if err != nil {
			return nil, err
		}
		if !isSimpleTarget(arg) {
			return nil, p.invalidTarget(arg)
		}
		node.Argument = arg
		p.FinishNode(&node.BaseNode)
		return node, nil
	}

	start := p.cur.StartPos
	expr, err := p.parseExprSubscripts()
	if err != nil {
		return nil, err
	}
	for (p.cur.Type == lexer.INC || p.cur.Type == lexer.DEC) && !p.HasLineBreak(p.lastTokEnd, p.cur.StartPos) {
		if !isSimpleTarget(expr) {
			return nil, p.invalidTarget(expr)
		}
		node := &ast.UpdateExpression{BaseNode: p.StartNodeAt(start), Operator: p.cur.Literal, Argument: expr}
		if err := p.Next(); err != nil {
			return nil, err
		}
		p.FinishNode(&node.BaseNode)
		expr = node
	}
	return expr, nil
}

func (p *Parser) parseExprSubscripts() (ast.Expression, error) {
	start := p.cur.StartPos
	base, err := p.parseExprAtom()
	if err != nil {
		return nil, err
	}
	if _, ok := base.(*ast.ArrowFunctionExpression); ok {
		return base, nil
	}
	return p.parseSubscripts(start, base, false)
}

func (p *Parser) parseSubscripts(start int, base ast.Expression, noCalls bool) (ast.Expression, error) {
	for {
		switch p.cur.Type {
		case lexer.DOT:
			if err := p.Next(); err != nil {
				return nil, err
			}
			prop, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			node := &ast.MemberExpression{BaseNode: p.StartNodeAt(start), Object: base, Property: prop}
			p.FinishNode(&node.BaseNode)
			base = node
		case lexer.LBRACKET:
			if err := p.Next(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.Expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			node := &ast.MemberExpression{BaseNode: p.StartNodeAt(start), Object: base, Property: prop, Computed: true}
			p.FinishNode(&node.BaseNode)
			base = node
		case lexer.LPAREN:
			if noCalls {
				return base, nil
			}
			if err := p.Next(); err != nil {
				return nil, err
			}
			args, err := p.parseExprList(lexer.RPAREN)
			if err != nil {
				return nil, err
			}
			node := &ast.CallExpression{BaseNode: p.StartNodeAt(start), Callee: base, Arguments: args}
			p.FinishNode(&node.BaseNode)
			base = node
		default:
			return base, nil
		}
	}
}

// parsePropertyName parses the name after '.', where reserved words are
// allowed.
func (p *Parser) parsePropertyName() (*ast.Identifier, error) {
	if p.cur.Type != lexer.IDENT && !lexer.IsKeyword(p.cur.Type) {
		return nil, p.expected("property name")
	}
	id := &ast.Identifier{BaseNode: p.StartNode(), Name: p.cur.Literal}
	if err := p.Next(); err != nil {
		return nil, err
	}
	p.FinishNode(&id.BaseNode)
	return id, nil
}

func (p *Parser) parseExprAtom() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.THIS:
		node := &ast.ThisExpression{BaseNode: p.StartNode()}
		if err := p.Next(); err != nil {
			return nil, err
		}
		p.FinishNode(&node.BaseNode)
		return node, nil
	case lexer.IDENT:
		id, err := p.ParseIdent()
		if err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.ARROW && !p.HasLineBreak(p.lastTokEnd, p.cur.StartPos) {
			return p.parseArrowExpression(id.Start, []ast.Pattern{id})
		}
		return id, nil
	case lexer.NUMBER, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NULL, lexer.REGEX:
		return p.ParseLiteral()
	case lexer.LPAREN:
		return p.parseParenAndDistinguish()
	case lexer.LBRACKET:
		node := &ast.ArrayExpression{BaseNode: p.StartNode()}
		if err := p.Next(); err != nil {
			return nil, err
		}
		elems, err := p.parseArrayElements()
		if err != nil {
			return nil, err
		}
		node.Elements = elems
		p.FinishNode(&node.BaseNode)
		return node, nil
	case lexer.LBRACE:
		return p.parseObject()
	case lexer.FUNCTION:
		fn := &ast.FunctionExpression{}
		if err := p.parseFunction(&fn.Function, false); err != nil {
			return nil, err
		}
		return fn, nil
	case lexer.NEW:
		return p.parseNew()
	}
	return nil, p.Unexpected()
}

func (p *Parser) parseNew() (ast.Expression, error) {
	node := &ast.NewExpression{BaseNode: p.StartNode(), Arguments: []ast.Expression{}}
	if err := p.Next(); err != nil {
		return nil, err
	}
	start := p.cur.StartPos
	var callee ast.Expression
	var err error
	if p.cur.Type == lexer.NEW {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parseExprAtom()
	}
	if err != nil {
		return nil, err
	}
	if node.Callee, err = p.parseSubscripts(start, callee, true); err != nil {
		return nil, err
	}
	if ok, err := p.Eat(lexer.LPAREN); err != nil {
		return nil, err
	} else if ok {
		if node.Arguments, err = p.parseExprList(lexer.RPAREN); err != nil {
			return nil, err
		}
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

// parseExprList parses call arguments up to and including close. A
// trailing comma is allowed.
func (p *Parser) parseExprList(close lexer.TokenType) ([]ast.Expression, error) {
	out := []ast.Expression{}
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
		e, err := p.parseSpreadOrAssign()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func (p *Parser) parseSpreadOrAssign() (ast.Expression, error) {
	if p.cur.Type != lexer.SPREAD {
		return p.parseMaybeAssign()
	}
	node := &ast.SpreadElement{BaseNode: p.StartNode()}
	if err := p.Next(); err != nil {
		return nil, err
	}
	arg, err := p.parseMaybeAssign()
	if err != nil {
		return nil, err
	}
	node.Argument = arg
	p.FinishNode(&node.BaseNode)
	return node, nil
}

// parseArrayElements parses array literal elements after '['. Holes are
// nil entries.
func (p *Parser) parseArrayElements() ([]ast.Expression, error) {
	out := []ast.Expression{}
	for {
		if ok, err := p.Eat(lexer.RBRACKET); err != nil || ok {
			return out, err
		}
		if p.cur.Type == lexer.COMMA {
			out = append(out, nil)
			if err := p.Next(); err != nil {
				return nil, err
			}
			continue
		}
		e, err := p.parseSpreadOrAssign()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.cur.Type != lexer.RBRACKET {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) parseObject() (*ast.ObjectExpression, error) {
	node := &ast.ObjectExpression{BaseNode: p.StartNode(), Properties: []ast.Node{}}
	if err := p.Expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	first := true
	for {
		if ok, err := p.Eat(lexer.RBRACE); err != nil {
			return nil, err
		} else if ok {
			break
		}
		if !first {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
			if ok, err := p.Eat(lexer.RBRACE); err != nil {
				return nil, err
			} else if ok {
				break
			}
		}
		first = false
		prop, err := p.parseObjectMember()
		if err != nil {
			return nil, err
		}
		node.Properties = append(node.Properties, prop)
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

func (p *Parser) parseObjectMember() (ast.Node, error) {
	if p.cur.Type == lexer.SPREAD {
		return p.parseSpreadOrAssign()
	}
	prop := &ast.Property{BaseNode: p.StartNode(), Kind: "init"}
	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	prop.Key, prop.Computed = key, computed
	switch p.cur.Type {
	case lexer.COLON:
		if err := p.Next(); err != nil {
			return nil, err
		}
		if prop.Value, err = p.parseMaybeAssign(); err != nil {
			return nil, err
		}
	case lexer.LPAREN:
		fn := &ast.FunctionExpression{}
		fn.BaseNode = p.StartNode()
		if err := p.Next(); err != nil {
			return nil, err
		}
		if fn.Params, err = p.ParseBindingList(lexer.RPAREN); err != nil {
			return nil, err
		}
		if err := p.plugin.ParseFunctionBody(&fn.Function); err != nil {
			return nil, err
		}
		if fn.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
		p.FinishNode(&fn.BaseNode)
		prop.Value = fn
		prop.Method = true
	default:
		id, ok := key.(*ast.Identifier)
		if !ok || computed || p.cur.Type == lexer.ASSIGN {
			return nil, p.Unexpected()
		}
		prop.Value = &ast.Identifier{BaseNode: id.BaseNode, Name: id.Name}
		prop.Shorthand = true
	}
	p.FinishNode(&prop.BaseNode)
	return prop, nil
}

// parsePropertyKey parses an object key: a name (reserved words allowed),
// a string or number literal, or a computed `[expr]`.
func (p *Parser) parsePropertyKey() (ast.Expression, bool, error) {
	switch p.cur.Type {
	case lexer.LBRACKET:
		if err := p.Next(); err != nil {
			return nil, false, err
		}
		key, err := p.parseMaybeAssign()
		if err != nil {
			return nil, false, err
		}
		return key, true, p.Expect(lexer.RBRACKET)
	case lexer.STRING, lexer.NUMBER:
		lit, err := p.ParseLiteral()
		return lit, false, err
	}
	id, err := p.parsePropertyName()
	return id, false, err
}

// parseParenAndDistinguish parses a parenthesized expression or the
// parameter list of an arrow function. Each item goes through the plugin's
// paren-item hook.
func (p *Parser) parseParenAndDistinguish() (ast.Expression, error) {
	start := p.cur.StartPos
	if err := p.Expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	innerStart := p.cur.StartPos
	var items []ast.Expression
	var rest *ast.RestElement
	first := true
	for p.cur.Type != lexer.RPAREN {
		if !first {
			if err := p.Expect(lexer.COMMA); err != nil {
				return nil, err
			}
			if p.cur.Type == lexer.RPAREN {
				break
			}
		}
		first = false
		if p.cur.Type == lexer.SPREAD {
			r, err := p.parseRestBinding()
			if err != nil {
				return nil, err
			}
			rest = r
			if p.cur.Type != lexer.RPAREN {
				return nil, p.Unexpected()
			}
			break
		}
		item, err := p.parseMaybeAssignAfter(p.plugin.ParseParenItem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	innerEnd := p.lastTokEnd
	if err := p.Expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	if p.cur.Type == lexer.ARROW && !p.HasLineBreak(p.lastTokEnd, p.cur.StartPos) {
		params := make([]ast.Pattern, 0, len(items)+1)
		for _, item := range items {
			param, err := p.toAssignable(item)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		if rest != nil {
			params = append(params, rest)
		}
		return p.parseArrowExpression(start, params)
	}

	if len(items) == 0 || rest != nil {
		return nil, errors.Unexpected(errors.At(p.source, p.lastTokStart, p.lastTokEnd))
	}
	if len(items) == 1 {
		return items[0], nil
	}
	seq := &ast.SequenceExpression{BaseNode: p.StartNodeAt(innerStart), Expressions: items}
	p.FinishNodeAt(&seq.BaseNode, innerEnd)
	return seq, nil
}

func (p *Parser) parseArrowExpression(start int, params []ast.Pattern) (*ast.ArrowFunctionExpression, error) {
	node := &ast.ArrowFunctionExpression{}
	node.BaseNode = p.StartNodeAt(start)
	node.Params = params
	if err := p.Expect(lexer.ARROW); err != nil {
		return nil, err
	}
	var err error
	if p.cur.Type == lexer.LBRACE {
		node.Body, err = p.parseBlock()
	} else {
		node.Body, err = p.parseMaybeAssign()
		node.Expression = true
	}
	if err != nil {
		return nil, err
	}
	p.FinishNode(&node.BaseNode)
	return node, nil
}

// --- Atoms ---

// ParseIdent parses an identifier. Reserved words are rejected.
func (p *Parser) ParseIdent() (*ast.Identifier, error) {
	if p.cur.Type != lexer.IDENT {
		if p.cur.Type == lexer.EOF || lexer.IsKeyword(p.cur.Type) {
			return nil, p.Unexpected()
		}
		return nil, p.expected("identifier")
	}
	id := &ast.Identifier{BaseNode: p.StartNode(), Name: p.cur.Literal}
	if err := p.Next(); err != nil {
		return nil, err
	}
	p.FinishNode(&id.BaseNode)
	return id, nil
}

// ParseLiteral parses a string, number, boolean, null or regular
// expression literal.
func (p *Parser) ParseLiteral() (*ast.Literal, error) {
	tok := p.cur
	lit := &ast.Literal{BaseNode: p.StartNode(), Raw: tok.Literal}
	switch tok.Type {
	case lexer.STRING:
		lit.Value = tok.Value
	case lexer.TRUE:
		lit.Value = true
	case lexer.FALSE:
		lit.Value = false
	case lexer.NULL:
		lit.Value = nil
	case lexer.NUMBER:
		if strings.HasSuffix(tok.Literal, "n") {
			lit.Bigint = bigintDigits(tok.Literal)
			break
		}
		v, ok := parseNumber(tok.Literal)
		if !ok {
			return nil, &errors.SyntaxError{Position: p.pos(tok), Msg: "Invalid number " + tok.Literal}
		}
		lit.Value = v
	case lexer.REGEX:
		re, err := p.parseRegex(tok)
		if err != nil {
			return nil, err
		}
		lit.Regex = re
	default:
		return nil, p.Unexpected()
	}
	if err := p.Next(); err != nil {
		return nil, err
	}
	p.FinishNode(&lit.BaseNode)
	return lit, nil
}

// parseRegex splits /pattern/flags and validates the pattern with an
// ECMAScript-compatible engine.
func (p *Parser) parseRegex(tok lexer.Token) (*ast.RegexLiteral, error) {
	end := strings.LastIndexByte(tok.Literal, '/')
	re := &ast.RegexLiteral{Pattern: tok.Literal[1:end], Flags: tok.Literal[end+1:]}
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	seen := map[rune]bool{}
	for _, f := range re.Flags {
		if !strings.ContainsRune("dgimsuyv", f) || seen[f] {
			return nil, &errors.SyntaxError{Position: p.pos(tok), Msg: "Invalid regular expression flags"}
		}
		seen[f] = true
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		}
	}
	if _, err := regexp2.Compile(re.Pattern, opts); err != nil {
		return nil, (&errors.SyntaxError{Position: p.pos(tok), Msg: "Invalid regular expression: /" + re.Pattern + "/"}).CausedBy(err)
	}
	return re, nil
}

func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, ok := new(big.Int).SetString(s, 0)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
		if allDigits(s, 8) {
			n, err := strconv.ParseInt(s[1:], 8, 64)
			return float64(n), err == nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflowing decimals become +Inf like in the host language.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return math.Inf(1), true
		}
		return 0, false
	}
	return f, true
}

func allDigits(s string, base int) bool {
	for i := 0; i < len(s); i++ {
		if int(s[i]-'0') >= base || s[i] < '0' {
			return false
		}
	}
	return true
}

func bigintDigits(raw string) string {
	s := strings.ReplaceAll(strings.TrimSuffix(raw, "n"), "_", "")
	if n, ok := new(big.Int).SetString(s, 0); ok {
		return n.String()
	}
	return s
}

func (p *Parser) expected(what string) error {
	return errors.Expected(p.pos(p.cur), what)
}

func (p *Parser) invalidTarget(n ast.Node) error {
	b := n.Base()
	return &errors.SyntaxError{Position: errors.At(p.source, b.Start, b.End), Msg: "Invalid assignment target"}
}
