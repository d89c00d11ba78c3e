package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/errors"
	"github.com/nooga/tsgrammar/pkg/lexer"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := NewParser(lexer.NewLexerString(input), Options{}).ParseProgram()
	require.NoError(t, err, "input: %s", input)
	return prog
}

func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	prog := parse(t, input)
	require.Len(t, prog.Body, 1)
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", prog.Body[0])
	return stmt.Expression
}

func parseErr(t *testing.T, input string) *errors.SyntaxError {
	t.Helper()
	_, err := NewParser(lexer.NewLexerString(input), Options{}).ParseProgram()
	require.Error(t, err, "input: %s", input)
	se, ok := err.(*errors.SyntaxError)
	require.True(t, ok, "expected *errors.SyntaxError, got %T", err)
	return se
}

func toJSON(t *testing.T, n ast.Node) string {
	t.Helper()
	data, err := json.Marshal(ast.ToObject(n, ast.EncodeOptions{OmitSpans: true}))
	require.NoError(t, err)
	return string(data)
}

func TestProgramSpan(t *testing.T) {
	prog := parse(t, "let a = 1;\n\n")
	assert.Equal(t, "script", prog.SourceType)
	assert.Equal(t, 0, prog.Start)
	assert.Equal(t, 12, prog.End)
	assert.Nil(t, prog.Loc)

	empty := parse(t, "")
	assert.Empty(t, empty.Body)
	assert.NotNil(t, empty.Body)
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input string
		types []string
	}{
		{"var a = 1, b;", []string{"VariableDeclaration"}},
		{"let x\nconst y = 2", []string{"VariableDeclaration", "VariableDeclaration"}},
		{"function f(a, b = 1, ...c) { return a }", []string{"FunctionDeclaration"}},
		{"if (a) b; else { c }", []string{"IfStatement"}},
		{"while (i < 10) i++", []string{"WhileStatement"}},
		{"throw new Error('x');", []string{"ThrowStatement"}},
		{";;", []string{"EmptyStatement", "EmptyStatement"}},
		{"{ a; b }", []string{"BlockStatement"}},
		{"a\nb", []string{"ExpressionStatement", "ExpressionStatement"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parse(t, tt.input)
			require.Len(t, prog.Body, len(tt.types))
			for i, typ := range tt.types {
				assert.Equal(t, typ, prog.Body[i].Type())
			}
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", `{"type":"BinaryExpression","operator":"+","left":{"type":"Identifier","name":"a"},"right":{"type":"BinaryExpression","operator":"*","left":{"type":"Identifier","name":"b"},"right":{"type":"Identifier","name":"c"}}}`},
		{"a - b - c", `{"type":"BinaryExpression","operator":"-","left":{"type":"BinaryExpression","operator":"-","left":{"type":"Identifier","name":"a"},"right":{"type":"Identifier","name":"b"}},"right":{"type":"Identifier","name":"c"}}`},
		{"a ** b ** c", `{"type":"BinaryExpression","operator":"**","left":{"type":"Identifier","name":"a"},"right":{"type":"BinaryExpression","operator":"**","left":{"type":"Identifier","name":"b"},"right":{"type":"Identifier","name":"c"}}}`},
		{"a || b && c", `{"type":"LogicalExpression","operator":"||","left":{"type":"Identifier","name":"a"},"right":{"type":"LogicalExpression","operator":"&&","left":{"type":"Identifier","name":"b"},"right":{"type":"Identifier","name":"c"}}}`},
		{"a = b = c", `{"type":"AssignmentExpression","operator":"=","left":{"type":"Identifier","name":"a"},"right":{"type":"AssignmentExpression","operator":"=","left":{"type":"Identifier","name":"b"},"right":{"type":"Identifier","name":"c"}}}`},
		{"a ? b : c", `{"type":"ConditionalExpression","test":{"type":"Identifier","name":"a"},"consequent":{"type":"Identifier","name":"b"},"alternate":{"type":"Identifier","name":"c"}}`},
		{"!a", `{"type":"UnaryExpression","operator":"!","prefix":true,"argument":{"type":"Identifier","name":"a"}}`},
		{"a >> 2", `{"type":"BinaryExpression","operator":">>","left":{"type":"Identifier","name":"a"},"right":{"type":"Literal","value":2,"raw":"2"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.JSONEq(t, tt.expected, toJSON(t, parseExpr(t, tt.input)))
		})
	}
}

func TestSubscriptsAndCalls(t *testing.T) {
	expr := parseExpr(t, "a.b[c](d, ...e).default")
	member, ok := expr.(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "default", member.Property.(*ast.Identifier).Name)
	call, ok := member.Object.(*ast.CallExpression)
	require.True(t, ok)
	assert.Len(t, call.Arguments, 2)
	assert.IsType(t, &ast.SpreadElement{}, call.Arguments[1])

	n, ok := parseExpr(t, "new Foo.Bar(1)").(*ast.NewExpression)
	require.True(t, ok)
	assert.IsType(t, &ast.MemberExpression{}, n.Callee)
	assert.Len(t, n.Arguments, 1)

	bare, ok := parseExpr(t, "new Foo").(*ast.NewExpression)
	require.True(t, ok)
	assert.Empty(t, bare.Arguments)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input  string
		value  any
		bigint string
	}{
		{"42", float64(42), ""},
		{"0xff", float64(255), ""},
		{"0b101", float64(5), ""},
		{"0o17", float64(15), ""},
		{"017", float64(15), ""},
		{"1_000", float64(1000), ""},
		{"1.5e3", float64(1500), ""},
		{"'str'", "str", ""},
		{"true", true, ""},
		{"null", nil, ""},
		{"123n", nil, "123"},
		{"0x10n", nil, "16"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit, ok := parseExpr(t, tt.input).(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.value, lit.Value)
			assert.Equal(t, tt.bigint, lit.Bigint)
			assert.Equal(t, tt.input, lit.Raw)
		})
	}
}

func TestRegexLiterals(t *testing.T) {
	lit, ok := parseExpr(t, "/a+(b|c)/gi").(*ast.Literal)
	require.True(t, ok)
	require.NotNil(t, lit.Regex)
	assert.Equal(t, "a+(b|c)", lit.Regex.Pattern)
	assert.Equal(t, "gi", lit.Regex.Flags)

	for _, src := range []string{"/^a$/m", "/[a-z]+/im", "/\\d{2,}/y", "/x/dgimsuy"} {
		lit, ok := parseExpr(t, src).(*ast.Literal)
		require.True(t, ok, src)
		assert.Equal(t, src, lit.Raw)
	}

	assert.Equal(t, "Invalid regular expression flags", parseErr(t, "/a/gg").Msg)
	assert.Equal(t, "Invalid regular expression flags", parseErr(t, "/a/x").Msg)
	se := parseErr(t, "/(a/")
	assert.Equal(t, "Invalid regular expression: /(a/", se.Msg)
	assert.NotNil(t, se.Unwrap())
}

func TestObjectsAndArrays(t *testing.T) {
	obj, ok := parseExpr(t, "({a: 1, b, 'c': 2, [d]: 3, m() {}, ...e})").(*ast.ObjectExpression)
	require.True(t, ok)
	require.Len(t, obj.Properties, 6)
	assert.True(t, obj.Properties[1].(*ast.Property).Shorthand)
	assert.True(t, obj.Properties[3].(*ast.Property).Computed)
	assert.True(t, obj.Properties[4].(*ast.Property).Method)
	assert.IsType(t, &ast.SpreadElement{}, obj.Properties[5])

	arr, ok := parseExpr(t, "[1, , 2,]").(*ast.ArrayExpression)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1])
}

func TestArrowFunctions(t *testing.T) {
	tests := []struct {
		input      string
		params     int
		expression bool
	}{
		{"x => x", 1, true},
		{"() => {}", 0, false},
		{"(a, b) => a + b", 2, true},
		{"(a, ...rest) => rest", 2, true},
		{"([a], {b}) => a", 2, true},
		{"(a = 1) => a", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn, ok := parseExpr(t, tt.input).(*ast.ArrowFunctionExpression)
			require.True(t, ok)
			assert.Len(t, fn.Params, tt.params)
			assert.Equal(t, tt.expression, fn.Expression)
		})
	}
}

func TestParenthesizedAndSequence(t *testing.T) {
	id, ok := parseExpr(t, "(a)").(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, 1, id.Start)
	assert.Nil(t, id.Extra)

	seq, ok := parseExpr(t, "(a, b)").(*ast.SequenceExpression)
	require.True(t, ok)
	assert.Equal(t, 1, seq.Start)
	assert.Equal(t, 5, seq.End)

	seq, ok = parseExpr(t, "a, b, c").(*ast.SequenceExpression)
	require.True(t, ok)
	assert.Len(t, seq.Expressions, 3)
}

func TestDestructuring(t *testing.T) {
	prog := parse(t, "let [a, , ...b] = x, {c, d: [e] = f, ...g} = y;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	require.Len(t, decl.Declarations, 2)
	arr := decl.Declarations[0].ID.(*ast.ArrayPattern)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1])
	assert.IsType(t, &ast.RestElement{}, arr.Elements[2])

	obj := decl.Declarations[1].ID.(*ast.ObjectPattern)
	require.Len(t, obj.Properties, 3)
	assert.IsType(t, &ast.AssignmentPattern{}, obj.Properties[1].(*ast.Property).Value)
	assert.IsType(t, &ast.RestElement{}, obj.Properties[2])

	assign, ok := parseExpr(t, "[a, b] = [b, a]").(*ast.AssignmentExpression)
	require.True(t, ok)
	assert.IsType(t, &ast.ArrayPattern{}, assign.Left)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		line  int
		col   int
	}{
		{"let = 1", "Unexpected token", 1, 4},
		{"const x;", "Unexpected token", 1, 7},
		{"a b", "Expected ';'", 1, 2},
		{"f(a", "Expected ','", 1, 3},
		{"1 = 2", "Invalid assignment target", 1, 0},
		{"a + 1 += 2", "Invalid assignment target", 1, 0},
		{"++f()", "Invalid assignment target", 1, 2},
		{"function () {}", "Expected identifier", 1, 9},
		{"if (a", "Expected ')'", 1, 5},
		{"{ a", "Unexpected token", 1, 3},
		{"throw\nx", "Unexpected token", 2, 0},
		{"()", "Unexpected token", 1, 1},
		{"x = 'open", "Unterminated string constant", 1, 4},
		{"\n  )", "Unexpected token", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			se := parseErr(t, tt.input)
			assert.Equal(t, tt.msg, se.Msg)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.col, se.Column)
		})
	}
}

func TestLocations(t *testing.T) {
	prog, err := NewParser(lexer.NewLexerString("a;\n  bc"), Options{Locations: true}).ParseProgram()
	require.NoError(t, err)
	require.NotNil(t, prog.Loc)
	assert.Equal(t, 2, prog.Loc.End.Line)
	assert.Equal(t, 4, prog.Loc.End.Column)

	id := prog.Body[1].(*ast.ExpressionStatement).Expression.(*ast.Identifier)
	require.NotNil(t, id.Loc)
	assert.Equal(t, 2, id.Loc.Start.Line)
	assert.Equal(t, 2, id.Loc.Start.Column)
	assert.Equal(t, 4, id.Loc.End.Column)
}

func TestSpansContainChildren(t *testing.T) {
	prog := parse(t, "function f(a, [b] = c) { return a.b(c) + (d, e) }\nlet {x, y: [z]} = o;")
	ast.Inspect(prog, func(n ast.Node) bool {
		for _, c := range ast.Children(n) {
			assert.True(t, n.Base().Contains(c.Base()), "%s [%d,%d) does not contain %s [%d,%d)",
				n.Type(), n.Base().Start, n.Base().End, c.Type(), c.Base().Start, c.Base().End)
		}
		return true
	})
}

// recorder logs every hook invocation and otherwise behaves like the
// default plugin.
type recorder struct {
	p           *Parser
	calls       []string
	parenStarts []int
}

func (r *recorder) ParseExpressionStatement(start int, expr ast.Expression) (ast.Statement, error) {
	r.calls = append(r.calls, "statement:"+expr.Type())
	return r.p.ParseExpressionStatement(start, expr)
}

func (r *recorder) ParseBindingAtom(atom ast.Pattern) (ast.Pattern, error) {
	r.calls = append(r.calls, "binding:"+atom.Type())
	return atom, nil
}

func (r *recorder) ParseFunctionBody(fn *ast.Function) error {
	r.calls = append(r.calls, "body")
	return nil
}

func (r *recorder) ParseExpression(expr ast.Expression, parenthesized bool, parenStart int) (ast.Expression, error) {
	r.parenStarts = append(r.parenStarts, parenStart)
	if parenthesized {
		r.calls = append(r.calls, "paren-expression")
	} else {
		r.calls = append(r.calls, "expression:"+expr.Type())
	}
	return expr, nil
}

func (r *recorder) ParseParenItem(item ast.Expression) (ast.Expression, error) {
	r.calls = append(r.calls, "item:"+item.Type())
	return item, nil
}

func TestPluginHooks(t *testing.T) {
	p := NewParser(lexer.NewLexerString("let a = 1; function f(b) {} (c); d;"), Options{})
	r := &recorder{p: p}
	p.Use(r)
	_, err := p.ParseProgram()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"binding:Identifier",
		"binding:Identifier",
		"body",
		"item:Identifier",
		"paren-expression",
		"statement:Identifier",
		"expression:Identifier",
		"statement:Identifier",
	}, r.calls)
	assert.Equal(t, []int{28, -1}, r.parenStarts)

	p.Use(nil)
	assert.IsType(t, defaultPlugin{}, p.plugin)
}

func TestSplitAngle(t *testing.T) {
	p := NewParser(lexer.NewLexerString(">>= x"), Options{})
	require.NoError(t, p.Next())
	require.Equal(t, lexer.RIGHT_SHIFT_ASSIGN, p.Cur().Type)

	require.NoError(t, p.SplitAngle())
	assert.Equal(t, 0, p.LastTokStart())
	assert.Equal(t, 1, p.LastTokEnd())
	assert.Equal(t, lexer.GE, p.Cur().Type)
	assert.Equal(t, 1, p.Cur().StartPos)

	require.NoError(t, p.SplitAngle())
	assert.Equal(t, lexer.ASSIGN, p.Cur().Type)

	require.NoError(t, p.Next())
	require.NoError(t, p.Next())
	assert.True(t, p.Is(lexer.EOF))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "identifier", describe(lexer.IDENT))
	assert.Equal(t, "'extends'", describe(lexer.EXTENDS))
	assert.Equal(t, "'=>'", describe(lexer.ARROW))
	assert.Equal(t, "end of input", describe(lexer.EOF))
}
