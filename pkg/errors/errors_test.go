package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nooga/tsgrammar/pkg/source"
)

func TestSyntaxError(t *testing.T) {
	src := source.NewEvalSource("let x = ;\ntype = 5")
	err := Expected(At(src, 8, 9), "expression")
	assert.Equal(t, "Syntax Error at 1:8 (offset 8): Expected expression", err.Error())
	assert.Equal(t, "expression", err.Expected)
	assert.Equal(t, "Syntax", err.Kind())

	u := Unexpected(At(src, 15, 16))
	assert.Equal(t, 2, u.Line)
	assert.Equal(t, 5, u.Column)
	assert.Equal(t, "Unexpected token", u.Message())

	cause := stderrors.New("bad pattern")
	wrapped := u.CausedBy(cause)
	assert.True(t, stderrors.Is(wrapped, cause))
}

func TestAtWithoutSource(t *testing.T) {
	pos := At(nil, 3, 4)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 3, pos.StartPos)
}

func TestDisplayErrors(t *testing.T) {
	color.NoColor = true
	src := source.NewSourceFile("decls.ts", "", "interface Foo {\n  a: string\n  b number\n}")
	err := Unexpected(At(src, 32, 38))

	var buf bytes.Buffer
	DisplayErrors(&buf, src.Content, []*SyntaxError{err})
	out := buf.String()
	require.Contains(t, out, "decls.ts:3:5: Syntax Error: Unexpected token")
	assert.Contains(t, out, "  b number\n")
	assert.Contains(t, out, "    ^~~~~~\n")
}

func TestDisplayErrorsLineTerminators(t *testing.T) {
	color.NoColor = true
	for _, sep := range []string{"\r", "\u2028", "\r\n"} {
		content := "let a: A" + sep + "let b: ?"
		src := source.NewSourceFile("sep.ts", "", content)
		off := len(content) - 1
		err := Unexpected(At(src, off, off+1))
		require.Equal(t, 2, err.Line, "%q", sep)

		var buf bytes.Buffer
		DisplayErrors(&buf, src.Content, []*SyntaxError{err})
		out := buf.String()
		assert.Contains(t, out, "sep.ts:2:8: Syntax Error: Unexpected token", "%q", sep)
		assert.Contains(t, out, "  let b: ?\n         ^\n", "%q", sep)
		assert.NotContains(t, out, "let a", "%q", sep)
	}
}

func TestDisplayErrorsOutOfRange(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	DisplayErrors(&buf, "x", []*SyntaxError{{Position: Position{Line: 9}, Msg: "Unexpected token"}})
	assert.Equal(t, "<input>: Syntax Error: Unexpected token\n", buf.String())

	buf.Reset()
	DisplayErrors(&buf, "x", nil)
	assert.Empty(t, buf.String())
}
