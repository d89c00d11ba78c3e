package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineInfo(t *testing.T) {
	sf := NewEvalSource("ab\ncd\r\nef\rg")
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 0}},
		{2, Position{Line: 1, Column: 2}},
		{3, Position{Line: 2, Column: 0}},
		{4, Position{Line: 2, Column: 1}},
		{7, Position{Line: 3, Column: 0}},
		{10, Position{Line: 4, Column: 0}},
		{-1, Position{Line: 1, Column: 0}},
		{100, Position{Line: 4, Column: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sf.LineInfo(tt.offset), "offset %d", tt.offset)
	}
}

func TestHasLineBreak(t *testing.T) {
	sf := NewEvalSource("a\nb c d")
	assert.True(t, sf.HasLineBreak(0, 3))
	assert.False(t, sf.HasLineBreak(2, 5))
	assert.True(t, sf.HasLineBreak(1, 2))
	assert.False(t, sf.HasLineBreak(4, len(sf.Content)))
	assert.False(t, sf.HasLineBreak(3, 3))
	assert.False(t, sf.HasLineBreak(-5, 1))

	for _, sep := range []string{"\r", "\r\n", "\u2028", "\u2029"} {
		sf := NewEvalSource("a" + sep + "b")
		assert.True(t, sf.HasLineBreak(0, len(sf.Content)), "%q", sep)
	}
}

func TestLineTerminatorsAgree(t *testing.T) {
	content := "a\u2028bc\u2029d\re\r\nf\ng"
	sf := NewEvalSource(content)
	lines := SplitLines(content)
	assert.Equal(t, []string{"a", "bc", "d", "e", "f", "g"}, lines)
	assert.Equal(t, lines, sf.Lines())

	offset := 0
	for i, line := range lines {
		assert.Equal(t, Position{Line: i + 1, Column: 0}, sf.LineInfo(offset), "line %d", i+1)
		assert.False(t, sf.HasLineBreak(offset, offset+len(line)), "line %d", i+1)
		end := offset + len(line)
		offset = end + LineBreakLen(content, end)
		if i < len(lines)-1 {
			assert.True(t, sf.HasLineBreak(end, offset), "after line %d", i+1)
		}
	}
	assert.Equal(t, len(content), offset)
}

func TestLineBreakLen(t *testing.T) {
	tests := []struct {
		input string
		i     int
		want  int
	}{
		{"\n", 0, 1},
		{"\r", 0, 1},
		{"\r\n", 0, 2},
		{"\u2028", 0, 3},
		{"\u2029", 0, 3},
		{"\u2027", 0, 0},
		{"ab", 1, 0},
		{"a", 5, 0},
		{"a", -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LineBreakLen(tt.input, tt.i), "%q at %d", tt.input, tt.i)
	}
}

func TestConstructors(t *testing.T) {
	f := FromFile("/tmp/dir/decls.ts", "x")
	assert.Equal(t, "decls.ts", f.Name)
	assert.Equal(t, "/tmp/dir/decls.ts", f.DisplayPath())
	assert.True(t, f.IsFile())

	for name, sf := range map[string]*SourceFile{
		"<eval>":  NewEvalSource(""),
		"<repl>":  NewReplSource(""),
		"<stdin>": NewStdinSource(""),
	} {
		assert.Equal(t, name, sf.DisplayPath())
		assert.False(t, sf.IsFile())
	}
	assert.Equal(t, []string{"a", "b"}, NewEvalSource("a\nb").Lines())
}
