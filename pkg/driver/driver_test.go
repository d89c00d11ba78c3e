package driver

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/nooga/tsgrammar/pkg/ast"
)

func TestParseString(t *testing.T) {
	prog, err := ParseString("interface Point { x: number; y: number }\nlet p: Point = (q as Point);", Options{})
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)

	_, ok := prog.Body[0].(*ast.TSInterfaceDeclaration)
	assert.True(t, ok, "got %T", prog.Body[0])
	decl, ok := prog.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok, "got %T", prog.Body[1])
	id := decl.Declarations[0].ID.(*ast.Identifier)
	require.NotNil(t, id.TypeAnnotation)
	_, ok = decl.Declarations[0].Init.(*ast.TSAsExpression)
	assert.True(t, ok, "got %T", decl.Declarations[0].Init)
	assert.Nil(t, prog.Loc)
}

func TestParseStringInitializerAs(t *testing.T) {
	// Initializers are parsed below the expression hook, so a bare `as`
	// after one ends the declaration early.
	_, err := ParseString("let p = q as T", Options{})
	se, ok := AsSyntaxError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "Expected ';'", se.Msg)
	assert.Equal(t, 10, se.StartPos)
}

func TestParseStringLocations(t *testing.T) {
	prog, err := ParseString("let a: A", Options{Locations: true})
	require.NoError(t, err)
	require.NotNil(t, prog.Loc)
	assert.Equal(t, 1, prog.Loc.Start.Line)
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		sourceName string
		wantSource string
	}{
		{"eval", "type = ;", "", "<eval>"},
		{"named", "let x: string |", "decls.ts", "decls.ts"},
		{"unclosed interface", "interface A {", "a.ts", "a.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseString(tt.input, Options{SourceName: tt.sourceName})
			require.Error(t, err)
			assert.Nil(t, prog)
			se, ok := AsSyntaxError(err)
			require.True(t, ok, "got %T", err)
			require.NotNil(t, se.Source)
			assert.Equal(t, tt.wantSource, se.Source.DisplayPath())
			assert.Equal(t, 1, se.Line)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.ts")
	require.NoError(t, os.WriteFile(path, []byte("type Shape = Circle | Square\n"), 0o644))

	prog, src, err := ParseFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
	assert.Equal(t, "shapes.ts", src.Name)
	assert.Equal(t, path, src.DisplayPath())

	bad := filepath.Join(dir, "bad.ts")
	require.NoError(t, os.WriteFile(bad, []byte("\ntype A = <"), 0o644))
	prog, src, err = ParseFile(bad, Options{})
	require.Error(t, err)
	assert.Nil(t, prog)
	require.NotNil(t, src, "source is kept for diagnostics")
	se, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, 2, se.Line)
	assert.Equal(t, 9, se.Column)
}

func TestParseFileMissing(t *testing.T) {
	_, src, err := ParseFile(filepath.Join(t.TempDir(), "nope.ts"), Options{})
	require.Error(t, err)
	assert.Nil(t, src)
	assert.Contains(t, err.Error(), "failed to read file")
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	_, ok := AsSyntaxError(err)
	assert.False(t, ok)
}

func TestParseLogsThroughOptions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := ParseString("type A = B", Options{Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("parse").Len())
	assert.Equal(t, 1, logs.FilterMessage("type alias").Len())

	_, err = ParseString("type A =", Options{Logger: zap.New(core)})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("parse failed").Len())
}

func TestEncode(t *testing.T) {
	prog, err := ParseString("let x: Foo<string>", Options{})
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, prog, FormatJSON, ast.EncodeOptions{OmitSpans: true}))
		assert.NotContains(t, buf.String(), `"start"`)

		var got struct {
			Type string `json:"type"`
			Body []struct {
				Type         string `json:"type"`
				Declarations []struct {
					ID struct {
						Name           string `json:"name"`
						TypeAnnotation struct {
							Type           string `json:"type"`
							TypeAnnotation struct {
								Type string `json:"type"`
							} `json:"typeAnnotation"`
						} `json:"typeAnnotation"`
					} `json:"id"`
				} `json:"declarations"`
			} `json:"body"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Program", got.Type)
		require.Len(t, got.Body, 1)
		assert.Equal(t, "VariableDeclaration", got.Body[0].Type)
		id := got.Body[0].Declarations[0].ID
		assert.Equal(t, "x", id.Name)
		assert.Equal(t, "TSTypeAnnotation", id.TypeAnnotation.Type)
		assert.Equal(t, "TSTypeReference", id.TypeAnnotation.TypeAnnotation.Type)
	})

	t.Run("json with spans", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, prog, FormatJSON, ast.EncodeOptions{}))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, float64(0), got["start"])
		assert.Equal(t, float64(18), got["end"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, prog, FormatYAML, ast.EncodeOptions{OmitSpans: true}))
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Program", got["type"])
		assert.Equal(t, "script", got["sourceType"])
		assert.Len(t, got["body"], 1)
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, prog, FormatPretty, ast.EncodeOptions{}))
		assert.Contains(t, buf.String(), "ast.Program")
		assert.Contains(t, buf.String(), "ast.TSTypeReference")
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		err := Encode(&buf, prog, Format("xml"), ast.EncodeOptions{})
		require.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "yaml", "pretty"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("JSON")
	assert.ErrorContains(t, err, `unknown output format "JSON"`)
}
