package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/driver"
	"github.com/nooga/tsgrammar/pkg/source"
)

func newTestApp(format driver.Format) (*app, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cfg := driver.DefaultConfig()
	cfg.Format = format
	return &app{cfg: cfg, logger: zap.NewNop(), out: &out, errOut: &errOut}, &out, &errOut
}

func TestRun(t *testing.T) {
	a, out, errOut := newTestApp(driver.FormatJSON)
	require.True(t, a.run(source.NewEvalSource("let x: A | B")))
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), `"type": "TSUnionType"`)
	assert.NotContains(t, out.String(), `"start"`)

	a, out, _ = newTestApp(driver.FormatYAML)
	a.spans = true
	require.True(t, a.run(source.NewEvalSource("type T = string")))
	assert.Contains(t, out.String(), "type: TSTypeAliasDeclaration")
	assert.Contains(t, out.String(), "start: 0")
}

func TestRunReportsSyntaxError(t *testing.T) {
	color.NoColor = true
	a, out, errOut := newTestApp(driver.FormatJSON)
	require.False(t, a.run(source.NewEvalSource("let x: ")))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "<eval>:1:8: Syntax Error:")
	assert.Contains(t, errOut.String(), "  let x:\n")
}

func TestRunFile(t *testing.T) {
	a, out, errOut := newTestApp(driver.FormatJSON)
	path := filepath.Join(t.TempDir(), "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("interface A { a: B }"), 0o644))
	require.True(t, a.runFile(path))
	assert.Contains(t, out.String(), "TSInterfaceDeclaration")

	require.False(t, a.runFile(filepath.Join(t.TempDir(), "missing.ts")))
	assert.Contains(t, errOut.String(), "Failed to read file")
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, driver.DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(driver.DefaultConfigFile, []byte("locations: true\n"), 0o644))
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Locations)
}

func TestRunFiles(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ts")
	bad := filepath.Join(dir, "bad.ts")
	require.NoError(t, os.WriteFile(good, []byte("type A = B[]"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("type B = ;"), 0o644))

	a, out, errOut := newTestApp(driver.FormatJSON)
	require.False(t, a.runFiles([]string{good, bad}, 2))
	assert.Contains(t, out.String(), "--- "+good+" ---\n")
	assert.Contains(t, out.String(), "--- "+bad+" ---\n")
	assert.Contains(t, out.String(), "TSArrayType")
	assert.Contains(t, errOut.String(), bad+":1:10: Syntax Error:")

	a, _, _ = newTestApp(driver.FormatJSON)
	assert.True(t, a.runFiles([]string{good, good}, 0))
}
