package driver

import (
	stderrors "errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nooga/tsgrammar/pkg/ast"
	"github.com/nooga/tsgrammar/pkg/errors"
	"github.com/nooga/tsgrammar/pkg/lexer"
	"github.com/nooga/tsgrammar/pkg/parser"
	"github.com/nooga/tsgrammar/pkg/source"
	"github.com/nooga/tsgrammar/pkg/typescript"
)

// Options controls a single parse.
type Options struct {
	// Locations adds line/column locations to every node.
	Locations bool
	// SourceName names the input in diagnostics when parsing a string.
	SourceName string
	// Logger receives debug traces from the parser; nil discards them.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// NewParser builds a host parser over src with the type grammar installed.
func NewParser(src *source.SourceFile, opts Options) *parser.Parser {
	p := parser.NewParser(lexer.NewLexer(src), parser.Options{
		Locations: opts.Locations,
		Logger:    opts.logger(),
	})
	typescript.Install(p)
	return p
}

// Parse parses a whole source file.
func Parse(src *source.SourceFile, opts Options) (*ast.Program, error) {
	log := opts.logger()
	log.Debug("parse", zap.String("source", src.DisplayPath()), zap.Int("bytes", len(src.Content)))
	prog, err := NewParser(src, opts).ParseProgram()
	if err != nil {
		log.Debug("parse failed", zap.Error(err))
		return nil, err
	}
	return prog, nil
}

// ParseString parses code held in memory.
func ParseString(code string, opts Options) (*ast.Program, error) {
	src := source.NewEvalSource(code)
	if opts.SourceName != "" {
		src = source.NewSourceFile(opts.SourceName, "", code)
	}
	return Parse(src, opts)
}

// ParseFile reads and parses a file. The source is returned even when
// parsing fails so that callers can display the error in context.
func ParseFile(path string, opts Options) (*ast.Program, *source.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	src := source.FromFile(path, string(content))
	prog, err := Parse(src, opts)
	return prog, src, err
}

// AsSyntaxError extracts the syntax error from err, if there is one.
func AsSyntaxError(err error) (*errors.SyntaxError, bool) {
	var se *errors.SyntaxError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}
