package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"github.com/nooga/tsgrammar/pkg/source"
)

// SyntaxError represents an error during lexing or parsing. It is the only
// error kind the parser produces; it is fatal to the parse that raised it.
type SyntaxError struct {
	Position
	Msg      string
	Expected string // Description of the expected token, if any
	Cause    error  // Underlying cause, if any (e.g. a regexp compile error)
}

// Unexpected builds the generic "Unexpected token" error.
func Unexpected(pos Position) *SyntaxError {
	return &SyntaxError{Position: pos, Msg: "Unexpected token"}
}

// Expected builds the error raised when a mandatory token is missing.
func Expected(pos Position, what string) *SyntaxError {
	return &SyntaxError{Position: pos, Msg: fmt.Sprintf("Expected %s", what), Expected: what}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d (offset %d): %s", e.Line, e.Column, e.StartPos, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// --- Error Reporting ---

var (
	headerColor = color.New(color.FgRed, color.Bold)
	markerColor = color.New(color.FgGreen, color.Bold)
)

// DisplayErrors prints syntax errors to w in a user-friendly format,
// including the source line and a position marker.
func DisplayErrors(w io.Writer, src string, errs []*SyntaxError) {
	if len(errs) == 0 {
		return
	}

	lines := source.SplitLines(src)

	for _, err := range errs {
		name := "<input>"
		if err.Source != nil {
			name = err.Source.DisplayPath()
		}

		lineIdx := err.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			headerColor.Fprintf(w, "%s: %s Error: %s\n", name, err.Kind(), err.Msg)
			continue
		}

		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")

		headerColor.Fprintf(w, "%s:%d:%d: %s Error: %s\n", name, err.Line, err.Column+1, err.Kind(), err.Msg)
		fmt.Fprintf(w, "  %s\n", sourceLine)

		col := err.Column
		if col > len(sourceLine) {
			col = len(sourceLine)
		}
		marker := markerPadding(sourceLine[:col]) + "^"
		if span := err.EndPos - err.StartPos; span > 1 && col+span <= len(sourceLine) {
			marker += strings.Repeat("~", span-1)
		}
		fmt.Fprint(w, "  ")
		markerColor.Fprintln(w, marker)
		fmt.Fprintln(w)
	}
}

// markerPadding returns whitespace as wide as prefix renders in a terminal.
// Tabs are preserved so the caret lines up with tab-indented sources.
func markerPadding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
