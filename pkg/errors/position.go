package errors

import "github.com/nooga/tsgrammar/pkg/source"

// Position represents a specific location in the source code.
// It includes line and column numbers for human-readability,
// and byte offsets (0-based) for tooling.
type Position struct {
	Line     int                // 1-based line number
	Column   int                // 0-based column number (byte index within the line)
	StartPos int                // 0-based byte offset of the start of the offending token
	EndPos   int                // 0-based byte offset of the end of the offending token (exclusive)
	Source   *source.SourceFile // Reference to the source file
}

// At builds a Position for a token span, resolving line and column through
// the source file when one is available.
func At(src *source.SourceFile, start, end int) Position {
	pos := Position{StartPos: start, EndPos: end, Source: src}
	if src != nil {
		lc := src.LineInfo(start)
		pos.Line, pos.Column = lc.Line, lc.Column
	}
	return pos
}
