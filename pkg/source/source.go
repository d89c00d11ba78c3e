package source

import (
	"path/filepath"
	"sort"
	"strings"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string // Display name (e.g., "decls.ts", "<stdin>", "<eval>")
	Path    string // Full file path (empty for REPL/eval)
	Content string // The source code content

	lines      []string // Cached split lines (lazy initialization)
	lineStarts []int    // Byte offsets where each line begins (lazy initialization)
}

// Position is a 1-based line and 0-based column, the same convention the
// ESTree "loc" objects use.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// NewSourceFile creates a new source file
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewEvalSource creates a source file for -e input
func NewEvalSource(content string) *SourceFile {
	return &SourceFile{Name: "<eval>", Content: content}
}

// NewReplSource creates a source file for REPL input
func NewReplSource(content string) *SourceFile {
	return &SourceFile{Name: "<repl>", Content: content}
}

// NewStdinSource creates a source file for stdin input
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{Name: "<stdin>", Content: content}
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// LineTerminators holds every character that ends a line: LF, CR, LS and
// PS. CR directly followed by LF is a single terminator.
const LineTerminators = "\n\r\u2028\u2029"

// LineBreakLen returns the byte length of the line terminator starting at
// s[i], or 0 if there is none.
func LineBreakLen(s string, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	switch s[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(s) && s[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		if strings.HasPrefix(s[i:], "\u2028") || strings.HasPrefix(s[i:], "\u2029") {
			return 3
		}
	}
	return 0
}

// SplitLines splits s at every line terminator and drops the terminators.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		n := LineBreakLen(s, i)
		if n == 0 {
			i++
			continue
		}
		lines = append(lines, s[start:i])
		i += n
		start = i
	}
	return append(lines, s[start:])
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = SplitLines(sf.Content)
	}
	return sf.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile returns true if this represents an actual file (has a path)
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}

// LineInfo maps a byte offset to its line and column. Offsets past the end
// of the content are clamped to the end.
func (sf *SourceFile) LineInfo(offset int) Position {
	if sf.lineStarts == nil {
		sf.lineStarts = []int{0}
		for i := 0; i < len(sf.Content); {
			n := LineBreakLen(sf.Content, i)
			if n == 0 {
				i++
				continue
			}
			i += n
			sf.lineStarts = append(sf.lineStarts, i)
		}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(sf.Content) {
		offset = len(sf.Content)
	}
	line := sort.Search(len(sf.lineStarts), func(i int) bool { return sf.lineStarts[i] > offset }) - 1
	return Position{Line: line + 1, Column: offset - sf.lineStarts[line]}
}

// HasLineBreak reports whether the content between the two offsets contains
// one of LineTerminators.
func (sf *SourceFile) HasLineBreak(from, to int) bool {
	if from < 0 {
		from = 0
	}
	if to > len(sf.Content) {
		to = len(sf.Content)
	}
	if from >= to {
		return false
	}
	return strings.ContainsAny(sf.Content[from:to], LineTerminators)
}
