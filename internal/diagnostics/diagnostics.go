// Package diagnostics renders offense.Offense values as rustc-style
// source snippets for the CLI. Grounded on pkg/errors/enhanced.go's
// EnhancedError.Format, stripped of its package-level file cache —
// this engine already holds the template's bytes in erbsrc.Source, so
// there's nothing to re-read from disk.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/offense"
)

// Snippet is one offense rendered against its two lines of context.
type Snippet struct {
	Filename      string
	Line, Column  int // 1-indexed, the offense's start position
	Length        int // caret span, at least 1
	Message       string
	Severity      offense.Severity
	ContextLines  []string // lines to print, with context
	HighlightLine int       // index into ContextLines of the offense's own line
}

const contextLines = 2

// Build renders one offense against source, per pkg/errors/enhanced.go's
// NewEnhancedErrorSpan: position + context lines + a same-line caret
// span (only computed when the offense doesn't cross a line boundary).
func Build(source *erbsrc.Source, o offense.Offense) Snippet {
	startLine, startCol := source.Position(o.Location.Begin)
	endLine, _ := source.Position(o.Location.End)

	length := 1
	if startLine == endLine {
		if l := o.Location.Len(); l > 1 {
			length = l
		}
	}

	lines, highlight := contextAround(source, startLine)

	return Snippet{
		Filename:      source.Filename,
		Line:          startLine,
		Column:        startCol,
		Length:        length,
		Message:       o.Message,
		Severity:      o.Severity,
		ContextLines:  lines,
		HighlightLine: highlight,
	}
}

// contextAround returns up to contextLines lines of context before and
// after targetLine (1-indexed), plus the index of targetLine within
// the returned slice.
func contextAround(source *erbsrc.Source, targetLine int) ([]string, int) {
	first := targetLine - contextLines
	if first < 1 {
		first = 1
	}
	last := targetLine + contextLines
	if n := source.LineCount(); last > n {
		last = n
	}

	lines := make([]string, 0, last-first+1)
	for ln := first; ln <= last; ln++ {
		lines = append(lines, source.LineText(ln))
	}
	return lines, targetLine - first
}

// Format renders snip in the teacher's layout: a header line, the
// source context with line numbers, and a caret line with the
// message as its annotation.
func (s Snippet) Format() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s: %s\n\n", strings.ToUpper(string(s.Severity)), s.Message)
	fmt.Fprintf(&buf, "  --> %s:%d:%d\n\n", s.Filename, s.Line, s.Column)

	startLine := s.Line - s.HighlightLine
	for i, line := range s.ContextLines {
		lineNum := startLine + i
		fmt.Fprintf(&buf, "  %4d | %s\n", lineNum, line)
		if i == s.HighlightLine {
			indent := s.Column - 1
			if indent < 0 {
				indent = 0
			}
			fmt.Fprintf(&buf, "       | %s%s\n", strings.Repeat(" ", indent), strings.Repeat("^", s.Length))
		}
	}
	return buf.String()
}
