// Package erbsrc provides the read-only view of the original template
// source: raw bytes, a filename, and byte-range-to-line/column
// conversion. The engine never mutates a Source; corrections produce a
// new byte slice rather than editing in place.
package erbsrc

import (
	"go/token"

	"github.com/indentlint/erblayout/internal/erbrange"
)

// Source is the original template: its bytes plus a line index built
// by New on top of go/token.FileSet, the same tool used throughout the
// teacher codebase for position bookkeeping.
type Source struct {
	Filename string
	Content  []byte

	fset *token.FileSet
	file *token.File
}

// New wraps raw template bytes into a Source.
func New(filename string, content []byte) *Source {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, fset.Base(), len(content))
	file.SetLinesForContent(content)
	return &Source{
		Filename: filename,
		Content:  content,
		fset:     fset,
		file:     file,
	}
}

// Len returns the length of the source buffer.
func (s *Source) Len() int {
	return len(s.Content)
}

// Position converts a byte offset into a 1-based line/column. Offsets
// outside [0, len(Content)] are clamped to the nearest valid offset,
// since diagnostics must never reference a position outside the
// buffer (spec.md §8 invariant 1).
func (s *Source) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Content) {
		offset = len(s.Content)
	}
	pos := s.file.Pos(offset)
	p := s.fset.Position(pos)
	return p.Line, p.Column
}

// Text returns the bytes covered by r.
func (s *Source) Text(r erbrange.Range) []byte {
	return s.Content[r.Begin:r.End]
}

// LineCount returns the number of lines in the source buffer.
func (s *Source) LineCount() int {
	return s.file.LineCount()
}

// LineText returns the full content of the given 1-based line, without
// its trailing newline, or "" for a line number outside the source.
func (s *Source) LineText(line int) string {
	lineCount := s.file.LineCount()
	if line < 1 || line > lineCount {
		return ""
	}
	start := s.file.LineStart(line)
	var end token.Pos
	if line == lineCount {
		end = s.file.Pos(len(s.Content))
	} else {
		end = s.file.LineStart(line + 1)
	}
	text := s.Content[s.file.Offset(start):s.file.Offset(end)]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text)
}
