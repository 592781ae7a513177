package transpiler

import (
	"github.com/indentlint/erblayout/internal/erbast"
	"github.com/indentlint/erblayout/internal/erbrange"
)

// visitEmbedded implements spec.md §4.1's Cases A-E for a non-comment
// embedded code tag. Comments are parsed as a separate node kind and
// handled by visitComment.
func (t *Transpiler) visitEmbedded(n *erbast.Node) {
	if t.insidePre {
		return
	}

	code := string(t.source.Content[n.CodeRange.Begin:n.CodeRange.End])
	shape := classify(code)
	trimmedCode := erbrange.New(n.CodeRange.Begin+shape.trimStart, n.CodeRange.Begin+shape.trimEnd)
	atEOF := n.Range.End == t.source.Len()

	switch {
	case shape.isMultiline && shape.startsOnNewline && shape.trailingBlock:
		t.caseA(n, shape)
	case shape.isMultiline && shape.startsOnNewline:
		t.caseB(n, shape, trimmedCode)
	case shape.isMultiline:
		t.caseC(n, shape, trimmedCode)
	case n.TagEndsOnNewline:
		t.caseD(n, shape, trimmedCode, atEOF)
	default:
		t.caseE(n, shape, trimmedCode, atEOF)
	}
}

// Case A: a code chunk that starts on its own line and ends opening a
// block can't be wrapped in begin/end without confusing the analyzer,
// so its indentation is never checked.
func (t *Transpiler) caseA(n *erbast.Node, shape codeShape) {
	opener := trailingBlockOpener.FindString(shape.stripped)
	t.emit(n.Range, "__with_block "+opener)
}

// Case B: a code chunk starting on its own line and spanning multiple
// lines. Wrapping it in begin/end gives the host analyzer a block whose
// body indentation is checked against the <% column.
func (t *Transpiler) caseB(n *erbast.Node, shape codeShape, trimmedCode erbrange.Range) {
	t.emitPoint(n.Range.Begin, "begin")
	leadingWS := erbrange.New(n.CodeRange.Begin, n.CodeRange.Begin+shape.trimStart)
	t.emit(leadingWS, shape.leadingWS)
	t.emitCode(n.Range, trimmedCode, shape.stripped)
	t.emitPoint(n.Range.End, "end")
}

// Case C: multiline code not starting on its own line. A same-column
// placeholder reserves the columns the "<%..." prefix occupied, so
// later lines of the code are still checked against that column.
func (t *Transpiler) caseC(n *erbast.Node, shape codeShape, trimmedCode erbrange.Range) {
	prefix := erbrange.New(n.Range.Begin, n.CodeRange.Begin)
	t.emit(prefix, repeatToken("ph", prefix.Len()))
	t.emitPoint(n.CodeRange.Begin, ";")
	t.emitCode(n.Range, trimmedCode, shape.stripped)
}

// Case D: single-line code that ends its source line. No placeholder
// is needed since the IR line ends too (the following Text node copies
// the real newline); a trailing ";" is only needed if there is no
// following Text node to supply one, i.e. the tag is the last thing in
// the template.
func (t *Transpiler) caseD(n *erbast.Node, shape codeShape, trimmedCode erbrange.Range, atEOF bool) {
	ir := shape.stripped
	if atEOF {
		ir += ";"
	}
	t.emitCode(n.Range, trimmedCode, ir)
}

// Case E: single-line code with more content following on the same
// source line. Placeholders reserve the "<%..." prefix's columns (and,
// lacking a trailing newline, the "%>..." suffix's) so later content on
// the line isn't mistaken for the start of a new one.
func (t *Transpiler) caseE(n *erbast.Node, shape codeShape, trimmedCode erbrange.Range, atEOF bool) {
	// Per spec.md §9 "Placeholder sizing": the placeholder is one byte
	// shorter than the span it reserves, leaving room for the ";" that
	// follows it, so the code that comes after lands on its original
	// column.
	prefix := erbrange.New(n.Range.Begin, n.CodeRange.Begin+shape.trimStart)
	t.emit(prefix, repeatToken("ph", prefix.Len()-1))
	t.emitPoint(prefix.End, ";")
	t.emitCode(n.Range, trimmedCode, shape.stripped)
	if atEOF {
		return
	}
	suffix := erbrange.New(n.CodeRange.Begin+shape.trimEnd, n.Range.End)
	if suffix.Len() > 0 {
		t.emit(suffix, repeatToken("ph", suffix.Len()-1))
	}
	t.emitPoint(n.Range.End, ";")
}
