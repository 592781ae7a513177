// Package transpiler implements the IRTranspiler: it walks an erbast
// tree and produces IR text whose leading whitespace mirrors the
// original template, plus the source map relating the two, per
// spec.md §4.1.
package transpiler

import (
	"fmt"
	"strings"

	"github.com/indentlint/erblayout/internal/erbast"
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/ir"
	"github.com/indentlint/erblayout/internal/sourcemap"
)

// Transpiler holds the transpiler's local, per-session state: the IR
// buffer under construction, the source map, the stack of currently
// open tag names, and whether traversal is inside a <pre> subtree.
// None of this survives past a single Transpile call.
type Transpiler struct {
	source    *erbsrc.Source
	buf       strings.Builder
	smap      *sourcemap.Map
	stack     []string
	insidePre bool
}

// Transpile builds the IR for root, a Document node.
func Transpile(source *erbsrc.Source, root *erbast.Node) *ir.IR {
	if root.Kind != erbast.KindDocument {
		panic(fmt.Sprintf("transpiler: Transpile requires a Document root, got %s", root.Kind))
	}
	t := &Transpiler{source: source, smap: sourcemap.New()}
	t.visitChildren(root.Children)
	return ir.New(source, t.buf.String(), t.smap)
}

// emit appends irBytes to the IR buffer and records a source-map entry
// mapping the new IR range back to origin.
func (t *Transpiler) emit(origin erbrange.Range, irBytes string) erbrange.Range {
	start := t.buf.Len()
	t.buf.WriteString(irBytes)
	dest := erbrange.New(start, start+len(irBytes))
	t.smap.Add(dest, origin)
	return dest
}

// emitPoint is emit for IR bytes with no meaningful multi-byte origin:
// punctuation the transpiler synthesizes rather than copies.
func (t *Transpiler) emitPoint(at int, irBytes string) erbrange.Range {
	return t.emit(erbrange.Point(at), irBytes)
}

// emitCode is the embedded-tag emission primitive. It writes irBytes
// once but records two entries sharing the same dest range, per
// spec.md §4.1: wholeTag first (an endpoint map covering the entire
// "<% ... %>" span, so exact-range and insertion-point lookups recover
// the whole tag) and trimmedCode second (a length-preserving map over
// just the stripped code bytes, so sub-range lookups inside the code
// resolve relatively). Insertion order matters: Map.Translate's exact
// and translate_beginning steps return the first matching entry.
func (t *Transpiler) emitCode(wholeTag, trimmedCode erbrange.Range, irBytes string) erbrange.Range {
	start := t.buf.Len()
	t.buf.WriteString(irBytes)
	dest := erbrange.New(start, start+len(irBytes))
	t.smap.Add(dest, wholeTag)
	t.smap.Add(dest, trimmedCode)
	return dest
}

func (t *Transpiler) visitChildren(children []*erbast.Node) {
	for _, c := range children {
		t.visit(c)
	}
}

func (t *Transpiler) visit(n *erbast.Node) {
	switch n.Kind {
	case erbast.KindTag:
		t.visitTag(n)
	case erbast.KindText:
		t.visitText(n)
	case erbast.KindEmbedded:
		t.visitEmbedded(n)
	case erbast.KindComment:
		t.visitComment(n)
	default:
		panic(fmt.Sprintf("transpiler: unexpected node kind %s", n.Kind))
	}
}

func (t *Transpiler) visitTag(n *erbast.Node) {
	if t.insidePre {
		return
	}

	t.emit(n.NameRange, repeatToken("tag", n.NameRange.Len()))
	t.emitPoint(n.NameRange.End, "(")
	t.visitAttrs(n.Attrs)
	t.emitPoint(n.OpenTagRange.End, ")")

	if n.Void || n.SelfClosing {
		t.emitPoint(n.OpenTagRange.End, ";")
		return
	}

	t.emitPoint(n.OpenTagRange.End, " {")
	t.stack = append(t.stack, n.TagName)

	isPre := strings.EqualFold(n.TagName, "pre")
	if isPre {
		t.insidePre = true
		t.copyLeadingWhitespaceFrom(n.OpenTagRange.End)
	} else {
		t.visitChildren(n.Children)
	}

	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}

	if !n.HasCloseTag {
		return
	}

	if isPre {
		t.insidePre = false
		t.copyLeadingWhitespaceOfLineContaining(n.CloseRange.Begin)
	}
	t.emit(n.CloseRange, "}")
	t.emitPoint(n.CloseRange.End, ";")
}

func (t *Transpiler) visitAttrs(attrs []erbast.Attribute) {
	for i, a := range attrs {
		t.emit(a.Range, repeatToken("line", a.Range.Len()))
		if i < len(attrs)-1 {
			t.emitPoint(a.Range.End, ",")
			t.copyBetween(a.Range.End, attrs[i+1].Range.Begin)
		}
	}
}

// copyBetween copies source bytes [b, e) verbatim into the IR, used for
// the whitespace (including newlines) separating attributes.
func (t *Transpiler) copyBetween(b, e int) {
	if e <= b {
		return
	}
	t.emit(erbrange.New(b, e), string(t.source.Content[b:e]))
}

// copyLeadingWhitespaceFrom copies the run of whitespace bytes starting
// at from, up to (but not including) the first non-whitespace byte.
// Used for <pre>'s opening tag per spec.md §4.1.
func (t *Transpiler) copyLeadingWhitespaceFrom(from int) {
	content := t.source.Content
	end := from
	for end < len(content) && isSpaceByte(content[end]) {
		end++
	}
	t.copyBetween(from, end)
}

// copyLeadingWhitespaceOfLineContaining copies the leading whitespace of
// the line containing offset, i.e. [lineStart, offset), used to recover
// a </pre> close tag's column once pre content has been skipped.
func (t *Transpiler) copyLeadingWhitespaceOfLineContaining(offset int) {
	content := t.source.Content
	lineStart := offset
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	for i := lineStart; i < offset; i++ {
		if !isSpaceByte(content[i]) {
			return // not pure whitespace; don't guess
		}
	}
	t.copyBetween(lineStart, offset)
}

func (t *Transpiler) visitComment(n *erbast.Node) {
	if t.insidePre {
		return
	}
	if !t.startsOwnLine(n.Range.Begin) {
		return
	}
	t.emit(n.Range, "__comment;")
}

// startsOwnLine reports whether offset is preceded only by whitespace
// back to the start of its line.
func (t *Transpiler) startsOwnLine(offset int) bool {
	content := t.source.Content
	for i := offset - 1; i >= 0; i-- {
		switch {
		case content[i] == '\n':
			return true
		case isSpaceByte(content[i]):
			continue
		default:
			return false
		}
	}
	return true
}
