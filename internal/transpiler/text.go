package transpiler

import (
	"github.com/indentlint/erblayout/internal/erbast"
	"github.com/indentlint/erblayout/internal/erbrange"
)

// visitText handles a Text container: a run of literal strings and
// embedded children, per spec.md §4.1 "Text". Inside <pre> the whole
// subtree is opaque and skipped.
func (t *Transpiler) visitText(n *erbast.Node) {
	if t.insidePre {
		return
	}
	if n.IsLeafText() {
		t.emitTextLiteral(n)
		return
	}
	t.visitChildren(n.Children)
}

// emitTextLiteral emits one literal text leaf: newlines and whitespace
// runs are copied byte-for-byte; non-whitespace payload is replaced by
// a same-length "text"-repeated token (or, for a single byte, nothing
// but the terminating ";", so the IR stays syntactically sane).
func (t *Transpiler) emitTextLiteral(n *erbast.Node) {
	content := []byte(n.Literal)
	base := n.Range.Begin
	i := 0
	for i < len(content) {
		if isSpaceByte(content[i]) {
			start := i
			for i < len(content) && isSpaceByte(content[i]) {
				i++
			}
			t.copyBetween(base+start, base+i)
			continue
		}
		start := i
		for i < len(content) && !isSpaceByte(content[i]) {
			i++
		}
		segLen := i - start
		origin := erbrange.New(base+start, base+i)
		if segLen >= 2 {
			t.emit(origin, repeatToken("text", segLen))
			t.emitPoint(base+i, ";")
		} else {
			t.emit(origin, ";")
		}
	}
}
