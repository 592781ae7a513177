package transpiler

import (
	"strings"
	"testing"

	"github.com/indentlint/erblayout/internal/erbparse"
	"github.com/indentlint/erblayout/internal/erbsrc"
)

func transpile(t *testing.T, src string) (*erbsrc.Source, string) {
	t.Helper()
	source := erbsrc.New("fixture.erb", []byte(src))
	root := erbparse.Parse([]byte(src))
	doc := Transpile(source, root)
	return source, doc.Text
}

func leadingWS(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

// TestColumnFaithfulness covers spec.md §8 invariant 5 end to end: every
// line's leading whitespace survives into the IR unchanged, for inputs
// (S2, S3) that never exercise Case A's line-collapsing block opener.
func TestColumnFaithfulness(t *testing.T) {
	cases := []string{
		"<div>\n   <span class=\"foo\">bar</span>\n</div>\n",
		"<div>\n  <% 10.times do |i| %>\n     <%= i %>\n  <% end %>\n</div>\n",
	}
	for _, src := range cases {
		_, text := transpile(t, src)

		srcLines := strings.Split(src, "\n")
		irLines := strings.Split(text, "\n")
		if len(srcLines) != len(irLines) {
			t.Fatalf("%q: IR has %d lines, source has %d", src, len(irLines), len(srcLines))
		}
		for i, sl := range srcLines {
			if got, want := leadingWS(irLines[i]), leadingWS(sl); got != want {
				t.Errorf("%q: line %d leading whitespace = %d, want %d", src, i+1, got, want)
			}
		}
	}
}

// TestPreOpacity covers spec.md §8 invariant 3: nothing from inside a
// <pre> subtree reaches the IR, so no cop can ever see it.
func TestPreOpacity(t *testing.T) {
	_, text := transpile(t, "<pre>\n<%= foo %>\n</pre>\n")

	for _, banned := range []string{"foo", "ph", "begin", "do"} {
		if strings.Contains(text, banned) {
			t.Errorf("IR %q contains %q, which should have been swallowed by <pre>", text, banned)
		}
	}
}

// TestVisitTagVoidElement checks a void element emits no block braces
// and no close-tag entries, per spec.md §4.1 "Tag".
func TestVisitTagVoidElement(t *testing.T) {
	_, text := transpile(t, "<br>")
	if strings.Contains(text, "{") || strings.Contains(text, "}") {
		t.Errorf("IR %q for a void element should have no block braces", text)
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), ";") {
		t.Errorf("IR %q for a void element should end with a statement terminator", text)
	}
}

// TestVisitTagOpensAndClosesBlock checks an ordinary element with a
// close tag emits a brace block.
func TestVisitTagOpensAndClosesBlock(t *testing.T) {
	_, text := transpile(t, "<div>x</div>")
	if !strings.Contains(text, "{") || !strings.Contains(text, "}") {
		t.Fatalf("IR %q for <div>...</div> should contain a brace block", text)
	}
	if strings.Index(text, "{") > strings.Index(text, "}") {
		t.Errorf("IR %q has '}' before '{'", text)
	}
}

// TestCaseDSingleLineEndingOnNewline covers §4.1 Case D: a single-line
// embedded tag that ends its source line emits the stripped code with
// no trailing placeholder noise.
func TestCaseDSingleLineEndingOnNewline(t *testing.T) {
	_, text := transpile(t, "<%= hello %>\n")
	if !strings.Contains(text, "hello") {
		t.Errorf("IR %q should contain the embedded code verbatim", text)
	}
}

// TestCaseEInlineFollowedByContent covers §4.1 Case E: a single-line
// embedded tag with more content on the same source line reserves the
// "<%...%>" prefix/suffix columns with placeholders.
func TestCaseEInlineFollowedByContent(t *testing.T) {
	_, text := transpile(t, "x<%= y %>z\n")
	if !strings.Contains(text, "y") {
		t.Errorf("IR %q should contain the embedded code verbatim", text)
	}
	if !strings.Contains(text, "ph") {
		t.Errorf("IR %q should contain a placeholder reserving the tag's columns", text)
	}
}

// TestCaseBMultilineOwnLine covers §4.1 Case B: code starting on its
// own line and spanning multiple lines is wrapped in begin/end so its
// body indentation is checkable.
func TestCaseBMultilineOwnLine(t *testing.T) {
	_, text := transpile(t, "<%\n  foo\n  bar\n%>\n")
	if !strings.Contains(text, "begin") || !strings.Contains(text, "end") {
		t.Fatalf("IR %q should wrap multi-line own-line code in begin/end", text)
	}
	if !strings.Contains(text, "foo") || !strings.Contains(text, "bar") {
		t.Errorf("IR %q should contain the code verbatim", text)
	}
}

// TestOwnLineCommentEmitsPlaceholder covers §4.1 "Comment": a comment
// that starts its own line becomes a checkable statement.
func TestOwnLineCommentEmitsPlaceholder(t *testing.T) {
	_, text := transpile(t, "<%# a note %>\n")
	if !strings.Contains(text, "__comment;") {
		t.Errorf("IR %q should contain __comment; for an own-line comment", text)
	}
}

// TestInlineCommentIsSkipped covers the converse: a comment sharing a
// line with other content is not itself a statement.
func TestInlineCommentIsSkipped(t *testing.T) {
	_, text := transpile(t, "x<%# a note %>\n")
	if strings.Contains(text, "__comment;") {
		t.Errorf("IR %q should not treat an inline comment as its own statement", text)
	}
}
