package erbparse

import (
	"testing"

	"github.com/indentlint/erblayout/internal/erbast"
)

func TestParseSimpleTag(t *testing.T) {
	doc := Parse([]byte("<div>hi</div>"))
	if len(doc.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(doc.Children))
	}
	tag := doc.Children[0]
	if tag.Kind != erbast.KindTag || tag.TagName != "div" {
		t.Fatalf("child = %+v, want a div tag", tag)
	}
	if !tag.HasCloseTag {
		t.Error("HasCloseTag = false, want true")
	}
	if len(tag.Children) != 1 {
		t.Fatalf("div children = %+v, want one mixed-content wrapper", tag.Children)
	}
	wrapper := tag.Children[0]
	if len(wrapper.Children) != 1 || !wrapper.Children[0].IsLeafText() {
		t.Fatalf("wrapper.Children = %+v, want one leaf text node", wrapper.Children)
	}
	if wrapper.Children[0].Literal != "hi" {
		t.Errorf("literal = %q, want %q", wrapper.Children[0].Literal, "hi")
	}
}

func TestParseVoidElementNeverConsumesChildren(t *testing.T) {
	doc := Parse([]byte("<br>text"))
	if len(doc.Children) != 2 {
		t.Fatalf("got %d children, want 2 (br, then text)", len(doc.Children))
	}
	br := doc.Children[0]
	if br.Kind != erbast.KindTag || !br.Void {
		t.Fatalf("first child = %+v, want a void br tag", br)
	}
	if len(br.Children) != 0 {
		t.Errorf("void element has %d children, want 0", len(br.Children))
	}
}

func TestParseSelfClosingTag(t *testing.T) {
	doc := Parse([]byte(`<custom-el attr="v" />after`))
	if len(doc.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(doc.Children))
	}
	tag := doc.Children[0]
	if !tag.SelfClosing {
		t.Error("SelfClosing = false, want true")
	}
	if len(tag.Children) != 0 {
		t.Errorf("self-closing element has %d children, want 0", len(tag.Children))
	}
}

func TestParseStrayCloseTagTolerated(t *testing.T) {
	// A stray </br> for a void element should be discarded
	// rather than aborting the parse (invariant 6, spec.md §7).
	doc := Parse([]byte("<br></br>text"))
	var kinds []erbast.Kind
	for _, c := range doc.Children {
		kinds = append(kinds, c.Kind)
	}
	if len(kinds) != 2 || kinds[0] != erbast.KindTag || kinds[1] != erbast.KindText {
		t.Fatalf("children kinds = %v, want [Tag, Text]", kinds)
	}
}

func TestParseUnterminatedTagRunsToEOF(t *testing.T) {
	doc := Parse([]byte("<div"))
	if len(doc.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(doc.Children))
	}
	tag := doc.Children[0]
	if tag.HasCloseTag {
		t.Error("HasCloseTag = true for an unterminated tag")
	}
	if tag.Range.End != 4 {
		t.Errorf("Range.End = %d, want 4 (EOF)", tag.Range.End)
	}
}

func TestParseEmbeddedOutput(t *testing.T) {
	doc := Parse([]byte("<%= foo %>"))
	if len(doc.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(doc.Children))
	}
	wrapper := doc.Children[0]
	if wrapper.Kind != erbast.KindText || wrapper.IsLeafText() {
		t.Fatalf("root child = %+v, want a mixed-content Text container", wrapper)
	}
	embedded := wrapper.Children[0]
	if embedded.Kind != erbast.KindEmbedded || embedded.Indicator != erbast.IndicatorOutput {
		t.Fatalf("embedded = %+v, want an output indicator", embedded)
	}
}

func TestParseCommentTag(t *testing.T) {
	doc := Parse([]byte("<%# a note %>"))
	wrapper := doc.Children[0]
	comment := wrapper.Children[0]
	if comment.Kind != erbast.KindComment {
		t.Fatalf("got Kind %v, want Comment", comment.Kind)
	}
}

func TestParseAttributes(t *testing.T) {
	doc := Parse([]byte(`<a class="foo" disabled>x</a>`))
	tag := doc.Children[0]
	if len(tag.Attrs) != 2 {
		t.Fatalf("got %d attrs, want 2", len(tag.Attrs))
	}
	if tag.Attrs[0].Name != "class" || !tag.Attrs[0].HasValue {
		t.Errorf("attrs[0] = %+v, want class with a value", tag.Attrs[0])
	}
	if tag.Attrs[1].Name != "disabled" || tag.Attrs[1].HasValue {
		t.Errorf("attrs[1] = %+v, want disabled with no value", tag.Attrs[1])
	}
}

func TestParseNestedTags(t *testing.T) {
	doc := Parse([]byte("<div><span>x</span></div>"))
	div := doc.Children[0]
	if len(div.Children) != 1 || div.Children[0].TagName != "span" {
		t.Fatalf("div.Children = %+v, want one span", div.Children)
	}
	if div.Range.Begin != 0 || div.Range.End != len("<div><span>x</span></div>") {
		t.Errorf("div.Range = %v, want the full span", div.Range)
	}
}
