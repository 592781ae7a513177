// Package erbast defines the AST consumed by the indentation engine: a
// small tagged union (Document | Tag | Embedded | Text | Comment)
// dispatched on Kind rather than through an interface per variant, per
// spec.md §9's "avoid inheritance, dispatch on the variant" note.
//
// The AST exclusively owns its nodes and their ranges; the transpiler
// only ever borrows it for the duration of one transpilation.
package erbast

import "github.com/indentlint/erblayout/internal/erbrange"

// Kind discriminates the Node variants.
type Kind int

const (
	KindDocument Kind = iota
	KindTag
	KindEmbedded
	KindText
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindTag:
		return "Tag"
	case KindEmbedded:
		return "Embedded"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Indicator classifies an Embedded node's tag opener.
type Indicator string

const (
	IndicatorNone    Indicator = ""
	IndicatorOutput  Indicator = "="
	IndicatorComment Indicator = "#"
)

// Attribute is one key[=value] pair inside a Tag's opening angle brackets.
type Attribute struct {
	// Range spans the whole attribute, e.g. `class="foo"` or a bare `disabled`.
	Range erbrange.Range
	Name  string
	// HasValue is false for boolean/valueless attributes.
	HasValue bool
	// ValueRange spans the quoted value's contents (excluding quotes), valid iff HasValue.
	ValueRange erbrange.Range
}

// Node is one element of the AST. Only the fields relevant to Kind are
// populated; the zero value of irrelevant fields is never read by the
// transpiler.
type Node struct {
	Kind  Kind
	Range erbrange.Range

	// Document, Tag, Text: ordered children.
	Children []*Node

	// Tag / self-closing Tag.
	TagName       string
	Attrs         []Attribute
	Void          bool // element is in the void/self-closing set
	SelfClosing   bool // written as <name ... />
	NameRange     erbrange.Range // the "<name" prefix, used for same-length substitution
	OpenTagRange  erbrange.Range // the whole "<name attrs>" or "<name attrs/>" span
	CloseRange    erbrange.Range // the "</name>" span; zero value if no explicit close
	HasCloseTag   bool

	// Embedded code tag <% ... %>.
	Indicator        Indicator
	CodeRange        erbrange.Range // the code body, including its own leading/trailing whitespace
	TagEndsOnNewline bool           // whitespace+newline follow the closing %> in the source

	// Text leaf (a literal run with no children) carries its bytes here.
	Literal string
}

// IsLeafText reports whether n is a Text node holding a literal run
// rather than a container for mixed literal/embedded children.
func (n *Node) IsLeafText() bool {
	return n.Kind == KindText && n.Children == nil
}

// VoidElements is the set of HTML elements with no closing tag.
// Ordinary HTML semantics, not a linting concern of this module.
var VoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}
