// Package erbparse turns a byte buffer into an erbast.Node tree.
//
// The real ERB/HTML grammar (insertion modes, implied tag closing,
// foreign content, etc.) is explicitly out of scope for this module —
// spec.md §1 takes the AST as a given input. This is the minimal
// tokenizer needed to produce one for testing and for the CLI: it
// understands `<% %>`/`<%# %>` tags, opening/closing/self-closing/void
// HTML tags, and literal text, and tolerates the malformed shapes
// spec.md §7 calls out (stray closes, unterminated tags).
//
// Attribute extraction isolates each clean opening-tag byte span and
// hands it to golang.org/x/net/html's Tokenizer for semantic name/value
// decoding, the same division of labor dpotapov-go-pages/chtml uses:
// the Tokenizer is trusted for *what* the attributes are, a ported
// byte scanner (attrspan.go) recovers *where* they are, since the
// Tokenizer never exposes positions.
package erbparse

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/indentlint/erblayout/internal/erbast"
	"github.com/indentlint/erblayout/internal/erbrange"
)

// Parse builds the Document root of content.
func Parse(content []byte) *erbast.Node {
	p := &parser{src: content}
	children, _, _, end := p.parseChildren("", 0)
	return &erbast.Node{
		Kind:     erbast.KindDocument,
		Range:    erbrange.New(0, end),
		Children: children,
	}
}

type parser struct {
	src []byte
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == ':'
}

func hasPrefixAt(src []byte, pos int, prefix string) bool {
	return pos+len(prefix) <= len(src) && string(src[pos:pos+len(prefix)]) == prefix
}

// parseChildren scans nodes starting at pos until it finds a closing
// tag matching `until` (case-sensitive element name) or runs out of
// input. until == "" (the document root) never matches, so it always
// runs to EOF. It returns the parsed children, the matched close tag's
// range (if any), whether a match was found, and the position just
// past what was consumed.
func (p *parser) parseChildren(until string, pos int) (children []*erbast.Node, closeRange erbrange.Range, matched bool, next int) {
	src := p.src
	n := len(src)

	var mixed []*erbast.Node // pending Text-container children (literal runs + embedded/comment nodes)
	litStart := -1

	flushLiteral := func(end int) {
		if litStart >= 0 && end > litStart {
			mixed = append(mixed, &erbast.Node{
				Kind:    erbast.KindText,
				Range:   erbrange.New(litStart, end),
				Literal: string(src[litStart:end]),
			})
		}
		litStart = -1
	}
	flushMixed := func() {
		if len(mixed) == 0 {
			return
		}
		children = append(children, &erbast.Node{
			Kind:     erbast.KindText,
			Range:    erbrange.New(mixed[0].Range.Begin, mixed[len(mixed)-1].Range.End),
			Children: mixed,
		})
		mixed = nil
	}

	for pos < n {
		switch {
		case hasPrefixAt(src, pos, "<%"):
			flushLiteral(pos)
			node, newPos := p.parseEmbedded(pos)
			mixed = append(mixed, node)
			pos = newPos

		case hasPrefixAt(src, pos, "</"):
			name, rng, newPos, ok := p.scanClosingTag(pos)
			if !ok {
				if litStart < 0 {
					litStart = pos
				}
				pos++
				continue
			}
			if name == until {
				flushLiteral(pos)
				flushMixed()
				return children, rng, true, newPos
			}
			// Stray or mismatched close tag: tolerate by discarding it
			// rather than failing the parse (spec.md §7, invariant 6).
			pos = newPos

		case src[pos] == '<' && pos+1 < n && isNameStart(src[pos+1]):
			flushLiteral(pos)
			flushMixed()
			tag, newPos := p.parseTag(pos)
			children = append(children, tag)
			pos = newPos

		default:
			if litStart < 0 {
				litStart = pos
			}
			pos++
		}
	}

	flushLiteral(pos)
	flushMixed()
	return children, erbrange.Range{}, false, pos
}

// parseTag parses one opening tag at pos, then — unless it is void or
// self-closing — recurses for its children and matching close.
func (p *parser) parseTag(pos int) (*erbast.Node, int) {
	tag, selfClosing, afterOpen := p.parseOpenTag(pos)

	if tag.Void || selfClosing {
		tag.Range = tag.OpenTagRange
		return tag, afterOpen
	}

	children, closeRange, matched, next := p.parseChildren(tag.TagName, afterOpen)
	tag.Children = children
	tag.HasCloseTag = matched
	if matched {
		tag.CloseRange = closeRange
		tag.Range = erbrange.New(tag.OpenTagRange.Begin, closeRange.End)
	} else {
		tag.Range = erbrange.New(tag.OpenTagRange.Begin, next)
	}
	return tag, next
}

// parseOpenTag parses "<name attr attr=val ...>" or "<name .../>"
// starting at pos (which must point at '<'), returning the Tag node
// (without Children/HasCloseTag/CloseRange populated), whether it was
// self-closing, and the position just past the '>'.
func (p *parser) parseOpenTag(pos int) (*erbast.Node, bool, int) {
	src := p.src
	n := len(src)
	start := pos
	pos++ // skip '<'

	nameStart := pos
	for pos < n && isNameChar(src[pos]) {
		pos++
	}
	name := string(src[nameStart:pos])
	nameRange := erbrange.New(start, pos)

	tagEnd, selfClosing := scanToTagEnd(src, pos)
	openRange := erbrange.New(start, tagEnd)

	attrs := p.extractAttrs(src[start:tagEnd], start)

	node := &erbast.Node{
		Kind:         erbast.KindTag,
		TagName:      name,
		NameRange:    nameRange,
		OpenTagRange: openRange,
		Attrs:        attrs,
		Void:         erbast.VoidElements[strings.ToLower(name)],
		SelfClosing:  selfClosing,
	}
	return node, selfClosing, tagEnd
}

// scanToTagEnd scans forward from pos (just past the tag name) to find
// the index just past the tag's closing '>', respecting quoted
// attribute values, and reports whether the tag is self-closing
// ("... />"). An unterminated tag runs to EOF.
func scanToTagEnd(src []byte, pos int) (end int, selfClosing bool) {
	n := len(src)
	lastNonSpace := byte(0)
	for pos < n {
		switch src[pos] {
		case '"', '\'':
			quote := src[pos]
			pos++
			for pos < n && src[pos] != quote {
				pos++
			}
			if pos < n {
				pos++
			}
			lastNonSpace = quote
		case '>':
			return pos + 1, lastNonSpace == '/'
		case ' ', '\t', '\n', '\r', '\f':
			pos++
		default:
			lastNonSpace = src[pos]
			pos++
		}
	}
	return n, false
}

// scanClosingTag parses "</name>" at pos (which must point at '<').
// An unterminated close (no trailing '>') is still accepted, spanning
// to EOF, so a truncated template doesn't abort the whole parse.
func (p *parser) scanClosingTag(pos int) (name string, rng erbrange.Range, next int, ok bool) {
	src := p.src
	n := len(src)
	start := pos
	pos += 2 // skip "</"

	nameStart := pos
	for pos < n && isNameChar(src[pos]) {
		pos++
	}
	if pos == nameStart {
		return "", erbrange.Range{}, pos, false
	}
	name = string(src[nameStart:pos])

	for pos < n && src[pos] != '>' {
		pos++
	}
	if pos < n {
		pos++ // skip '>'
	}
	return name, erbrange.New(start, pos), pos, true
}

// parseEmbedded parses one "<% ... %>" / "<%= ... %>" / "<%# ... %>"
// tag at pos, returning an Embedded or Comment node.
func (p *parser) parseEmbedded(pos int) (*erbast.Node, int) {
	src := p.src
	n := len(src)
	start := pos
	pos += 2 // skip "<%"

	indicator := erbast.IndicatorNone
	isComment := false
	if pos < n && src[pos] == '=' {
		indicator = erbast.IndicatorOutput
		pos++
	} else if pos < n && src[pos] == '#' {
		isComment = true
		pos++
	}

	codeStart := pos
	idx := bytes.Index(src[pos:], []byte("%>"))
	var codeEnd, tagEnd int
	if idx < 0 {
		codeEnd = n
		tagEnd = n
	} else {
		codeEnd = pos + idx
		tagEnd = codeEnd + 2
	}
	codeRange := erbrange.New(codeStart, codeEnd)

	if isComment {
		return &erbast.Node{
			Kind:      erbast.KindComment,
			Range:     erbrange.New(start, tagEnd),
			CodeRange: codeRange,
		}, tagEnd
	}

	return &erbast.Node{
		Kind:             erbast.KindEmbedded,
		Range:            erbrange.New(start, tagEnd),
		Indicator:        indicator,
		CodeRange:        codeRange,
		TagEndsOnNewline: tagEndsOnNewline(src, tagEnd),
	}, tagEnd
}

// tagEndsOnNewline reports whether only horizontal whitespace separates
// pos from the next newline (or EOF).
func tagEndsOnNewline(src []byte, pos int) bool {
	n := len(src)
	for pos < n {
		switch src[pos] {
		case ' ', '\t', '\r':
			pos++
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// extractAttrs decodes the attributes of a single isolated start-tag
// byte span (raw, beginning with '<') using x/net/html's Tokenizer for
// names/values and scanAttributeSpans for byte positions.
func (p *parser) extractAttrs(raw []byte, baseOffset int) []erbast.Attribute {
	z := html.NewTokenizer(bytes.NewReader(raw))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
		return nil
	}

	var names []string
	_, hasAttr := z.TagName()
	for hasAttr {
		key, _, more := z.TagAttr()
		names = append(names, string(key))
		hasAttr = more
	}
	if len(names) == 0 {
		return nil
	}

	spans := scanAttributeSpans(raw, baseOffset, names)
	attrs := make([]erbast.Attribute, 0, len(names))
	for i, name := range names {
		if i >= len(spans) {
			break
		}
		s := spans[i]
		attrs = append(attrs, erbast.Attribute{
			Range:      s.whole,
			Name:       name,
			HasValue:   s.has,
			ValueRange: s.value,
		})
	}
	return attrs
}
