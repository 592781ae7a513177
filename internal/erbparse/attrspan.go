package erbparse

import "github.com/indentlint/erblayout/internal/erbrange"

// attrSpan is ported from dpotapov-go-pages/chtml's scanAttributeSpans:
// it walks the raw bytes of a single opening tag and recovers the byte
// offsets of each attribute (in source order), since golang.org/x/net/html's
// Tokenizer reports attribute names/values but not their positions.
type attrSpan struct {
	whole erbrange.Range
	value erbrange.Range
	has   bool
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// scanAttributeSpans scans the raw start-tag token (beginning with '<')
// and returns one span per attribute name in names, in order. baseOffset
// is raw's offset within the overall source buffer.
func scanAttributeSpans(raw []byte, baseOffset int, names []string) []attrSpan {
	spans := make([]attrSpan, 0, len(names))

	pos := 0
	if pos < len(raw) && raw[pos] == '<' {
		pos++
	}
	for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
		pos++
	}

	for nameIdx := 0; nameIdx < len(names); nameIdx++ {
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] == '>' || raw[pos] == '/' {
			break
		}

		nameStart := pos
		for pos < len(raw) && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
			pos++
		}
		nameEnd := pos

		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}

		if pos >= len(raw) || raw[pos] != '=' {
			spans = append(spans, attrSpan{
				whole: erbrange.New(baseOffset+nameStart, baseOffset+nameEnd),
			})
			continue
		}
		pos++ // skip '='

		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) {
			spans = append(spans, attrSpan{
				whole: erbrange.New(baseOffset+nameStart, baseOffset+nameEnd),
			})
			break
		}

		var valueStart, valueEnd int
		if raw[pos] == '"' || raw[pos] == '\'' {
			quote := raw[pos]
			pos++
			valueStart = pos
			for pos < len(raw) && raw[pos] != quote {
				pos++
			}
			valueEnd = pos
			if pos < len(raw) {
				pos++ // skip closing quote
			}
		} else {
			valueStart = pos
			for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
				pos++
			}
			valueEnd = pos
		}

		spans = append(spans, attrSpan{
			whole: erbrange.New(baseOffset+nameStart, baseOffset+valueEnd),
			value: erbrange.New(baseOffset+valueStart, baseOffset+valueEnd),
			has:   true,
		})
	}

	return spans
}
