package transpiler

import (
	"regexp"
	"strings"
)

// trailingBlockOpener matches code whose trimmed end opens a Ruby-style
// block: a bare "{", or "do" optionally followed by a "|params|" list.
var trailingBlockOpener = regexp.MustCompile(`(\{|do(\s*\|[^|]*\|)?)\s*$`)

// codeShape captures the classification spec.md §4.1 computes for an
// embedded code tag before selecting its emission Case.
type codeShape struct {
	startsOnNewline bool
	isMultiline     bool
	trailingBlock   bool
	stripped        string
	// leadingWS is code's leading whitespace run, used by Case B.
	leadingWS string
	// trimStart/trimEnd are byte offsets, relative to the start of
	// code, bounding the stripped (trimmed) substring. Used to compute
	// the length-preserving "just the code bytes" source-map entry.
	trimStart, trimEnd int
}

func classify(code string) codeShape {
	start, end := trimBounds(code)
	return codeShape{
		startsOnNewline: strings.HasPrefix(code, "\n"),
		isMultiline:     strings.Contains(strings.TrimSpace(code), "\n"),
		trailingBlock:   trailingBlockOpener.MatchString(strings.TrimRight(code, " \t\r\n")),
		stripped:        code[start:end],
		leadingWS:       code[:start],
		trimStart:       start,
		trimEnd:         end,
	}
}

// trimBounds returns the [start, end) byte bounds of s with leading and
// trailing ASCII whitespace removed.
func trimBounds(s string) (int, int) {
	start := 0
	for start < len(s) && isSpaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return start, end
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
