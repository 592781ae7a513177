package hostlint

import (
	"fmt"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/offense"
)

// checkIndentationWidth implements Layout/IndentationWidth: every body
// line of a block (brace, do, or begin) must be indented cfg.Width
// columns past the block's own CLOSING line's indent. Using the
// closer's indent as the base, rather than the opener's, is what lets
// a misaligned closer (spec.md §8 S4) flag its body even when that
// body's indent matches the opener: the two are no longer taken to
// agree on what "correct" means.
func checkIndentationWidth(text string, lines []Line, blocks []Block, cfg *config.Config) []Diagnostic {
	var diags []Diagnostic
	for _, b := range blocks {
		if b.Close.Number-b.Open.Number < 2 {
			continue // no body lines between opener and closer
		}
		base := b.Close.LeadingWS
		expected := base + cfg.Width
		for _, line := range directBodyLines(b, lines) {
			actual := line.LeadingWS
			if actual == expected {
				continue
			}
			wsEnd := line.Start + actual
			begin := line.Start + base
			if begin > wsEnd {
				begin = wsEnd
			}
			flagged := erbrange.New(begin, wsEnd)
			diags = append(diags, Diagnostic{
				Cop:      "Layout/IndentationWidth",
				Range:    flagged,
				Message:  fmt.Sprintf("Layout/IndentationWidth: Use %d (not %d) spaces for indentation.", cfg.Width, actual-base),
				Severity: offense.SeverityConvention,
				Actions: []Action{{
					Kind:  offense.ActionReplace,
					Range: erbrange.New(line.Start, line.Start+actual),
					Text:  spaces(expected),
				}},
			})
		}
	}
	return diags
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
