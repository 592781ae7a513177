package hostlint

import (
	"fmt"
	"strings"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/ir"
	"github.com/indentlint/erblayout/internal/offense"
)

// checkArgumentAlignment implements Layout/ArgumentAlignment over the
// IR's synthesized tag calls. internal/transpiler emits one attribute
// per source line (spec.md §4.1 "Attributes") as "TOKEN(attr1,
// attr2, ...)"; this cop re-discovers the call by matching the
// "tag"-repeated token visitTag always emits right before "(" (see
// internal/transpiler/token.go's repeatToken), splits on top-level
// commas, and compares each later attribute's column against the
// first's.
func checkArgumentAlignment(doc *ir.IR, lines []Line, cfg *config.Config) []Diagnostic {
	text := doc.Text
	var diags []Diagnostic

	for i := 0; i < len(text); i++ {
		if text[i] != '(' || !precededByTagToken(text, i) {
			continue
		}
		open := i
		depth := 1
		j := open + 1
		for j < len(text) && depth > 0 {
			switch text[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		if depth != 0 {
			continue // unterminated; malformed IR, skip
		}
		closeIdx := j

		diags = append(diags, checkOneCall(doc, lines, cfg, open, closeIdx)...)
		i = closeIdx
	}
	return diags
}

// precededByTagToken reports whether the bytes immediately before
// index i spell out a token built from repeatToken("tag", n): a
// maximal run of {t,a,g} bytes starting with "ta". The shortest such
// token is "ta", the two-byte stand-in for a one-letter "<a".
func precededByTagToken(text string, i int) bool {
	j := i
	for j > 0 && isTagAlphabet(text[j-1]) {
		j--
	}
	return i-j >= 2 && text[j:j+2] == "ta"
}

func isTagAlphabet(b byte) bool {
	return b == 't' || b == 'a' || b == 'g'
}

func checkOneCall(doc *ir.IR, lines []Line, cfg *config.Config, open, closeIdx int) []Diagnostic {
	var starts []int
	seg := open + 1
	depth := 0
	for k := open + 1; k < closeIdx; k++ {
		switch doc.Text[k] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				starts = append(starts, seg)
				seg = k + 1
			}
		}
	}
	starts = append(starts, seg)
	if len(starts) < 2 {
		return nil
	}

	tokenStart := func(segStart, segEnd int) int {
		k := segStart
		for k < segEnd && (isBlank(doc.Text[k]) || doc.Text[k] == '\n' || doc.Text[k] == '\r') {
			k++
		}
		return k
	}
	tokenEndFor := func(idx int) int {
		if idx == len(starts)-1 {
			return closeIdx
		}
		return starts[idx+1] - 1 // position of the comma
	}

	firstStart := tokenStart(starts[0], tokenEndFor(0))
	firstLine := lineAt(lines, firstStart)
	firstCol := firstStart - firstLine.Start

	// wantCol and the offense wording both depend on the configured
	// style: with_first_argument aligns continuations under the first
	// argument's own column, with_fixed_indentation aligns them one
	// indentation step past the first argument's line.
	fixed := cfg.EnforcedStyleArgumentAlignment == config.ArgumentAlignWithFixed
	wantCol := firstCol
	reason := "is not aligned with the first argument"
	if fixed {
		wantCol = firstLine.LeadingWS + cfg.Width
		reason = "is not indented one level more than the start of the first argument's line"
	}

	var diags []Diagnostic
	for idx := 1; idx < len(starts); idx++ {
		tEnd := tokenEndFor(idx)
		tStart := tokenStart(starts[idx], tEnd)
		line := lineAt(lines, tStart)
		if line.Number == firstLine.Number {
			continue // only a multi-line call is checked
		}
		col := tStart - line.Start
		if col == wantCol {
			continue
		}

		dest := erbrange.New(tStart, tEnd)
		orig, ok := doc.Translate(dest)
		if !ok {
			continue
		}
		actionRange := erbrange.New(line.Start, tStart)

		diags = append(diags, Diagnostic{
			Cop:      "Layout/ArgumentAlignment",
			Range:    dest,
			Message:  fmt.Sprintf("Layout/ArgumentAlignment: Align the arguments of a method call if they span more than one line. `%s` %s.", string(doc.Source.Text(orig)), reason),
			Severity: offense.SeverityConvention,
			Actions: []Action{{
				Kind:  offense.ActionReplace,
				Range: actionRange,
				Text:  strings.Repeat(" ", wantCol),
			}},
		})
	}
	return diags
}
