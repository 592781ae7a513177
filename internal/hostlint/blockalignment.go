package hostlint

import (
	"fmt"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/ir"
	"github.com/indentlint/erblayout/internal/offense"
)

// blockAligned reports whether b's closer satisfies style: start_of_line
// compares against the opener's own line indent (the column of the
// first non-blank byte on Open's line), start_of_block compares against
// the opener keyword/brace's own column (which can land mid-line, as in
// "10.times do |i|"), and either accepts whichever matches.
func blockAligned(b Block, style config.AlignWithStyle) bool {
	switch style {
	case config.AlignWithStartOfBlock:
		return b.OpenKeywordCol() == b.Close.LeadingWS
	case config.AlignWithEither:
		return b.Open.LeadingWS == b.Close.LeadingWS || b.OpenKeywordCol() == b.Close.LeadingWS
	default: // config.AlignWithStartOfLine
		return b.Open.LeadingWS == b.Close.LeadingWS
	}
}

// checkBlockAlignment implements Layout/BlockAlignment (do/end blocks)
// and, via the same routine, Layout/BeginEndAlignment (begin/end
// blocks): spec.md §4.3's BlockAlignmentAdapter. It compares the
// closer's indent against whichever base style selects, and when they
// differ reports the closer's location but formats the message with
// both endpoints' *original* coordinates, translating through doc
// before building the message text exactly as §4.3 describes.
func checkBlockAlignment(doc *ir.IR, blocks []Block, kind BlockKind, cop string, style config.AlignWithStyle) []Diagnostic {
	var diags []Diagnostic
	for _, b := range blocks {
		if b.Kind != kind {
			continue
		}
		if blockAligned(b, style) {
			continue
		}

		openOrig, openOK := doc.Translate(b.Open.Trimmed())
		closeOrig, closeOK := doc.Translate(b.Close.Trimmed())
		if !openOK || !closeOK {
			continue
		}

		openLine, openCol := doc.Source.Position(openOrig.Begin)
		closeLine, closeCol := doc.Source.Position(closeOrig.Begin)
		openText := string(doc.Source.Text(openOrig))
		closeText := string(doc.Source.Text(closeOrig))

		msg := fmt.Sprintf("%s: `%s` at %d, %d is not aligned with `%s` at %d, %d.",
			cop, closeText, closeLine, closeCol-1, openText, openLine, openCol-1)

		diags = append(diags, Diagnostic{
			Cop:      cop,
			Range:    b.Close.Trimmed(),
			Message:  msg,
			Severity: offense.SeverityConvention,
		})
	}
	return diags
}
