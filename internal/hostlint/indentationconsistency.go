package hostlint

import (
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/offense"
)

// checkIndentationConsistency implements Layout/IndentationConsistency:
// within one block, every body line should share the same indent as
// its siblings, independent of whether that shared indent is "correct"
// per Layout/IndentationWidth (that's a separate cop, checked
// separately). spec.md §6's configuration mapping table has no entry
// for this cop, so it takes the host's defaults — it is simply
// Enabled=true per §4.4 step 2.
func checkIndentationConsistency(lines []Line, blocks []Block) []Diagnostic {
	var diags []Diagnostic
	for _, b := range blocks {
		want := -1
		for _, line := range directBodyLines(b, lines) {
			if want == -1 {
				want = line.LeadingWS
				continue
			}
			if line.LeadingWS == want {
				continue
			}
			diags = append(diags, Diagnostic{
				Cop:      "Layout/IndentationConsistency",
				Range:    erbrange.New(line.Start, line.Start+line.LeadingWS),
				Message:  "Layout/IndentationConsistency: Inconsistent indentation detected.",
				Severity: offense.SeverityWarning,
			})
		}
	}
	return diags
}
