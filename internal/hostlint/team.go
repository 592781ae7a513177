package hostlint

import (
	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/ir"
)

// Team is the fixed set of seven cops spec.md §4.4 step 2 builds,
// bound to one configuration. Unlike the teacher's pkg/plugin.Registry
// (grounded on here for the overall shape: a constructor that resolves
// a fixed list into an ordered run), there is no dependency graph to
// topologically sort — §6's mapping table fixes both membership and
// order, so construction is just config binding.
type Team struct {
	cfg *config.Config
}

// NewTeam builds the team bound to cfg. All seven cops are always
// enabled per spec.md §6 ("All listed rules are forced Enabled=true").
func NewTeam(cfg *config.Config) *Team {
	return &Team{cfg: cfg}
}

// Run invokes every cop against doc's IR text, in the fixed order
// spec.md §4.4 step 2 lists, and returns their diagnostics in that
// same order (offenses are "diagnostic-ordered" per §7).
func (t *Team) Run(doc *ir.IR) []Diagnostic {
	lines := splitLines(doc.Text)
	blocks := scanBlocks(doc.Text)

	var diags []Diagnostic
	diags = append(diags, checkIndentationWidth(doc.Text, lines, blocks, t.cfg)...)
	diags = append(diags, checkIndentationConsistency(lines, blocks)...)
	diags = append(diags, checkBlockAlignment(doc, blocks, DoBlock, "Layout/BlockAlignment", t.cfg.EnforcedStyleBlockAlignWith)...)
	diags = append(diags, checkBlockAlignment(doc, blocks, BeginBlock, "Layout/BeginEndAlignment", t.cfg.EnforcedStyleBeginEndAlignWith)...)
	diags = append(diags, checkEndAlignment(doc.Text, lines, t.cfg)...)
	diags = append(diags, checkElseAlignment(doc.Text, lines)...)
	diags = append(diags, checkArgumentAlignment(doc, lines, t.cfg)...)
	return diags
}
