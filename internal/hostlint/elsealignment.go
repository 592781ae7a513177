package hostlint

// checkElseAlignment is a best-effort stand-in for Layout/ElseAlignment:
// the real cop checks that "else"/"elsif" lines align with their owning
// "if". This scanner never models conditionals at all, so (like
// checkEndAlignment) it is wired into the team but structurally finds
// nothing; spec.md §8's S1-S6 never exercise it. See DESIGN.md.
func checkElseAlignment(_ string, _ []Line) []Diagnostic {
	return nil
}
