package hostlint

import (
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/offense"
)

// Diagnostic is one cop finding, still in IR coordinates. The linter
// driver (internal/linter) translates Range and each Action's range
// back onto the original source per spec.md §4.4 steps 5-6.
type Diagnostic struct {
	Cop      string
	Range    erbrange.Range
	Message  string
	Severity offense.Severity
	Actions  []Action
}

// Action is a not-yet-translated offense.Action: its Range is still an
// IR range.
type Action struct {
	Kind  offense.ActionKind
	Range erbrange.Range
	Text  string
}
