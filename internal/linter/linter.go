// Package linter implements the engine's one public operation: run a
// template and its configuration through transpile → analyze →
// translate, per spec.md §4.4. It is the thin staged pipeline that
// binds every other internal package together, grounded on
// cmd/dingo/main.go's buildFile (read source → transform → report,
// each step named so a failure names where it happened).
package linter

import (
	"context"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/erbparse"
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/hostlint"
	"github.com/indentlint/erblayout/internal/ir"
	"github.com/indentlint/erblayout/internal/offense"
	"github.com/indentlint/erblayout/internal/transpiler"
)

// Result is one run's output: the offenses found, located in the
// original template, plus the IR the host analyzer actually saw (kept
// around for export-sourcemap and for diagnostics rendering).
type Result struct {
	Offenses []offense.Offense
	IR       *ir.IR
}

// Run is spec.md §4.4's algorithm: parse the template, build its IR,
// run the host cops over the IR, and translate every diagnostic (and
// its corrective actions) back onto the original source. A diagnostic
// whose location can't be translated is dropped entirely, per §4.4
// step 5; a surviving diagnostic's individual actions that can't be
// translated are dropped one at a time, per step 6, so a partially
// correctable offense is still reported with whatever actions do
// translate.
//
// ctx is checked at the two points a large template run could
// meaningfully be asked to stop — before transpiling and before
// running the cop team — not threaded further down, since nothing
// below does I/O or can block.
func Run(ctx context.Context, filename string, content []byte, cfg *config.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := erbsrc.New(filename, content)
	root := erbparse.Parse(content)
	doc := transpiler.Transpile(source, root)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	team := hostlint.NewTeam(cfg)
	diags := team.Run(doc)

	offenses := make([]offense.Offense, 0, len(diags))
	for _, d := range diags {
		loc, ok := doc.Translate(d.Range)
		if !ok {
			// §4.4 step 5a: fall back to the empty range at the
			// diagnostic's start before giving up on it entirely.
			loc, ok = doc.Translate(erbrange.Point(d.Range.Begin))
			if !ok {
				continue
			}
		}

		var actions []offense.Action
		for _, a := range d.Actions {
			origin, ok := doc.Translate(a.Range)
			if !ok {
				origin, ok = doc.Translate(erbrange.Point(a.Range.Begin))
				if !ok {
					continue
				}
			}
			actions = append(actions, offense.Action{
				Kind:  a.Kind,
				Range: origin,
				Text:  a.Text,
			})
		}

		offenses = append(offenses, offense.Offense{
			Location: loc,
			Message:  d.Message,
			Severity: d.Severity,
			Actions:  actions,
		})
	}

	return &Result{Offenses: offenses, IR: doc}, nil
}
