// Package editor applies offense.Action edits to the original source
// buffer. No third-party byte-buffer-patch library appears anywhere in
// the example pack, so this is a deliberately small stdlib-only
// implementation (justified in DESIGN.md).
package editor

import (
	"sort"

	"github.com/indentlint/erblayout/internal/offense"
)

// splice is one point-edit against the original buffer: delete
// [pos, deleteEnd) and insert text at pos.
type splice struct {
	pos       int
	deleteEnd int
	text      string
	order     int // original action index, for stable ties at the same pos
}

// Apply returns content with every action applied. Actions are assumed
// to target disjoint ranges, as produced by one linter run's offenses;
// the caller (internal/linter) is responsible for dropping actions
// whose ranges don't translate before calling Apply.
func Apply(content []byte, actions []offense.Action) []byte {
	splices := make([]splice, 0, len(actions))
	for i, a := range actions {
		s := splice{order: i}
		switch a.Kind {
		case offense.ActionRemove:
			s.pos, s.deleteEnd = a.Range.Begin, a.Range.End
		case offense.ActionReplace:
			s.pos, s.deleteEnd, s.text = a.Range.Begin, a.Range.End, a.Text
		case offense.ActionInsertBefore:
			s.pos, s.deleteEnd, s.text = a.Range.Begin, a.Range.Begin, a.Text
		case offense.ActionInsertAfter:
			s.pos, s.deleteEnd, s.text = a.Range.End, a.Range.End, a.Text
		default:
			continue
		}
		splices = append(splices, s)
	}

	sort.SliceStable(splices, func(i, j int) bool {
		if splices[i].pos != splices[j].pos {
			return splices[i].pos < splices[j].pos
		}
		return splices[i].order < splices[j].order
	})

	var out []byte
	cursor := 0
	for _, s := range splices {
		if s.pos < cursor {
			continue // overlaps an already-applied edit; drop it
		}
		out = append(out, content[cursor:s.pos]...)
		out = append(out, s.text...)
		cursor = s.deleteEnd
	}
	out = append(out, content[cursor:]...)
	return out
}
