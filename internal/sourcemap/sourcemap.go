// Package sourcemap tracks the relationship between IR text ranges and
// the original template ranges they were emitted in lieu of, and
// translates IR ranges back to original ranges via the fallback chain
// in spec.md §4.2.
package sourcemap

import "github.com/indentlint/erblayout/internal/erbrange"

// Entry records that IR bytes Dest were emitted in place of the
// original bytes Origin.
type Entry struct {
	Dest   erbrange.Range
	Origin erbrange.Range
}

// lengthPreserving reports whether this entry supports relative
// (containment-shift) translation.
func (e Entry) lengthPreserving() bool {
	return e.Dest.Len() == e.Origin.Len()
}

// Map is an append-only, order-preserving list of Entry values. Per
// spec.md §4.2, a linear scan in insertion order is sufficient;
// earlier matches win.
type Map struct {
	entries []Entry
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// Add appends an entry mapping dest (IR range) to origin (source range).
// Entries must be added in order of increasing dest.Begin.
func (m *Map) Add(dest, origin erbrange.Range) {
	m.entries = append(m.entries, Entry{Dest: dest, Origin: origin})
}

// Entries exposes the recorded entries in insertion order, for callers
// (e.g. sourcemapexport) that need to walk the whole map rather than
// perform a single translation.
func (m *Map) Entries() []Entry {
	return m.entries
}

// translateBeginning returns the first entry's origin.Begin whose
// dest.Begin == b.
func (m *Map) translateBeginning(b int) (int, bool) {
	for _, e := range m.entries {
		if e.Dest.Begin == b {
			return e.Origin.Begin, true
		}
	}
	return 0, false
}

// translateEnding returns the first entry's origin.End whose dest.End == e.
func (m *Map) translateEnding(end int) (int, bool) {
	for _, e := range m.entries {
		if e.Dest.End == end {
			return e.Origin.End, true
		}
	}
	return 0, false
}

// relative finds the first length-preserving entry whose dest contains
// r, and returns r shifted by origin.Begin - dest.Begin.
func (m *Map) relative(r erbrange.Range) (erbrange.Range, bool) {
	for _, e := range m.entries {
		if !e.lengthPreserving() {
			continue
		}
		if e.Dest.Contains(r) {
			return r.Shift(e.Origin.Begin - e.Dest.Begin), true
		}
	}
	return erbrange.Range{}, false
}

// Translate maps an IR range back to an original source range,
// following spec.md §4.2's fallback chain exactly.
func (m *Map) Translate(r erbrange.Range) (erbrange.Range, bool) {
	// 1. Exact dest match.
	for _, e := range m.entries {
		if e.Dest == r {
			return e.Origin, true
		}
	}

	// 2-3. Empty-insertion: translate the (shared) beginning, and if r
	// is itself empty, that's the whole answer.
	b, bok := m.translateBeginning(r.Begin)
	if r.Empty() && bok {
		return erbrange.Point(b), true
	}

	// 4-5. Both endpoints independently translated.
	e, eok := m.translateEnding(r.End)
	if bok && eok {
		return erbrange.New(b, e), true
	}

	// 6. Relative: a length-preserving entry containing r wholesale.
	if rel, ok := m.relative(r); ok {
		return rel, true
	}

	// 7. Spanning: relative-translate each endpoint as a zero-width
	// point over length-preserving entries.
	s, sok := m.relative(erbrange.Point(r.Begin))
	t, tok := m.relative(erbrange.Point(r.End))
	if sok && tok {
		return erbrange.New(s.Begin, t.Begin), true
	}

	return erbrange.Range{}, false
}
