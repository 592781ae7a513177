// Package ir bundles a template's original source, its transpiled IR
// text, and the source map between them — spec.md §3's "IR bundles"
// triple — plus the single forward translate operation consumers need.
package ir

import (
	"github.com/indentlint/erblayout/internal/erbrange"
	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/sourcemap"
)

// IR is the triple (original source, IR text, source map).
type IR struct {
	Source *erbsrc.Source
	Text   string
	Map    *sourcemap.Map
}

// New assembles an IR from its three parts.
func New(source *erbsrc.Source, text string, m *sourcemap.Map) *IR {
	return &IR{Source: source, Text: text, Map: m}
}

// Translate maps an IR byte range back to a range in the original
// source, or reports false if no entry in the map covers it.
func (ir *IR) Translate(r erbrange.Range) (erbrange.Range, bool) {
	return ir.Map.Translate(r)
}
