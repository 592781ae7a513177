package sourcemap

import (
	"testing"

	"github.com/indentlint/erblayout/internal/erbrange"
)

func TestTranslateExactMatch(t *testing.T) {
	m := New()
	m.Add(erbrange.New(10, 20), erbrange.New(100, 105))

	got, ok := m.Translate(erbrange.New(10, 20))
	if !ok || got != erbrange.New(100, 105) {
		t.Fatalf("Translate = %v, %v, want (100,105), true", got, ok)
	}
}

func TestTranslateEmptyInsertion(t *testing.T) {
	m := New()
	m.Add(erbrange.New(5, 12), erbrange.New(50, 50))

	got, ok := m.Translate(erbrange.Point(5))
	if !ok || got != erbrange.Point(50) {
		t.Fatalf("Translate(point) = %v, %v, want point(50), true", got, ok)
	}
}

func TestTranslateRelativeContainment(t *testing.T) {
	// A length-preserving entry: translating a sub-range wholly inside
	// dest shifts it by the same offset, per invariant 2.
	m := New()
	m.Add(erbrange.New(0, 10), erbrange.New(1000, 1010))

	got, ok := m.Translate(erbrange.New(3, 6))
	if !ok || got != erbrange.New(1003, 1006) {
		t.Fatalf("Translate(sub-range) = %v, %v, want (1003,1006), true", got, ok)
	}
}

func TestTranslateSpanning(t *testing.T) {
	// Two adjacent length-preserving entries; a range spanning both
	// translates by relative-shifting each endpoint independently.
	m := New()
	m.Add(erbrange.New(0, 5), erbrange.New(100, 105))
	m.Add(erbrange.New(5, 10), erbrange.New(200, 205))

	got, ok := m.Translate(erbrange.New(2, 8))
	if !ok {
		t.Fatal("Translate(spanning) failed")
	}
	want := erbrange.New(102, 203)
	if got != want {
		t.Fatalf("Translate(spanning) = %v, want %v", got, want)
	}
}

func TestTranslateFirstMatchWins(t *testing.T) {
	// Two entries with the same dest.Begin: the first one added wins.
	m := New()
	m.Add(erbrange.New(0, 3), erbrange.New(100, 103))
	m.Add(erbrange.New(0, 3), erbrange.New(200, 203))

	got, ok := m.Translate(erbrange.New(0, 3))
	if !ok || got != erbrange.New(100, 103) {
		t.Fatalf("Translate = %v, %v, want first entry (100,103), true", got, ok)
	}
}

func TestTranslateNoMatch(t *testing.T) {
	m := New()
	m.Add(erbrange.New(0, 3), erbrange.New(100, 103))

	if _, ok := m.Translate(erbrange.New(50, 60)); ok {
		t.Fatal("Translate matched a range with no relation to any entry")
	}
}
