package hostlint

import (
	"testing"

	"github.com/indentlint/erblayout/internal/config"
)

// TestBlockAlignedStartOfBlock covers the S3/S4 shape the review flagged:
// "10.times do |i|" puts the "do" keyword well past the line's own
// leading whitespace, so start_of_block and start_of_line disagree about
// what the closer should match.
func TestBlockAlignedStartOfBlock(t *testing.T) {
	// Open line: "  10.times do |i|;" — two leading spaces, "do" at column 11.
	b := Block{
		Open:        Line{LeadingWS: 2, Start: 0},
		OpenKeyword: 11,
		Close:       Line{LeadingWS: 11},
	}

	if aligned := blockAligned(b, config.AlignWithStartOfLine); aligned {
		t.Errorf("start_of_line: want misaligned (2 != 11)")
	}
	if aligned := blockAligned(b, config.AlignWithStartOfBlock); !aligned {
		t.Errorf("start_of_block: want aligned (closer at col 11 matches \"do\"'s own column)")
	}
	if aligned := blockAligned(b, config.AlignWithEither); !aligned {
		t.Errorf("either: want aligned since start_of_block matches")
	}
}

func TestBlockAlignedStartOfLineDefault(t *testing.T) {
	b := Block{
		Open:        Line{LeadingWS: 2, Start: 0},
		OpenKeyword: 11,
		Close:       Line{LeadingWS: 2},
	}

	if aligned := blockAligned(b, config.AlignWithStartOfLine); !aligned {
		t.Errorf("start_of_line: want aligned (2 == 2)")
	}
	if aligned := blockAligned(b, config.AlignWithStartOfBlock); aligned {
		t.Errorf("start_of_block: want misaligned (2 != 11)")
	}
}

func TestBlockAlignedNeitherMatches(t *testing.T) {
	b := Block{
		Open:        Line{LeadingWS: 2, Start: 0},
		OpenKeyword: 11,
		Close:       Line{LeadingWS: 4},
	}

	if aligned := blockAligned(b, config.AlignWithEither); aligned {
		t.Errorf("either: want misaligned, closer (4) matches neither 2 nor 11")
	}
}
