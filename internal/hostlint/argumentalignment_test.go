package hostlint

import (
	"testing"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/erbparse"
	"github.com/indentlint/erblayout/internal/erbsrc"
	"github.com/indentlint/erblayout/internal/transpiler"
)

// checkArgs transpiles src and runs just the argument-alignment cop,
// mirroring transpiler_test.go's transpile helper.
func checkArgs(t *testing.T, src string, cfg *config.Config) []Diagnostic {
	t.Helper()
	source := erbsrc.New("fixture.erb", []byte(src))
	root := erbparse.Parse([]byte(src))
	doc := transpiler.Transpile(source, root)
	return checkArgumentAlignment(doc, splitLines(doc.Text), cfg)
}

// TestArgumentAlignmentWithFirstArgument covers the default style: a
// continuation attribute at the opener's own indentation step (not the
// first attribute's column) is flagged.
func TestArgumentAlignmentWithFirstArgument(t *testing.T) {
	src := "<div a=\"1\"\n  b=\"2\">\n</div>\n"
	cfg := config.DefaultConfig()
	cfg.EnforcedStyleArgumentAlignment = config.ArgumentAlignWithFirst

	diags := checkArgs(t, src, cfg)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(diags), diags)
	}
}

// TestArgumentAlignmentWithFixedIndentation covers the gap the review
// flagged: the same input is clean under with_fixed_indentation, since
// "b" sits exactly one configured indentation step past the opener's
// own (zero) indentation.
func TestArgumentAlignmentWithFixedIndentation(t *testing.T) {
	src := "<div a=\"1\"\n  b=\"2\">\n</div>\n"
	cfg := config.DefaultConfig()
	cfg.Width = 2
	cfg.EnforcedStyleArgumentAlignment = config.ArgumentAlignWithFixed

	diags := checkArgs(t, src, cfg)
	if len(diags) != 0 {
		t.Fatalf("got %d diagnostics, want 0: %+v", len(diags), diags)
	}
}

// TestArgumentAlignmentWithFixedIndentationStillFlagsMisalignment
// checks the fixed style still reports when the continuation isn't at
// the configured step.
func TestArgumentAlignmentWithFixedIndentationStillFlagsMisalignment(t *testing.T) {
	src := "<div a=\"1\"\n      b=\"2\">\n</div>\n"
	cfg := config.DefaultConfig()
	cfg.Width = 2
	cfg.EnforcedStyleArgumentAlignment = config.ArgumentAlignWithFixed

	diags := checkArgs(t, src, cfg)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(diags), diags)
	}
}
