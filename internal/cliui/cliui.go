// Package cliui renders check/fix results with the same Lip Gloss
// styling the teacher's pkg/ui/styles.go uses for build output,
// re-themed from build-step reporting to offense reporting: a file
// header, one styled line per offense (severity-colored), and a
// summary line.
package cliui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/indentlint/erblayout/internal/diagnostics"
	"github.com/indentlint/erblayout/internal/offense"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#5AF78E")
	colorWarning = lipgloss.Color("#F7DC6F")
	colorError   = lipgloss.Color("#FF6B9D")
	colorMuted   = lipgloss.Color("#6C7086")
	colorText    = lipgloss.Color("#CDD6F4")

	styleFilePath = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleWarning  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleText     = lipgloss.NewStyle().Foreground(colorText)
	styleSummary  = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorMuted).
			MarginTop(1).
			PaddingTop(1)
)

func severityStyle(s offense.Severity) lipgloss.Style {
	switch s {
	case offense.SeverityError, offense.SeverityFatal:
		return styleError
	case offense.SeverityWarning:
		return styleWarning
	case offense.SeverityRefactor:
		return styleText
	default:
		return styleMuted
	}
}

// Output is a running report across one or more checked files,
// mirroring pkg/ui/styles.go's BuildOutput (one stateful printer
// spanning a whole CLI invocation).
type Output struct {
	startTime time.Time
	offenses  int
}

// NewOutput starts a new report, timing from construction.
func NewOutput() *Output {
	return &Output{startTime: time.Now()}
}

// PrintFileHeader announces the file about to be checked.
func (o *Output) PrintFileHeader(path string) {
	fmt.Println(styleFilePath.Render(path))
}

// PrintOffense renders one offense as a source snippet plus a
// severity-colored label.
func (o *Output) PrintOffense(snip diagnostics.Snippet) {
	o.offenses++
	label := severityStyle(snip.Severity).Render(fmt.Sprintf("%s:", snip.Severity))
	fmt.Printf("  %s %s\n", label, snip.Message)
	for _, line := range indentLines(snip.Format()) {
		fmt.Println(line)
	}
}

func indentLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if i > start {
				lines = append(lines, "    "+s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}

// PrintSummary prints the final line: clean, or a count of offenses
// found, styled after pkg/ui/styles.go's PrintSummary success/failure
// split.
func (o *Output) PrintSummary() {
	elapsed := time.Since(o.startTime).Round(time.Millisecond)
	var line string
	if o.offenses == 0 {
		line = fmt.Sprintf("%s no offenses in %s", styleSuccess.Render("✓"), elapsed)
	} else {
		line = fmt.Sprintf("%s %d offense(s) in %s", styleWarning.Render("!"), o.offenses, elapsed)
	}
	fmt.Println(styleSummary.Render(line))
}
