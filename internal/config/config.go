// Package config loads and validates the indentation engine's
// configuration, per spec.md §6's enumerated option set and mapping
// table.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// AlignWithStyle is the enforced-style option shared by BlockAlignment
// and BeginEndAlignment.
type AlignWithStyle string

const (
	AlignWithStartOfBlock AlignWithStyle = "start_of_block"
	AlignWithStartOfLine  AlignWithStyle = "start_of_line"
	AlignWithEither       AlignWithStyle = "either"
)

func (s AlignWithStyle) valid() bool {
	switch s {
	case AlignWithStartOfBlock, AlignWithStartOfLine, AlignWithEither:
		return true
	default:
		return false
	}
}

// EndAlignStyle is EndAlignment's enforced-style option.
type EndAlignStyle string

const (
	EndAlignKeyword      EndAlignStyle = "keyword"
	EndAlignVariable     EndAlignStyle = "variable"
	EndAlignStartOfLine  EndAlignStyle = "start_of_line"
)

func (s EndAlignStyle) valid() bool {
	switch s {
	case EndAlignKeyword, EndAlignVariable, EndAlignStartOfLine:
		return true
	default:
		return false
	}
}

// ArgumentAlignmentStyle is ArgumentAlignment's enforced-style option.
type ArgumentAlignmentStyle string

const (
	ArgumentAlignWithFirst    ArgumentAlignmentStyle = "with_first_argument"
	ArgumentAlignWithFixed    ArgumentAlignmentStyle = "with_fixed_indentation"
)

func (s ArgumentAlignmentStyle) valid() bool {
	switch s {
	case ArgumentAlignWithFirst, ArgumentAlignWithFixed:
		return true
	default:
		return false
	}
}

// Config is the exact option set from spec.md §6, each field mapped to
// a host rule/option per the §6 mapping table.
type Config struct {
	// Width maps to Layout/IndentationWidth's Width option.
	Width int `toml:"width"`
	// EnforcedStyleBlockAlignWith maps to Layout/BlockAlignment's
	// EnforcedStyleAlignWith option.
	EnforcedStyleBlockAlignWith AlignWithStyle `toml:"enforced_style_block_align_with"`
	// EnforcedStyleBeginEndAlignWith maps to Layout/BeginEndAlignment's
	// EnforcedStyleAlignWith option.
	EnforcedStyleBeginEndAlignWith AlignWithStyle `toml:"enforced_style_begin_end_align_with"`
	// EnforcedStyleEndAlignWith maps to Layout/EndAlignment's
	// EnforcedStyleAlignWith option.
	EnforcedStyleEndAlignWith EndAlignStyle `toml:"enforced_style_end_align_with"`
	// EnforcedStyleArgumentAlignment maps to Layout/ArgumentAlignment's
	// EnforcedStyle option.
	EnforcedStyleArgumentAlignment ArgumentAlignmentStyle `toml:"enforced_style_argument_alignment"`
}

// DefaultConfig returns the engine's default configuration: width 2,
// and the host's own defaults for the four enforced-style options.
func DefaultConfig() *Config {
	return &Config{
		Width:                           2,
		EnforcedStyleBlockAlignWith:     AlignWithStartOfLine,
		EnforcedStyleBeginEndAlignWith:  AlignWithStartOfLine,
		EnforcedStyleEndAlignWith:       EndAlignKeyword,
		EnforcedStyleArgumentAlignment:  ArgumentAlignWithFirst,
	}
}

// ValidationError enumerates every offending field found during
// validation, rather than failing at the first bad field — §7's
// "Configuration error: rejected at construction time with a typed
// failure enumerating offending fields."
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Fields, "; "))
}

// Load reads a TOML file at path into a copy of DefaultConfig and
// validates it. A missing file is not an error: defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field, collecting all violations into a single
// *ValidationError rather than stopping at the first.
func (c *Config) Validate() error {
	var bad []string

	if c.Width < 1 {
		bad = append(bad, fmt.Sprintf("width: must be >= 1, got %d", c.Width))
	}
	if !c.EnforcedStyleBlockAlignWith.valid() {
		bad = append(bad, fmt.Sprintf("enforced_style_block_align_with: invalid value %q", c.EnforcedStyleBlockAlignWith))
	}
	if !c.EnforcedStyleBeginEndAlignWith.valid() {
		bad = append(bad, fmt.Sprintf("enforced_style_begin_end_align_with: invalid value %q", c.EnforcedStyleBeginEndAlignWith))
	}
	if !c.EnforcedStyleEndAlignWith.valid() {
		bad = append(bad, fmt.Sprintf("enforced_style_end_align_with: invalid value %q", c.EnforcedStyleEndAlignWith))
	}
	if !c.EnforcedStyleArgumentAlignment.valid() {
		bad = append(bad, fmt.Sprintf("enforced_style_argument_alignment: invalid value %q", c.EnforcedStyleArgumentAlignment))
	}

	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
