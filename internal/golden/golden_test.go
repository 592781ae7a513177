// Package golden runs the spec's end-to-end scenarios (S1-S6) as
// golden fixtures, grounded on internal/proxy/proxytest's pattern of
// loading one txtar archive per test case from testdata and pulling
// named sections out of it.
package golden

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/editor"
	"github.com/indentlint/erblayout/internal/linter"
	"github.com/indentlint/erblayout/internal/offense"
)

type wantOffense struct {
	begin, end int // -1 when the fixture doesn't pin an exact range (prefix mode)
	severity   string
	message    string
}

func fileData(ar *txtar.Archive, name string) ([]byte, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

func parseWant(data []byte, prefixMode bool) []wantOffense {
	var want []wantOffense
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			panic(fmt.Sprintf("malformed offenses.txt line: %q", line))
		}
		sev, msg := fields[1], fields[2]

		if prefixMode {
			count, err := strconv.Atoi(fields[0])
			if err != nil {
				panic(err)
			}
			for i := 0; i < count; i++ {
				want = append(want, wantOffense{begin: -1, end: -1, severity: sev, message: msg})
			}
			continue
		}

		loc := strings.SplitN(fields[0], ",", 2)
		begin, err := strconv.Atoi(loc[0])
		if err != nil {
			panic(err)
		}
		end, err := strconv.Atoi(loc[1])
		if err != nil {
			panic(err)
		}
		want = append(want, wantOffense{begin: begin, end: end, severity: sev, message: msg})
	}
	return want
}

func TestScenarios(t *testing.T) {
	matches, err := filepath.Glob("testdata/golden/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("no golden fixtures found")
	}

	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing %s: %v", path, err)
			}

			input, ok := fileData(ar, "input.erb")
			if !ok {
				t.Fatalf("%s: missing input.erb", path)
			}

			prefixMode := false
			if mode, ok := fileData(ar, "mode.txt"); ok && strings.TrimSpace(string(mode)) == "prefix" {
				prefixMode = true
			}

			offensesData, _ := fileData(ar, "offenses.txt")
			want := parseWant(offensesData, prefixMode)

			cfg := config.DefaultConfig()
			result, err := linter.Run(context.Background(), path, input, cfg)
			if err != nil {
				t.Fatalf("linter.Run: %v", err)
			}

			if len(result.Offenses) != len(want) {
				t.Fatalf("got %d offenses, want %d:\ngot:  %+v\nwant: %+v", len(result.Offenses), len(want), result.Offenses, want)
			}

			for i, o := range result.Offenses {
				w := want[i]
				if string(o.Severity) != w.severity {
					t.Errorf("offense %d: severity = %q, want %q", i, o.Severity, w.severity)
				}
				if prefixMode {
					if !strings.HasPrefix(o.Message, w.message) {
						t.Errorf("offense %d: message %q does not start with %q", i, o.Message, w.message)
					}
					continue
				}
				if o.Location.Begin != w.begin || o.Location.End != w.end {
					t.Errorf("offense %d: location = [%d,%d), want [%d,%d)", i, o.Location.Begin, o.Location.End, w.begin, w.end)
				}
				if o.Message != w.message {
					t.Errorf("offense %d: message = %q, want %q", i, o.Message, w.message)
				}
			}

			if corrected, ok := fileData(ar, "corrected.erb"); ok {
				var actions []offense.Action
				for _, o := range result.Offenses {
					actions = append(actions, o.Actions...)
				}
				got := editor.Apply(input, actions)
				if !bytes.Equal(got, corrected) {
					t.Errorf("corrected output = %q, want %q", got, corrected)
				}
			}

			if prefixMode && len(result.Offenses) > 0 {
				var actions []offense.Action
				for _, o := range result.Offenses {
					actions = append(actions, o.Actions...)
				}
				corrected := editor.Apply(input, actions)
				again, err := linter.Run(context.Background(), path, corrected, cfg)
				if err != nil {
					t.Fatalf("linter.Run (second pass): %v", err)
				}
				for _, o := range again.Offenses {
					for _, w := range want {
						if strings.HasPrefix(o.Message, w.message) {
							t.Errorf("offense %q of the fixed kind survived auto-correct", o.Message)
						}
					}
				}
			}
		})
	}
}
