// Command erblayout is the indentation engine's CLI, grounded on
// cmd/dingo/main.go's Cobra command tree: check/fix/export-sourcemap
// subcommands instead of build/run, reporting through internal/cliui
// and internal/diagnostics instead of pkg/ui.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"

	"github.com/indentlint/erblayout/internal/cliui"
	"github.com/indentlint/erblayout/internal/config"
	"github.com/indentlint/erblayout/internal/diagnostics"
	"github.com/indentlint/erblayout/internal/editor"
	"github.com/indentlint/erblayout/internal/linter"
	"github.com/indentlint/erblayout/internal/lspbridge"
	"github.com/indentlint/erblayout/internal/offense"
	"github.com/indentlint/erblayout/internal/sourcemapexport"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "erblayout",
		Short:   "Check and fix ERB template indentation",
		Version: version,
	}

	rootCmd.AddCommand(checkCmd(), fixCmd(), exportSourceMapCmd(), lspCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configFlag(cmd *cobra.Command) *string {
	return cmd.Flags().String("config", "", "Path to a TOML configuration file (defaults applied if omitted)")
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file.erb...]",
		Short: "Report indentation offenses without modifying files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runCheck(args, cfgPath)
		},
	}
	configFlag(cmd)
	return cmd
}

func fixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [file.erb...]",
		Short: "Apply available corrections in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runFix(args, cfgPath)
		},
	}
	configFlag(cmd)
	return cmd
}

func exportSourceMapCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-sourcemap [file.erb]",
		Short: "Write the template's IR source map as Source Map v3 JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runExportSourceMap(args[0], output, cfgPath)
		},
	}
	configFlag(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: stdout)")
	return cmd
}

func lspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Serve diagnostics over LSP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runLSP(cfgPath)
		},
	}
	configFlag(cmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("erblayout: %w", err)
	}
	return cfg, nil
}

func runCheck(files []string, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	out := cliui.NewOutput()
	total := 0
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("erblayout: reading %s: %w", path, err)
		}

		result, err := linter.Run(context.Background(), path, content, cfg)
		if err != nil {
			return fmt.Errorf("erblayout: checking %s: %w", path, err)
		}

		if len(result.Offenses) == 0 {
			continue
		}
		out.PrintFileHeader(path)
		for _, o := range result.Offenses {
			out.PrintOffense(diagnostics.Build(result.IR.Source, o))
		}
		total += len(result.Offenses)
	}
	out.PrintSummary()

	if total > 0 {
		os.Exit(1)
	}
	return nil
}

func runFix(files []string, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	out := cliui.NewOutput()
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("erblayout: reading %s: %w", path, err)
		}

		result, err := linter.Run(context.Background(), path, content, cfg)
		if err != nil {
			return fmt.Errorf("erblayout: checking %s: %w", path, err)
		}

		var actions []offense.Action
		for _, o := range result.Offenses {
			actions = append(actions, o.Actions...)
		}
		if len(actions) == 0 {
			continue
		}

		corrected := editor.Apply(content, actions)
		if err := os.WriteFile(path, corrected, 0o644); err != nil {
			return fmt.Errorf("erblayout: writing %s: %w", path, err)
		}

		remaining, err := linter.Run(context.Background(), path, corrected, cfg)
		if err != nil {
			return fmt.Errorf("erblayout: re-checking %s: %w", path, err)
		}

		out.PrintFileHeader(path)
		fmt.Printf("  fixed %d offense(s)\n", len(actions))
		for _, o := range remaining.Offenses {
			out.PrintOffense(diagnostics.Build(remaining.IR.Source, o))
		}
	}
	out.PrintSummary()
	return nil
}

// stdio wraps os.Stdin/os.Stdout as the io.ReadWriteCloser jsonrpc2
// wants, grounded on cmd/dingo-lsp/main.go's stdinoutCloser — closing
// it is a no-op since the process owns stdin/stdout for its whole
// lifetime.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

var _ io.ReadWriteCloser = stdio{}

func runLSP(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	server := lspbridge.NewServer(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := jsonrpc2.NewStream(stdio{})
	conn := jsonrpc2.NewConn(stream)
	server.SetConn(conn)

	conn.Go(ctx, server.Handler())
	<-conn.Done()
	return nil
}

func runExportSourceMap(path, output, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erblayout: reading %s: %w", path, err)
	}

	result, err := linter.Run(context.Background(), path, content, cfg)
	if err != nil {
		return fmt.Errorf("erblayout: checking %s: %w", path, err)
	}

	data, err := sourcemapexport.Export(result.IR)
	if err != nil {
		return fmt.Errorf("erblayout: exporting source map: %w", err)
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
