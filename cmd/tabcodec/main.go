// Package main provides the CLI entry point for tabcodec-go.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/tabcodec-go/internal/config"
	"github.com/ukaji3/tabcodec-go/internal/logging"
	"github.com/ukaji3/tabcodec-go/pkg/tabcodec"
	"github.com/ukaji3/tabcodec-go/pkg/tabcodec/output"
)

// targetJSON selects JSON output instead of a spreadsheet container.
const targetJSON = "json"

type cliOptions struct {
	outputPath    string
	to            string
	pretty        bool
	mergeRowLimit int
	maxCells      int
	logLevel      string
	logFormat     string
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command. Flag defaults come from cfg.
func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "tabcodec [input.csv|input.xlsx|input.ods]",
		Short: "Convert spreadsheets through a canonical string table",
		Long: `tabcodec-go decodes CSV, XLSX and ODS files into a header-plus-rows
table and writes it as JSON or re-encodes it as XLSX or ODS.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&opts.to, "to", "", "Output format: json, xlsx, ods (default: from output extension, else json)")
	rootCmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().IntVar(&opts.mergeRowLimit, "merge-row-limit", cfg.Decode.MergeRowLimit, "Skip merged-cell flattening for sheets with at least this many rows (negative: never skip)")
	rootCmd.Flags().IntVar(&opts.maxCells, "max-cells", cfg.Decode.MaxCells, "Reject spreadsheets whose grid would exceed this many cells (negative: no limit)")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&opts.logFormat, "log-format", cfg.Logging.Format, "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, inputPath string, opts *cliOptions) error {
	logger := logging.Setup(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	target, err := resolveTarget(opts.to, opts.outputPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	table, err := tabcodec.DecodeFile(filepath.Base(inputPath), data, tabcodec.Options{
		MergeRowLimit: opts.mergeRowLimit,
		MaxCells:      opts.maxCells,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	var out []byte
	if target == targetJSON {
		out, err = output.ToJSON(table, opts.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	} else {
		out, err = tabcodec.Encode(tabcodec.Format(target), table)
		if err != nil {
			return fmt.Errorf("encode failed: %w", err)
		}
	}

	logger.Info("converted", "input", inputPath, "target", target, "columns", table.Width(), "rows", len(table.Rows))

	// Write output
	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if target == targetJSON {
		out = append(out, '\n')
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveTarget picks the output kind from --to, then the output file
// extension, defaulting to JSON.
func resolveTarget(to, outputPath string) (string, error) {
	name := strings.ToLower(strings.TrimPrefix(to, "."))
	if name == "" && outputPath != "" {
		name = strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	}

	switch name {
	case "", targetJSON:
		return targetJSON, nil
	case string(tabcodec.FormatXLSX), string(tabcodec.FormatODS):
		return name, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be json, xlsx, or ods)", name)
	}
}
