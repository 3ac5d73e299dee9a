// Package main provides the jobmatch CLI: the job board API server and
// offline skill extraction, scoring and ranking tools.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jobmatch",
	Short:         "Job board candidate matching",
	Long:          "jobmatch serves the job board REST API and ranks candidates against jobs by skill overlap and resume context.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger on stderr; debug level when verbose.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug || verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadExtractor builds the skill extractor from a YAML synonym file, or the
// built-in table when path is empty.
func loadExtractor(path string) (*skills.Extractor, error) {
	if path == "" {
		return skills.Default(), nil
	}
	table, err := skills.LoadTable(path)
	if err != nil {
		return nil, err
	}
	extractor, err := skills.NewExtractor(table)
	if err != nil {
		return nil, fmt.Errorf("failed to build skill extractor: %w", err)
	}
	return extractor, nil
}

// writeOutput writes v as indented JSON to path, or to the command's
// output when path is empty.
func writeOutput(cmd *cobra.Command, path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, append(jsonOutput, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
