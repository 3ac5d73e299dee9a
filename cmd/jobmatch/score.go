package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one candidate against one job",
	Long:  "Reads a score request (candidate and job skill IDs plus optional resume text, job description and title), validates it against the score request schema and prints the score breakdown.",
	RunE:  runScore,
}

var (
	scoreInput     string
	scoreOutput    string
	scoreThreshold float64
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to the score request JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to the output JSON file (default: stdout)")
	scoreCmd.Flags().Float64Var(&scoreThreshold, "threshold", config.DefaultHighMatchThreshold, "Scores strictly above this are high matches")

	if err := scoreCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(scoreInput)
	if err != nil {
		return fmt.Errorf("failed to read score request file %s: %w", scoreInput, err)
	}

	req, err := parseScoreRequest(content)
	if err != nil {
		return err
	}

	resp := types.NewScoreResponse(ranking.Breakdown(req.Input()), scoreThreshold)
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintScore(resp)
	}
	return writeOutput(cmd, scoreOutput, resp)
}

// parseScoreRequest validates a score request document and decodes it.
func parseScoreRequest(content []byte) (*types.ScoreRequest, error) {
	if err := schemas.ValidateDocument(schemas.ScoreRequest, content); err != nil {
		return nil, fmt.Errorf("invalid score request: %w", err)
	}

	var req types.ScoreRequest
	if err := json.Unmarshal(content, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score request JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score request: %w", err)
	}
	return &req, nil
}
