package main

import (
	"fmt"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract canonical skills from a resume file",
	Long:  "Decodes a .txt, .pdf or .docx resume and prints the canonical skills found in it, with metadata about the decoded document.",
	RunE:  runExtractSkills,
}

var (
	extractSkillsInput    string
	extractSkillsSynonyms string
	extractSkillsOutput   string
)

// extractSkillsResult is the JSON printed by extract-skills.
type extractSkillsResult struct {
	Skills   []string            `json:"skills"`
	Metadata *ingestion.Metadata `json:"metadata"`
}

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractSkillsInput, "in", "i", "", "Path to the resume file (required)")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsSynonyms, "synonyms", "s", "", "Path to a YAML synonym table (default: built-in table)")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsOutput, "out", "o", "", "Path to the output JSON file (default: stdout)")

	if err := extractSkillsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	extractor, err := loadExtractor(extractSkillsSynonyms)
	if err != nil {
		return err
	}

	text, metadata, err := ingestion.IngestFromFile(extractSkillsInput)
	if err != nil {
		return err
	}

	found := extractor.Extract(text)
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExtractedSkills(metadata.Filename, found)
	}
	return writeOutput(cmd, extractSkillsOutput, extractSkillsResult{
		Skills:   found,
		Metadata: metadata,
	})
}
