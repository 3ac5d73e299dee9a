package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job",
	Long:  "Scores every candidate in a list against one job in parallel and prints them best match first. Candidates with equal scores keep their input order.",
	RunE:  runRank,
}

var (
	rankJob        string
	rankCandidates string
	rankTop        int
	rankWorkers    int
	rankThreshold  float64
	rankSynonyms   string
	rankOutput     string
)

// rankOptions tune a ranking run.
type rankOptions struct {
	Top       int // keep the first Top candidates; 0 keeps all
	Workers   int
	Threshold float64
	BaseDir   string // relative resume_file paths resolve against it
}

// rankResult is the JSON printed by rank.
type rankResult struct {
	Job        string                  `json:"job"`
	JobSkills  []string                `json:"job_skills"`
	Candidates []types.RankedCandidate `json:"candidates"`
}

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to the job JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidates, "candidates", "c", "", "Path to the candidates JSON file (required)")
	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 0, "Only print the best N candidates (0 prints all)")
	rankCmd.Flags().IntVarP(&rankWorkers, "workers", "w", 0, "Scoring goroutines (0 uses GOMAXPROCS)")
	rankCmd.Flags().Float64Var(&rankThreshold, "threshold", config.DefaultHighMatchThreshold, "Scores strictly above this are high matches")
	rankCmd.Flags().StringVarP(&rankSynonyms, "synonyms", "s", "", "Path to a YAML synonym table (default: built-in table)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to the output JSON file (default: stdout)")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankTop < 0 {
		return fmt.Errorf("--top must not be negative, got %d", rankTop)
	}

	extractor, err := loadExtractor(rankSynonyms)
	if err != nil {
		return err
	}

	var job types.RankJob
	if err := readValidated(rankJob, schemas.RankJob, &job); err != nil {
		return err
	}
	var candidates []types.RankCandidate
	if err := readValidated(rankCandidates, schemas.RankCandidates, &candidates); err != nil {
		return err
	}

	ranked, err := rankAll(cmd.Context(), extractor, job, candidates, rankOptions{
		Top:       rankTop,
		Workers:   rankWorkers,
		Threshold: rankThreshold,
		BaseDir:   filepath.Dir(rankCandidates),
	})
	if err != nil {
		return err
	}

	result := rankResult{
		Job:        job.Title,
		JobSkills:  canonicalNames(extractor, job.Skills),
		Candidates: ranked,
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRanking(result.Job, result.JobSkills, result.Candidates)
	}
	return writeOutput(cmd, rankOutput, result)
}

// readValidated reads a JSON file, validates it against a named schema and
// decodes it into v.
func readValidated(path, schema string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(schema, content); err != nil {
		return fmt.Errorf("invalid %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// skillCatalog assigns run-local IDs to canonical skill names.
type skillCatalog map[string]skills.SkillID

func (c skillCatalog) names(extractor *skills.Extractor, raw []string, canonicalize bool) skills.Names {
	out := make(skills.Names, len(raw))
	for _, name := range raw {
		if canonicalize {
			name = extractor.Canonicalize(name)
		}
		id, ok := c[name]
		if !ok {
			id = skills.SkillID(len(c) + 1)
			c[name] = id
		}
		out[id] = name
	}
	return out
}

// canonicalNames returns the sorted, de-duplicated canonical names.
func canonicalNames(extractor *skills.Extractor, raw []string) []string {
	n := make(skillCatalog).names(extractor, raw, true)
	return n.Lookup(n.IDs())
}

// rankAll scores every candidate against job and returns them best first.
func rankAll(ctx context.Context, extractor *skills.Extractor, job types.RankJob, candidates []types.RankCandidate, opts rankOptions) ([]types.RankedCandidate, error) {
	catalog := make(skillCatalog)
	jobNames := catalog.names(extractor, job.Skills, true)
	description := ingestion.DescriptionText(job.Description)

	seen := make(map[string]bool, len(candidates))
	candidateNames := make([]skills.Names, len(candidates))
	inputs := make([]ranking.Input, len(candidates))
	for i, c := range candidates {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate candidate id %q", c.ID)
		}
		seen[c.ID] = true

		text, err := resumeText(c, opts.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", c.ID, err)
		}

		if len(c.Skills) > 0 {
			candidateNames[i] = catalog.names(extractor, c.Skills, true)
		} else {
			candidateNames[i] = catalog.names(extractor, extractor.Extract(text), false)
		}

		inputs[i] = ranking.Input{
			CandidateSkills: candidateNames[i].IDs(),
			JobSkills:       jobNames.IDs(),
			Texts: ranking.Texts{
				ResumeText:     text,
				JobDescription: description,
				JobTitle:       job.Title,
			},
		}
	}

	components, err := ranking.ScoreAll(ctx, inputs, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	ranked := make([]types.RankedCandidate, len(candidates))
	for i, c := range candidates {
		matching, missing := ranking.Overlap(candidateNames[i], jobNames)
		final := components[i].Final
		ranked[i] = types.RankedCandidate{
			ID:             c.ID,
			Name:           c.Name,
			Score:          final,
			DisplayScore:   ranking.Round(final),
			HighMatch:      ranking.IsHighMatch(final, opts.Threshold),
			MatchingSkills: matching,
			MissingSkills:  missing,
			Components:     components[i],
		}
	}

	ranking.SortByScore(ranked, func(r types.RankedCandidate) float64 { return r.Score })
	if opts.Top > 0 {
		ranked = ranking.TopN(ranked, opts.Top)
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// resumeText returns the inline resume text, or decodes resume_file when
// no text is given. A file that decodes to nothing yields empty text.
func resumeText(c types.RankCandidate, baseDir string) (string, error) {
	if c.ResumeText != "" || c.ResumeFile == "" {
		return ingestion.CleanText(c.ResumeText), nil
	}

	path := c.ResumeFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		if errors.Is(err, ingestion.ErrEmptyDocument) {
			return "", nil
		}
		return "", err
	}
	return text, nil
}
