// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxSkillsWidth bounds joined skill lists inside a box
	maxSkillsWidth = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func skillList(skills []string) string {
	if len(skills) == 0 {
		return "-"
	}
	return truncate(strings.Join(skills, ", "), maxSkillsWidth)
}

// PrintRanking outputs the top ranked candidates for a job with their
// scores and skill overlap.
func (p *Printer) PrintRanking(jobTitle string, jobSkills []string, ranked []types.RankedCandidate) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:     %s\n", jobTitle))
	sb.WriteString(fmt.Sprintf("Skills:  %s\n\n", skillList(jobSkills)))

	if len(ranked) == 0 {
		sb.WriteString("No candidates ranked")
		p.printBox("CANDIDATE RANKING", sb.String())
		return
	}

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked[i]
		label := c.ID
		if c.Name != "" {
			label = fmt.Sprintf("%s (%s)", c.Name, c.ID)
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", c.Rank, label))
		sb.WriteString(fmt.Sprintf("    Score: %d", c.DisplayScore))
		if c.HighMatch {
			sb.WriteString("  ★ high match")
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Has:     %s\n", skillList(c.MatchingSkills)))
		sb.WriteString(fmt.Sprintf("    Missing: %s\n", skillList(c.MissingSkills)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the breakdown of a single match score.
func (p *Printer) PrintScore(resp types.ScoreResponse) {
	c := resp.Components

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skill score:    %6.2f  (x 0.7)\n", c.Skill))
	sb.WriteString(fmt.Sprintf("Context score:  %6.2f  (x 0.3)\n", c.Context))
	sb.WriteString(fmt.Sprintf("Weighted:       %6.2f\n", c.Weighted))
	sb.WriteString(fmt.Sprintf("Title boost:    %6.2f\n", c.TitleBoost))
	sb.WriteString(fmt.Sprintf("Final:          %6.2f  -> %d\n", c.Final, resp.DisplayScore))
	if resp.HighMatch {
		sb.WriteString("★ high match")
	}

	p.printBox("MATCH SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtractedSkills outputs the skills found in one document.
func (p *Printer) PrintExtractedSkills(source string, skills []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n\n", source))

	if len(skills) == 0 {
		sb.WriteString("No known skills found")
	} else {
		sb.WriteString(fmt.Sprintf("Found %d skills:\n", len(skills)))
		for _, s := range skills {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
