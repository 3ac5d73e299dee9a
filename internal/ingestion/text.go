// Package ingestion turns uploaded resumes and posted job descriptions into
// clean plain text for skill extraction and scoring.
package ingestion

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRunPattern  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRunPattern  = regexp.MustCompile(`\n\n\n+`)
	bulletRunePrefix = []string{"•", "·", "▪", "●", "◦"}
)

// CleanText cleans and normalizes text content while preserving structure.
// Compatibility characters (ligatures, full-width letters, non-breaking
// spaces) are folded with NFKC so skill aliases match text decoded from PDFs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = norm.NFKC.String(content)

	// Normalize line endings (CRLF -> LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving bullets and indentation.
func cleanLine(line string) string {
	line = stripControl(line)
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	// Resume bullets decoded from PDF/DOCX use typographic glyphs; rewrite
	// them as "- " so every bullet looks the same downstream.
	if isBulletLine(trimmed) {
		trimmed = "- " + strings.TrimSpace(trimBullet(trimmed))
	}

	content := spaceRunPattern.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// stripControl drops control characters other than tab.
func stripControl(line string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, line)
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return true
	}
	for _, b := range bulletRunePrefix {
		if strings.HasPrefix(trimmed, b) {
			return true
		}
	}
	return false
}

func trimBullet(line string) string {
	for _, b := range append([]string{"- ", "* "}, bulletRunePrefix...) {
		if strings.HasPrefix(line, b) {
			return strings.TrimPrefix(line, b)
		}
	}
	return line
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}
