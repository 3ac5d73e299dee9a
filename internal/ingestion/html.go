package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<\s*/?\s*(p|div|br|ul|ol|li|h[1-6]|span|strong|em|b|i|a|table|tr|td)\b[^>]*>`)

// blockSelectors end a line in the extracted text.
const blockSelectors = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr"

// LooksLikeHTML reports whether s contains common markup tags. Job
// descriptions pasted from other job boards often carry HTML.
func LooksLikeHTML(s string) bool {
	return htmlTagPattern.MatchString(s)
}

// HTMLToText converts an HTML fragment into cleaned plain text. Scripts and
// styles are dropped, block elements become line breaks and list items
// become "- " bullets.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	return CleanText(doc.Text()), nil
}

// DescriptionText normalizes a job description: HTML is converted to text,
// plain text is only cleaned.
func DescriptionText(description string) string {
	if !LooksLikeHTML(description) {
		return CleanText(description)
	}
	text, err := HTMLToText(description)
	if err != nil {
		return CleanText(description)
	}
	return text
}
