package skills

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor resolves aliases in text to canonical skills.
// It is immutable once built and safe for concurrent use.
type Extractor struct {
	aliases []aliasMatcher
	lookup  map[string]string // alias or canonical name -> canonical name
}

type aliasMatcher struct {
	canonical string
	pattern   *regexp.Regexp // alias body only; edges are checked in aliasHits
}

// hit is one whole-word alias occurrence, as a byte span of the text.
type hit struct {
	start, end int
	canonical  string
}

var defaultExtractor = MustNewExtractor(DefaultTable())

// Default returns the process-wide extractor built from DefaultTable.
func Default() *Extractor {
	return defaultExtractor
}

// ExtractSkills extracts canonical skill names using the default extractor.
func ExtractSkills(text string) []string {
	return defaultExtractor.Extract(text)
}

// NewExtractor validates the table and compiles its alias patterns.
func NewExtractor(t Table) (*Extractor, error) {
	t = t.normalized()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid synonym table: %w", err)
	}

	e := &Extractor{lookup: make(map[string]string)}
	for _, entry := range t.Entries {
		for _, alias := range entry.Aliases {
			re, err := aliasPattern(alias)
			if err != nil {
				return nil, fmt.Errorf("failed to compile alias %q: %w", alias, err)
			}
			e.aliases = append(e.aliases, aliasMatcher{canonical: entry.Canonical, pattern: re})
			e.lookup[alias] = entry.Canonical
		}
		e.lookup[entry.Canonical] = entry.Canonical
	}
	return e, nil
}

// MustNewExtractor is like NewExtractor but panics on an invalid table.
func MustNewExtractor(t Table) *Extractor {
	e, err := NewExtractor(t)
	if err != nil {
		panic(err)
	}
	return e
}

// aliasPattern builds the pattern for an already normalized alias.
// Regex metacharacters are escaped and single spaces match any whitespace run.
func aliasPattern(alias string) (*regexp.Regexp, error) {
	words := strings.Fields(alias)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(strings.Join(words, `\s+`))
}

// isWordRune reports whether r may not touch an alias on either side.
// Checking edges by hand instead of \b lets aliases that end in symbols
// ("c++", "c#") match when followed by a space or punctuation.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// aliasHits returns every whole-word occurrence of m in text. The search
// restarts one rune after each candidate, so an occurrence rejected for its
// edges cannot hide the next one.
func (m aliasMatcher) aliasHits(text string, out []hit) []hit {
	for off := 0; off < len(text); {
		loc := m.pattern.FindStringIndex(text[off:])
		if loc == nil {
			break
		}
		start, end := off+loc[0], off+loc[1]
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			out = append(out, hit{start: start, end: end, canonical: m.canonical})
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + max(size, 1)
	}
	return out
}

// Extract returns the sorted canonical names of every skill with at least
// one alias present in text. Empty text yields an empty, non-nil slice.
// The longest alias wins: a hit lying inside a longer hit ("js" inside
// "node.js") is not counted.
func (e *Extractor) Extract(text string) []string {
	found := []string{}
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return found
	}

	var hits []hit
	for _, m := range e.aliases {
		hits = m.aliasHits(lower, hits)
	}

	// Leftmost first, longest first at the same start: a hit is covered
	// exactly when an earlier hit reaches at least as far.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].end > hits[j].end
	})

	seen := make(map[string]bool)
	reach := -1
	for _, h := range hits {
		if h.end <= reach {
			continue
		}
		reach = h.end
		if !seen[h.canonical] {
			seen[h.canonical] = true
			found = append(found, h.canonical)
		}
	}

	sort.Strings(found)
	return found
}

// Canonicalize maps a skill name to its canonical form when it is a known
// alias or canonical name. Unknown names are returned normalized.
func (e *Extractor) Canonicalize(name string) string {
	n := NormalizeAlias(name)
	if canonical, ok := e.lookup[n]; ok {
		return canonical
	}
	return n
}
