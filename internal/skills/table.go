// Package skills maps freeform resume and job text to canonical skill tags.
package skills

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/job-matcher/internal/schemas"
	"gopkg.in/yaml.v3"
)

// Entry is one canonical skill and the surface forms that resolve to it.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// Table is the ordered synonym table. It is built once at startup and
// never mutated afterwards, so it can be shared across goroutines.
type Table struct {
	Entries []Entry `yaml:"skills"`
}

// DefaultTable returns the built-in synonym table.
func DefaultTable() Table {
	return Table{Entries: []Entry{
		{Canonical: "python", Aliases: []string{"python", "python3"}},
		{Canonical: "javascript", Aliases: []string{"javascript", "js", "ecmascript"}},
		{Canonical: "typescript", Aliases: []string{"typescript", "ts"}},
		{Canonical: "java", Aliases: []string{"java"}},
		{Canonical: "c++", Aliases: []string{"c++", "cpp"}},
		{Canonical: "c#", Aliases: []string{"c#", "csharp"}},
		{Canonical: "go", Aliases: []string{"golang", "go lang"}},
		{Canonical: "ruby", Aliases: []string{"ruby"}},
		{Canonical: "rust", Aliases: []string{"rust"}},
		{Canonical: "php", Aliases: []string{"php"}},
		{Canonical: "sql", Aliases: []string{"sql"}},
		{Canonical: "mysql", Aliases: []string{"mysql"}},
		{Canonical: "postgresql", Aliases: []string{"postgresql", "postgres", "psql"}},
		{Canonical: "mongodb", Aliases: []string{"mongodb", "mongo"}},
		{Canonical: "redis", Aliases: []string{"redis"}},
		{Canonical: "flask", Aliases: []string{"flask"}},
		{Canonical: "django", Aliases: []string{"django"}},
		{Canonical: "react", Aliases: []string{"react", "reactjs", "react.js"}},
		{Canonical: "angular", Aliases: []string{"angular", "angularjs"}},
		{Canonical: "vue", Aliases: []string{"vue", "vuejs", "vue.js"}},
		{Canonical: "node.js", Aliases: []string{"node.js", "nodejs", "node js"}},
		{Canonical: "html", Aliases: []string{"html", "html5"}},
		{Canonical: "css", Aliases: []string{"css", "css3"}},
		{Canonical: "graphql", Aliases: []string{"graphql"}},
		{Canonical: "rest api", Aliases: []string{"rest api", "restful api", "rest apis"}},
		{Canonical: "git", Aliases: []string{"git"}},
		{Canonical: "docker", Aliases: []string{"docker"}},
		{Canonical: "kubernetes", Aliases: []string{"kubernetes", "k8s"}},
		{Canonical: "terraform", Aliases: []string{"terraform"}},
		{Canonical: "aws", Aliases: []string{"aws", "amazon web services"}},
		{Canonical: "linux", Aliases: []string{"linux"}},
		{Canonical: "ci/cd", Aliases: []string{"ci/cd", "cicd", "continuous integration"}},
		{Canonical: "machine learning", Aliases: []string{"machine learning", "ml"}},
		{Canonical: "agile", Aliases: []string{"agile"}},
		{Canonical: "scrum", Aliases: []string{"scrum"}},
	}}
}

// LoadTable reads a YAML synonym table of the form:
//
//	skills:
//	  - canonical: react
//	    aliases: [react, reactjs]
func LoadTable(path string) (Table, error) {
	var t Table
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read synonyms file %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return t, fmt.Errorf("failed to parse synonyms YAML: %w", err)
	}
	if err := schemas.ValidateValue(schemas.SynonymTable, doc); err != nil {
		return t, fmt.Errorf("invalid synonyms file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse synonyms YAML: %w", err)
	}
	return t.normalized(), nil
}

// NormalizeAlias lower-cases an alias and collapses inner whitespace.
func NormalizeAlias(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalized returns a copy with every name normalized and duplicate aliases
// within an entry dropped.
func (t Table) normalized() Table {
	out := Table{Entries: make([]Entry, 0, len(t.Entries))}
	for _, e := range t.Entries {
		canonical := NormalizeAlias(e.Canonical)
		aliases := make([]string, 0, len(e.Aliases))
		seen := make(map[string]bool, len(e.Aliases))
		for _, a := range e.Aliases {
			a = NormalizeAlias(a)
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			aliases = append(aliases, a)
		}
		out.Entries = append(out.Entries, Entry{Canonical: canonical, Aliases: aliases})
	}
	return out
}

// Validate checks that every entry has a unique name and at least one
// alias, and that no alias resolves to two different canonical skills.
func (t Table) Validate() error {
	if len(t.Entries) == 0 {
		return fmt.Errorf("synonym table is empty")
	}
	owner := make(map[string]string)
	canonicals := make(map[string]bool, len(t.Entries))
	for i, e := range t.Entries {
		name := NormalizeAlias(e.Canonical)
		if name == "" {
			return fmt.Errorf("entry %d: canonical name is empty", i)
		}
		if canonicals[name] {
			return fmt.Errorf("duplicate canonical skill %q", name)
		}
		canonicals[name] = true
		if len(e.Aliases) == 0 {
			return fmt.Errorf("skill %q has no aliases", e.Canonical)
		}
		for _, a := range e.Aliases {
			a = NormalizeAlias(a)
			if a == "" {
				return fmt.Errorf("skill %q has an empty alias", e.Canonical)
			}
			if prev, ok := owner[a]; ok && prev != e.Canonical {
				return fmt.Errorf("alias %q maps to both %q and %q", a, prev, e.Canonical)
			}
			owner[a] = e.Canonical
		}
	}
	return nil
}

// Len returns the number of canonical skills in the table.
func (t Table) Len() int {
	return len(t.Entries)
}
