// Package registry holds the ordered company registry: a fixed mapping from
// canonical company names (plus aliases) to company type and tier. The
// registry is authoritative: when it recognizes a company, its
// classification overrides anything the provider says.
package registry

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

//go:embed companies.yaml
var companiesYAML []byte

// Entry is one registry row. Aliases are ordered; the first alias match
// within the first matching entry wins during extraction.
type Entry struct {
	Name    string             `yaml:"name"`
	Aliases []string           `yaml:"aliases"`
	Type    domain.CompanyType `yaml:"type"`
	Tier    domain.CompanyTier `yaml:"tier"`
}

// Registry is an ordered list of entries with precompiled alias patterns.
// It is immutable after Load and safe for concurrent use.
type Registry struct {
	entries []Entry
	// aliasPatterns[i][j] is the word-boundary pattern for entries[i].Aliases[j].
	aliasPatterns [][]*regexp.Regexp
}

type registryFile struct {
	Companies []Entry `yaml:"companies"`
}

// Load parses the embedded registry. Declared order is preserved.
func Load() (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(companiesYAML, &f); err != nil {
		return nil, fmt.Errorf("op=registry.Load: %w", err)
	}
	r := &Registry{entries: f.Companies}
	for _, e := range f.Companies {
		if !e.Type.Valid() || !e.Tier.Valid() {
			return nil, fmt.Errorf("op=registry.Load: %w: entry %q has invalid type/tier", domain.ErrInvalidArgument, e.Name)
		}
		pats := make([]*regexp.Regexp, 0, len(e.Aliases))
		for _, a := range e.Aliases {
			pats = append(pats, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(a))+`\b`))
		}
		r.aliasPatterns = append(r.aliasPatterns, pats)
	}
	return r, nil
}

// MustLoad is Load for wiring paths where the embedded file is trusted.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

// Entries returns the registry rows in declared order.
func (r *Registry) Entries() []Entry { return r.entries }

// Classify resolves a company name to its registry classification.
// Lookup is case-insensitive: exact canonical match first, then exact or
// substring alias match, first hit wins. ok is false when nothing matched.
func (r *Registry) Classify(name string) (domain.Classification, bool) {
	if name == "" {
		return domain.Classification{}, false
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, e := range r.entries {
		if e.Name == lower {
			return domain.Classification{Type: e.Type, Tier: e.Tier}, true
		}
	}
	for _, e := range r.entries {
		for _, a := range e.Aliases {
			al := strings.ToLower(a)
			if al == lower || strings.Contains(al, lower) {
				return domain.Classification{Type: e.Type, Tier: e.Tier}, true
			}
		}
	}
	return domain.Classification{}, false
}

// Override applies the authoritative-registry rule: when Classify knows the
// company its result wins unconditionally; otherwise the provider's
// classification passes through unchanged.
func (r *Registry) Override(name string, provider domain.Classification) domain.Classification {
	if c, ok := r.Classify(name); ok {
		return c
	}
	return provider
}

// Heuristic fallback patterns for unknown companies, tried in order.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bAbout\s+([A-Z][a-zA-Z0-9&\-. ]+)`),
	regexp.MustCompile(`\b([A-Z][a-zA-Z0-9&\-. ]+)\s+is\s+seeking\b`),
	regexp.MustCompile(`\bjoin\s+([A-Z][a-zA-Z0-9&\-. ]+)`),
	regexp.MustCompile(`\b([A-Z][a-zA-Z0-9&\-. ]+)\s+is\s+hiring\b`),
}

// ExtractCompanyName pulls a company name out of job description text.
// Phase 1 scans registry aliases with word-boundary matches in declared
// order and returns the first matching canonical name, title-cased.
// Phase 2 falls back to ordered heuristic patterns for unknown companies.
func (r *Registry) ExtractCompanyName(text string) (string, bool) {
	lower := strings.ToLower(text)
	for i, e := range r.entries {
		for _, pat := range r.aliasPatterns[i] {
			if pat.MatchString(lower) {
				return titleCase(e.Name), true
			}
		}
	}
	for _, pat := range namePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
