// Package extract implements the local, deterministic signal extractors:
// risk keywords, advertised compensation, and experience requirements.
// None of these touch the network and none of them can fail.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// riskKeywordGroups are the fixed keyword groups scanned for risk signals.
// Matching is case-insensitive substring, not word-boundary.
var riskKeywordGroups = map[string][]string{
	"bond":         {"bond", "service agreement", "liquidated damages"},
	"payment_risk": {"cheque", "bank guarantee", "training cost"},
	"workload":     {"rotational shifts", "night shift", "6 days"},
}

// Keywords consumed by the decision engine's bond/payment rules.
var (
	BondKeywords    = riskKeywordGroups["bond"]
	PaymentKeywords = riskKeywordGroups["payment_risk"]
)

// RiskSignals returns the deduplicated, sorted set of risk keywords found in
// text. An empty result is expected for clean postings.
func RiskSignals(text string) []string {
	lower := strings.ToLower(text)
	seen := map[string]struct{}{}
	for _, group := range riskKeywordGroups {
		for _, kw := range group {
			if strings.Contains(lower, kw) {
				seen[kw] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

var ctcPattern = regexp.MustCompile(`\d+(\.\d+)?\s*(lpa|lakhs?|ctc)`)

// Compensation returns the advertised compensation substring verbatim, or
// false. Many postings (FAANG especially) omit it; absence is not an error.
func Compensation(text string) (string, bool) {
	m := ctcPattern.FindString(strings.ToLower(text))
	if m == "" {
		return "", false
	}
	return m, true
}

// ExperienceRequirement maps the free text onto a fixed experience band.
// It never returns empty: unrecognized text maps to "Not explicitly specified".
func ExperienceRequirement(text string) string {
	lower := strings.ToLower(text)
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("fresher", "0-1", "0 - 1"):
		return "0-1 Years (Fresher-friendly)"
	case contains("1-2", "1 - 2", "0-2"):
		return "1-2 Years (Early career)"
	case contains("2-4", "2 - 4", "3-5"):
		return "2-5 Years (Mid-level)"
	case contains("5-8", "5-7", "6-8"):
		return "5-8 Years (Senior)"
	case contains("8-10", "10+", "8+"):
		return "8+ Years (Lead/Principal)"
	default:
		return "Not explicitly specified"
	}
}
