package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/pkg/textx"
)

// Confidence component weights: company recognition 25%, risk signals 30%,
// role clarity 25%, company tier 20%.
const (
	weightCompanyRecognition = 0.25
	weightRiskSignals        = 0.30
	weightRoleClarity        = 0.25
	weightCompanyTier        = 0.20
)

var tierScores = map[domain.CompanyTier]float64{
	domain.TierFAANGM:  1.0,
	domain.Tier1:       0.85,
	domain.Tier2:       0.65,
	domain.Tier3:       0.5,
	domain.TierUnknown: 0.4,
}

// ConfidenceScore computes the overall confidence and its breakdown.
// Every component and the overall value stay in [0,1]: the risk penalty
// floors at 0.2 no matter how many signals are present, and clarity is
// clamped before weighting.
func ConfidenceScore(companyName string, tier domain.CompanyTier, riskCount int, roleClarity float64) (float64, domain.ConfidenceBreakdown) {
	recognition := 0.3
	if companyName != "" && !strings.EqualFold(companyName, "unknown") {
		recognition = 1.0
	}
	riskScore := math.Max(0.2, 1.0-float64(riskCount)*0.15)
	clarity := math.Min(1.0, math.Max(0.0, roleClarity))
	tierScore, ok := tierScores[tier]
	if !ok {
		tierScore = tierScores[domain.TierUnknown]
	}

	overall := recognition*weightCompanyRecognition +
		riskScore*weightRiskSignals +
		clarity*weightRoleClarity +
		tierScore*weightCompanyTier

	breakdown := domain.ConfidenceBreakdown{
		CompanyRecognition: round2(recognition),
		RiskSignals:        round2(riskScore),
		RoleClarity:        round2(clarity),
		CompanyTier:        round2(tierScore),
	}
	return round2(overall), breakdown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Verdict framing bands.
const (
	verdictPositiveThreshold = 0.8
	verdictCautionThreshold  = 0.6
	verdictExcerptLimit      = 100
)

// FinalVerdict renders the human-readable verdict sentence from the fixed
// confidence bands, listing up to 2 (cautionary) or 3 (warning) risk
// signals and appending a truncated insider excerpt when available.
func FinalVerdict(confidence float64, companyName string, tier domain.CompanyTier, risks []string, whatTheyDiscover string) string {
	display := companyName
	if display == "" {
		display = "this company"
	}

	var b strings.Builder
	switch {
	case confidence >= verdictPositiveThreshold:
		fmt.Fprintf(&b, "Strong opportunity at %s. ", display)
		if tier == domain.TierFAANGM || tier == domain.Tier1 {
			fmt.Fprintf(&b, "This %s company offers solid career growth. ", tier)
		}
		b.WriteString("The role is well-defined with clear expectations. Worth applying with a tailored resume.")
	case confidence >= verdictCautionThreshold:
		fmt.Fprintf(&b, "Proceed with caution for %s. ", display)
		if len(risks) > 0 {
			fmt.Fprintf(&b, "Noted concerns: %s. ", strings.Join(headOf(risks, 2), ", "))
		}
		b.WriteString("Research the team culture during interviews. Ask specific questions about growth paths and expectations.")
	default:
		fmt.Fprintf(&b, "Multiple concerns detected for %s. ", display)
		if len(risks) > 0 {
			fmt.Fprintf(&b, "Red flags: %s. ", strings.Join(headOf(risks, 3), ", "))
		}
		b.WriteString("Consider carefully before applying. The role may have unclear expectations or limited growth potential.")
	}

	if whatTheyDiscover != "" {
		fmt.Fprintf(&b, "\n\nInsider perspective: %s", textx.Truncate(whatTheyDiscover, verdictExcerptLimit))
	}
	return b.String()
}

func headOf(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}
