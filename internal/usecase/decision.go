package usecase

import (
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/extract"
)

// The decision engine is a pure function over (company type, risk signal
// set, required experience). It is the only place a recommendation or risk
// level may be produced; provider output never reaches it. Rules form a
// literal ordered list evaluated top to bottom, first match wins.

type decisionRule struct {
	name    string
	matches func(in decisionInput) bool
	result  domain.Decision
}

type decisionInput struct {
	companyType domain.CompanyType
	risks       []string // lower-cased
	experience  string   // lower-cased
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func anyRiskContains(risks []string, keywords []string) bool {
	joined := strings.Join(risks, " ")
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

var decisionRules = []decisionRule{
	{
		name: "senior_service",
		matches: func(in decisionInput) bool {
			return containsAny(in.experience, "8+", "8-10", "lead", "principal") &&
				in.companyType == domain.CompanyService
		},
		result: domain.Decision{
			Recommendation: domain.RecommendSkip,
			RiskLevel:      domain.RiskHigh,
			Reasoning: "This role targets senior professionals in service-based delivery. " +
				"As a fresher or early-career engineer, you would be competing against " +
				"candidates with 8+ years of experience. Look for roles explicitly " +
				"designed for your experience level.",
			AlternativeAction: "Focus on fresher programs at product companies, or entry-level roles " +
				"at startups where you can grow with the company.",
		},
	},
	{
		name: "bond_or_payment",
		matches: func(in decisionInput) bool {
			return anyRiskContains(in.risks, extract.BondKeywords) ||
				anyRiskContains(in.risks, extract.PaymentKeywords)
		},
		result: domain.Decision{
			Recommendation: domain.RecommendSkip,
			RiskLevel:      domain.RiskHigh,
			Reasoning: "This role has concerning terms around bonds or upfront payments. " +
				"Legitimate companies do not ask for financial commitments from candidates. " +
				"Even if the company is genuine, bonds limit your career mobility significantly.",
			AlternativeAction: "Look for companies that invest in retention through good work culture " +
				"and growth opportunities, not legal bindings.",
		},
	},
	{
		name: "senior_any_company",
		matches: func(in decisionInput) bool {
			return containsAny(in.experience, "5-8", "5+", "senior")
		},
		result: domain.Decision{
			Recommendation: domain.RecommendSkip,
			RiskLevel:      domain.RiskHigh,
			Reasoning: "This role requires 5+ years of experience. Applying as a fresher " +
				"is unlikely to succeed and may waste your time and energy. Focus on " +
				"roles that match your current experience level.",
			AlternativeAction: "Apply to entry-level or associate positions. Build experience for " +
				"2-3 years before targeting senior roles.",
		},
	},
	{
		name: "service_with_risks",
		matches: func(in decisionInput) bool {
			return in.companyType == domain.CompanyService && len(in.risks) > 0
		},
		result: domain.Decision{
			Recommendation: domain.RecommendCaution,
			RiskLevel:      domain.RiskMedium,
			Reasoning: "Service-based roles often involve project-based work where your " +
				"actual responsibilities depend on client allocation. The detected " +
				"concerns suggest you should clarify the specific role and growth path " +
				"before accepting an offer.",
			AlternativeAction: "During interviews, ask about: the specific project you'll join, " +
				"the technology stack, and the typical career progression timeline.",
		},
	},
	{
		name: "startup_unclear",
		matches: func(in decisionInput) bool {
			return in.companyType == domain.CompanyStartup &&
				(len(in.risks) > 0 || containsAny(in.experience, "unclear", "not specified"))
		},
		result: domain.Decision{
			Recommendation: domain.RecommendCaution,
			RiskLevel:      domain.RiskMedium,
			Reasoning: "Startups can offer great learning but also carry risks like unclear roles, " +
				"high workload, or instability. The job description lacks clarity on some " +
				"important aspects.",
			AlternativeAction: "Research the startup's funding status, ask about runway, and clarify " +
				"your specific responsibilities before joining.",
		},
	},
	{
		// Only reachable with an empty risk set; service_with_risks already
		// covered the non-empty case.
		name: "service_no_risks",
		matches: func(in decisionInput) bool {
			return in.companyType == domain.CompanyService
		},
		result: domain.Decision{
			Recommendation: domain.RecommendCaution,
			RiskLevel:      domain.RiskMedium,
			Reasoning: "Service companies can provide good starting experience but may limit " +
				"deep technical growth. Your work will depend on client projects, which " +
				"you have limited control over.",
			AlternativeAction: "If you join, try to get into product-oriented teams or internal R&D " +
				"groups within the company for better learning opportunities.",
		},
	},
	{
		name: "product",
		matches: func(in decisionInput) bool {
			return in.companyType == domain.CompanyProduct
		},
		result: domain.Decision{
			Recommendation: domain.RecommendApply,
			RiskLevel:      domain.RiskLow,
			Reasoning: "Product companies generally offer better ownership and technical depth. " +
				"This role appears to be a good fit for building strong engineering foundations.",
			AlternativeAction: "Prepare a strong resume highlighting projects and problem-solving skills. " +
				"Practice system design basics and coding fundamentals for interviews.",
		},
	},
	{
		name: "captive",
		matches: func(in decisionInput) bool {
			return in.companyType == domain.CompanyCaptive
		},
		result: domain.Decision{
			Recommendation: domain.RecommendApply,
			RiskLevel:      domain.RiskLow,
			Reasoning: "Captive centers of established companies often offer stability, structured " +
				"work, and exposure to global practices. Good choice for work-life balance " +
				"and steady growth.",
			AlternativeAction: "Prepare by understanding the parent company's domain. Highlight any " +
				"relevant coursework or projects in that area.",
		},
	},
	{
		name:    "default_apply",
		matches: func(decisionInput) bool { return true },
		result: domain.Decision{
			Recommendation: domain.RecommendApply,
			RiskLevel:      domain.RiskLow,
			Reasoning: "Based on the available information, this role appears suitable for " +
				"early-career engineers. No major concerns detected.",
			AlternativeAction: "Prepare a strong resume and practice fundamentals. Research the company " +
				"culture before interviews.",
		},
	},
}

// Decide evaluates the ordered rule list and returns the matched verdict.
// Identical inputs always yield identical output; no I/O, no clock, no
// randomness.
func Decide(companyType domain.CompanyType, risks []string, requiredExperience string) domain.Decision {
	in := decisionInput{
		companyType: companyType,
		risks:       lowerAll(risks),
		experience:  strings.ToLower(requiredExperience),
	}
	for _, rule := range decisionRules {
		if rule.matches(in) {
			return rule.result
		}
	}
	// Unreachable: the last rule matches everything.
	return decisionRules[len(decisionRules)-1].result
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

// FresherAlignmentFor maps a required-experience band and company type to a
// fresher alignment. Independent of the recommendation: a Skip decision can
// still carry Good alignment.
func FresherAlignmentFor(requiredExperience string, companyType domain.CompanyType) domain.FresherAlignment {
	switch {
	case containsAny(requiredExperience, "Fresher", "0-1", "1-2"):
		return domain.AlignmentGood
	case containsAny(requiredExperience, "2-5"):
		return domain.AlignmentPoor
	case containsAny(requiredExperience, "5-8", "8+", "Senior"):
		return domain.AlignmentPoor
	case companyType == domain.CompanyService:
		// Service companies hire freshers via mass recruitment even when the
		// posting leaves experience unspecified.
		return domain.AlignmentGood
	default:
		return domain.AlignmentNotApplicable
	}
}
