// Package domain defines the core entities, closed enumerations, ports and
// error taxonomy of the job-description analyzer.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderFailed      = errors.New("provider request failed")
	ErrProviderMalformed   = errors.New("provider returned malformed output")
	ErrInternal            = errors.New("internal error")
)

// CompanyType classifies how a company makes money. Invalid values are
// unrepresentable downstream because every producer goes through Valid.
type CompanyType string

const (
	CompanyProduct CompanyType = "Product"
	CompanyService CompanyType = "Service"
	CompanyStartup CompanyType = "Startup"
	CompanyCaptive CompanyType = "Captive"
	CompanyUnknown CompanyType = "Unknown"
)

// Valid reports whether t is one of the closed set of company types.
func (t CompanyType) Valid() bool {
	switch t {
	case CompanyProduct, CompanyService, CompanyStartup, CompanyCaptive, CompanyUnknown:
		return true
	}
	return false
}

// Normalize maps any out-of-set value to CompanyUnknown.
func (t CompanyType) Normalize() CompanyType {
	if t.Valid() {
		return t
	}
	return CompanyUnknown
}

// CompanyTier is a coarse prestige/compensation band.
type CompanyTier string

const (
	TierFAANGM  CompanyTier = "FAANGM"
	Tier1       CompanyTier = "Tier-1"
	Tier2       CompanyTier = "Tier-2"
	Tier3       CompanyTier = "Tier-3"
	TierUnknown CompanyTier = "Unknown"
)

// Valid reports whether t is one of the closed set of tiers.
func (t CompanyTier) Valid() bool {
	switch t {
	case TierFAANGM, Tier1, Tier2, Tier3, TierUnknown:
		return true
	}
	return false
}

// Normalize maps any out-of-set value to TierUnknown.
func (t CompanyTier) Normalize() CompanyTier {
	if t.Valid() {
		return t
	}
	return TierUnknown
}

// Recommendation is the final verdict for a job description.
type Recommendation string

const (
	RecommendApply   Recommendation = "Apply"
	RecommendCaution Recommendation = "Apply with Caution"
	RecommendSkip    Recommendation = "Skip"
)

// RiskLevel grades how risky a posting is for an early-career candidate.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// FresherAlignment states whether a role fits a fresher (0-1 years).
type FresherAlignment string

const (
	AlignmentGood          FresherAlignment = "Good"
	AlignmentPoor          FresherAlignment = "Poor"
	AlignmentNotApplicable FresherAlignment = "Not Applicable"
)

// Classification pairs a company type with its tier.
type Classification struct {
	Type CompanyType `json:"type"`
	Tier CompanyTier `json:"tier"`
}

// UnknownClassification is the neutral classification used when neither the
// registry nor the provider can identify the company.
func UnknownClassification() Classification {
	return Classification{Type: CompanyUnknown, Tier: TierUnknown}
}

// Decision is the deterministic verdict produced by the decision engine.
// It is created once per analysis and never mutated afterward.
type Decision struct {
	Recommendation    Recommendation `json:"recommendation"`
	RiskLevel         RiskLevel      `json:"risk_level"`
	Reasoning         string         `json:"reasoning"`
	AlternativeAction string         `json:"what_to_do_instead"`
}

// ConfidenceBreakdown holds the four component scores, each in [0,1].
// Overall is the 25/30/25/20 weighted sum, rounded to 2 decimals.
type ConfidenceBreakdown struct {
	CompanyRecognition float64 `json:"company_recognition"`
	RiskSignals        float64 `json:"risk_signals"`
	RoleClarity        float64 `json:"role_clarity"`
	CompanyTier        float64 `json:"company_tier"`
}

// Provenance markers recorded on provider results.
const (
	SourceGemini     = "gemini"
	SourceGroq       = "groq"
	SourceMock       = "mock"
	SourceNoAPIKey   = "no_api_key"
	SourceParseError = "parse_error"
)

// CandidateInsights is the provider's best-effort insider view of a role.
type CandidateInsights struct {
	WhatTheyDiscover      string `json:"what_they_discover"`
	GrowthPotential       string `json:"growth_potential"`
	WorkLifeBalance       string `json:"work_life_balance"`
	LearningOpportunities string `json:"learning_opportunities"`
}

// RiskAssessment is the provider's best-effort risk read. It is advisory
// only; the decision engine never consumes it.
type RiskAssessment struct {
	RiskLevel string   `json:"risk_level"`
	Concerns  []string `json:"concerns"`
	Positives []string `json:"positives"`
}

// Explanations carries the provider's free-form explanatory text. Every
// field has a template fallback, so empties are fine.
type Explanations struct {
	CompanyContext        string   `json:"company_context"`
	RequiredExperience    string   `json:"required_experience"`
	RoleReality           string   `json:"role_reality"`
	ExperienceExplanation string   `json:"experience_explanation"`
	SkillsYouWillBuild    []string `json:"skills_you_will_build"`
	SkillsYouMayMiss      []string `json:"skills_you_may_miss"`
	LongTermImpact        string   `json:"long_term_impact"`
	KeyConcerns           []string `json:"key_concerns"`
	GoodFor               string   `json:"good_for"`
	AvoidIf               string   `json:"avoid_if"`
	Reasoning             string   `json:"reasoning"`
	WhatToDoInstead       string   `json:"what_to_do_instead"`
}

// ProviderResult is the canonical, shape-normalized output of one provider
// call. Adapters must return a fully-populated value even on failure, with
// Source set to the provenance marker of the failure.
type ProviderResult struct {
	CompanyName    string
	Classification Classification
	// ClarityScore is the provider's role clarity in [0,1]. ClarityKnown is
	// false when the provider omitted it; the analyzer then defaults to 0.5.
	ClarityScore  float64
	ClarityKnown  bool
	RedFlags      []string
	ResumeBullets []string
	Insights      CandidateInsights
	Risk          RiskAssessment
	Explanations  Explanations
	Source        string
	Model         string
}

// FallbackProviderResult is the degraded object used when the provider is
// unavailable, errored, or returned unparseable output.
func FallbackProviderResult(source string) ProviderResult {
	return ProviderResult{
		Classification: UnknownClassification(),
		ClarityScore:   0.5,
		ClarityKnown:   false,
		ResumeBullets: []string{
			"Developed software solutions following industry best practices",
			"Collaborated with teams to deliver quality products",
			"Applied problem-solving skills to technical challenges",
		},
		Insights: CandidateInsights{
			WhatTheyDiscover:      "Unable to analyze. Research the company independently.",
			GrowthPotential:       "Unknown",
			WorkLifeBalance:       "Unknown",
			LearningOpportunities: "Unknown",
		},
		Risk: RiskAssessment{
			RiskLevel: "Unknown",
			Concerns:  []string{"Analysis unavailable"},
		},
		Source: source,
	}
}

// Failed reports whether the result came from a degraded fallback rather
// than a live provider response.
func (r ProviderResult) Failed() bool {
	switch r.Source {
	case SourceGemini, SourceGroq, SourceMock:
		return false
	}
	return true
}

// FinalAnalysis is the complete, immutable analysis of one job description.
// Invariant: DecisionGuidance.Recommendation and RiskAndTradeoffs.RiskLevel
// always equal the decision engine's output for the same inputs.
type FinalAnalysis struct {
	Understanding      Understanding      `json:"understanding"`
	ExperienceFit      ExperienceFit      `json:"experience_fit"`
	CareerImplications CareerImplications `json:"career_implications"`
	RiskAndTradeoffs   RiskAndTradeoffs   `json:"risk_and_tradeoffs"`
	DecisionGuidance   DecisionGuidance   `json:"decision_guidance"`
	ResumeGuidance     ResumeGuidance     `json:"resume_guidance"`
	Confidence         Confidence         `json:"confidence"`
	FinalVerdict       string             `json:"final_verdict"`
	AdvertisedCTC      string             `json:"advertised_ctc,omitempty"`
	AnalysisSource     string             `json:"analysis_source"`
}

// Understanding describes the company and what the role really is.
type Understanding struct {
	Company     CompanySummary `json:"company"`
	RoleReality string         `json:"role_reality"`
}

// CompanySummary is the resolved company identity within an analysis.
type CompanySummary struct {
	Name    string      `json:"name"`
	Type    CompanyType `json:"type"`
	Tier    CompanyTier `json:"tier"`
	Context string      `json:"context"`
}

// ExperienceFit relates the role's experience ask to a fresher profile.
type ExperienceFit struct {
	RequiredExperience string           `json:"required_experience"`
	FresherAlignment   FresherAlignment `json:"fresher_alignment"`
	Explanation        string           `json:"explanation"`
}

// CareerImplications lists what the role builds and what it forgoes.
type CareerImplications struct {
	SkillsYouWillBuild []string `json:"skills_you_will_build"`
	SkillsYouMayMiss   []string `json:"skills_you_may_miss"`
	LongTermImpact     string   `json:"long_term_impact"`
}

// RiskAndTradeoffs summarizes risk for the candidate.
type RiskAndTradeoffs struct {
	RiskLevel   RiskLevel `json:"risk_level"`
	KeyConcerns []string  `json:"key_concerns"`
	GoodFor     string    `json:"good_for"`
	AvoidIf     string    `json:"avoid_if"`
}

// DecisionGuidance carries the engine's verdict plus explanatory text.
type DecisionGuidance struct {
	Recommendation  Recommendation `json:"recommendation"`
	Reasoning       string         `json:"reasoning"`
	WhatToDoInstead string         `json:"what_to_do_instead"`
}

// ResumeGuidance holds exactly three ATS-optimized resume bullets.
type ResumeGuidance struct {
	ATSOptimizedBullets []string `json:"ats_optimized_bullets"`
}

// Confidence wraps the overall score and its component breakdown.
type Confidence struct {
	OverallConfidence float64             `json:"overall_confidence"`
	Breakdown         ConfidenceBreakdown `json:"breakdown"`
}

// AnalysisRecord is a persisted analysis plus its input text.
type AnalysisRecord struct {
	ID               string
	JDText           string
	CompanyName      string
	CompanyType      CompanyType
	Recommendation   Recommendation
	RiskLevel        RiskLevel
	FresherAlignment FresherAlignment
	ConfidenceScore  float64
	Result           FinalAnalysis
	IsSaved          bool
	CreatedAt        time.Time
}

// CompanyRecord is a persisted company classification entry.
type CompanyRecord struct {
	ID        string
	Name      string
	Aliases   []string
	Type      CompanyType
	Tier      CompanyTier
	CreatedAt time.Time
}

// ListFilter narrows and pages AnalysisRepository.List.
type ListFilter struct {
	Offset         int
	Limit          int
	Recommendation Recommendation
}

// Ports

// ProviderClient is the external text-generation boundary. Implementations
// must degrade gracefully: any failure yields a FallbackProviderResult and
// a nil error; a non-nil error is reserved for programming mistakes.
type ProviderClient interface {
	AnalyzeJD(ctx Context, jdText, companyHint string) (ProviderResult, error)
}

// ClassificationCache is the read-through company-name cache port.
// Implementations must be safe for concurrent use.
type ClassificationCache interface {
	Get(ctx Context, name string) (Classification, bool, error)
	Put(ctx Context, name string, c Classification) error
}

// AnalysisRepository persists analyses.
type AnalysisRepository interface {
	Create(ctx Context, rec AnalysisRecord) (string, error)
	Get(ctx Context, id string) (AnalysisRecord, error)
	List(ctx Context, f ListFilter) ([]AnalysisRecord, error)
	MarkSaved(ctx Context, id string) error
	Delete(ctx Context, id string) error
}

// CompanyRepository persists company classification entries.
type CompanyRepository interface {
	Upsert(ctx Context, c CompanyRecord) (string, error)
	List(ctx Context) ([]CompanyRecord, error)
}

// Context aliases context.Context so adapters and usecases share one name.
type Context = context.Context
