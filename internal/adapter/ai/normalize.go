package ai

import (
	"encoding/json"
	"fmt"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// Models return one of two shapes: the requested flat payload with an
// "explanations" object, or the full nested output structure. Both are
// accepted; flat fields win when both carry a value.

type payload struct {
	CompanyClassification struct {
		CompanyType string `json:"company_type"`
		Tier        string `json:"tier"`
	} `json:"company_classification"`
	RoleAnalysis struct {
		ClarityScore *float64 `json:"clarity_score"`
		RedFlags     []string `json:"red_flags"`
	} `json:"role_analysis"`
	Explanations struct {
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
	} `json:"explanations"`
	ATSBullets []string `json:"ats_optimized_bullets"`
	Insights   struct {
		WhatTheyDiscover      string `json:"what_they_discover"`
		GrowthPotential       string `json:"growth_potential"`
		WorkLifeBalance       string `json:"work_life_balance"`
		LearningOpportunities string `json:"learning_opportunities"`
	} `json:"candidate_insights"`
	RiskAssessment struct {
		RiskLevel string   `json:"risk_level"`
		Concerns  []string `json:"concerns"`
		Positives []string `json:"positives"`
	} `json:"risk_assessment"`

	// Nested full-structure variant.
	Understanding struct {
		Company struct {
			Name    string `json:"name"`
			Type    string `json:"type"`
			Tier    string `json:"tier"`
			Context string `json:"context"`
		} `json:"company"`
		RoleReality string `json:"role_reality"`
	} `json:"understanding"`
	ExperienceFit struct {
		RequiredExperience string `json:"required_experience"`
		Explanation        string `json:"explanation"`
	} `json:"experience_fit"`
	CareerImplications struct {
		SkillsYouWillBuild []string `json:"skills_you_will_build"`
		SkillsYouMayMiss   []string `json:"skills_you_may_miss"`
		LongTermImpact     string   `json:"long_term_impact"`
	} `json:"career_implications"`
	RiskAndTradeoffs struct {
		KeyConcerns []string `json:"key_concerns"`
		GoodFor     string   `json:"good_for"`
		AvoidIf     string   `json:"avoid_if"`
	} `json:"risk_and_tradeoffs"`
	DecisionGuidance struct {
		Reasoning       string `json:"reasoning"`
		WhatToDoInstead string `json:"what_to_do_instead"`
	} `json:"decision_guidance"`
	ResumeGuidance struct {
		ATSOptimizedBullets []string `json:"ats_optimized_bullets"`
	} `json:"resume_guidance"`
}

// ParseResult cleans and decodes raw model output into a canonical
// ProviderResult attributed to source and model.
func ParseResult(raw, source, model string) (domain.ProviderResult, error) {
	cleaned, err := CleanJSONResponse(raw)
	if err != nil {
		return domain.ProviderResult{}, err
	}
	var p payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return domain.ProviderResult{}, fmt.Errorf("op=ai.parse: %v: %w", err, domain.ErrProviderMalformed)
	}
	return normalize(p, source, model), nil
}

func normalize(p payload, source, model string) domain.ProviderResult {
	out := domain.ProviderResult{
		CompanyName: p.Understanding.Company.Name,
		Classification: domain.Classification{
			Type: domain.CompanyType(pick(p.CompanyClassification.CompanyType, p.Understanding.Company.Type)).Normalize(),
			Tier: domain.CompanyTier(pick(p.CompanyClassification.Tier, p.Understanding.Company.Tier)).Normalize(),
		},
		RedFlags:      p.RoleAnalysis.RedFlags,
		ResumeBullets: pickList(p.ATSBullets, p.ResumeGuidance.ATSOptimizedBullets),
		Insights: domain.CandidateInsights{
			WhatTheyDiscover:      p.Insights.WhatTheyDiscover,
			GrowthPotential:       pick(p.Insights.GrowthPotential, "Unknown"),
			WorkLifeBalance:       pick(p.Insights.WorkLifeBalance, "Unknown"),
			LearningOpportunities: p.Insights.LearningOpportunities,
		},
		Risk: domain.RiskAssessment{
			RiskLevel: pick(p.RiskAssessment.RiskLevel, "Unknown"),
			Concerns:  p.RiskAssessment.Concerns,
			Positives: p.RiskAssessment.Positives,
		},
		Explanations: domain.Explanations{
			CompanyContext:        p.Understanding.Company.Context,
			RequiredExperience:    p.ExperienceFit.RequiredExperience,
			RoleReality:           pick(p.Explanations.RoleReality, p.Understanding.RoleReality),
			ExperienceExplanation: pick(p.Explanations.ExperienceExplanation, p.ExperienceFit.Explanation),
			SkillsYouWillBuild:    pickList(p.Explanations.SkillsYouWillBuild, p.CareerImplications.SkillsYouWillBuild),
			SkillsYouMayMiss:      pickList(p.Explanations.SkillsYouMayMiss, p.CareerImplications.SkillsYouMayMiss),
			LongTermImpact:        pick(p.Explanations.LongTermImpact, p.CareerImplications.LongTermImpact),
			KeyConcerns:           pickList(p.Explanations.KeyConcerns, p.RiskAndTradeoffs.KeyConcerns),
			GoodFor:               pick(p.Explanations.GoodFor, p.RiskAndTradeoffs.GoodFor),
			AvoidIf:               pick(p.Explanations.AvoidIf, p.RiskAndTradeoffs.AvoidIf),
			Reasoning:             pick(p.Explanations.Reasoning, p.DecisionGuidance.Reasoning),
			WhatToDoInstead:       pick(p.Explanations.WhatToDoInstead, p.DecisionGuidance.WhatToDoInstead),
		},
		Source: source,
		Model:  model,
	}
	if p.RoleAnalysis.ClarityScore != nil {
		out.ClarityScore = *p.RoleAnalysis.ClarityScore
		out.ClarityKnown = true
	} else {
		out.ClarityScore = 0.5
	}
	return out
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func pickList(vals ...[]string) []string {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
