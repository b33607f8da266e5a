package usecase

import "github.com/srikarboddupally/analyzejd/internal/domain"

// compose builds the full analysis from the quick-pass result. Provider text
// is preferred for every explanatory field, with template fallbacks, but the
// recommendation, risk level and confidence always come from the engine.
func compose(jdText string, q quickResult) domain.FinalAnalysis {
	p := q.Provider
	t := q.Classification.Type

	context := firstNonEmpty(p.Explanations.CompanyContext, CompanyContext(t))
	roleReality := firstNonEmpty(p.Explanations.RoleReality, RoleReality(jdText, t, q.Risks))

	alignment := FresherAlignmentFor(q.RequiredExperience, t)
	expExplanation := firstNonEmpty(p.Explanations.ExperienceExplanation, FresherExplanation(alignment))

	career := CareerImplicationsFor(t)
	if len(p.Explanations.SkillsYouWillBuild) > 0 {
		career.SkillsYouWillBuild = p.Explanations.SkillsYouWillBuild
	}
	if len(p.Explanations.SkillsYouMayMiss) > 0 {
		career.SkillsYouMayMiss = p.Explanations.SkillsYouMayMiss
	}
	career.LongTermImpact = firstNonEmpty(p.Explanations.LongTermImpact, career.LongTermImpact)

	return domain.FinalAnalysis{
		Understanding: domain.Understanding{
			Company: domain.CompanySummary{
				Name:    q.CompanyName,
				Type:    t,
				Tier:    q.Classification.Tier,
				Context: context,
			},
			RoleReality: roleReality,
		},
		ExperienceFit: domain.ExperienceFit{
			RequiredExperience: q.RequiredExperience,
			FresherAlignment:   alignment,
			Explanation:        expExplanation,
		},
		CareerImplications: career,
		RiskAndTradeoffs: domain.RiskAndTradeoffs{
			RiskLevel:   q.Decision.RiskLevel,
			KeyConcerns: keyConcerns(p.Explanations.KeyConcerns, q.Risks),
			GoodFor:     firstNonEmpty(p.Explanations.GoodFor, GoodFor(t)),
			AvoidIf:     firstNonEmpty(p.Explanations.AvoidIf, AvoidIf(t)),
		},
		DecisionGuidance: domain.DecisionGuidance{
			Recommendation:  q.Decision.Recommendation,
			Reasoning:       firstNonEmpty(p.Explanations.Reasoning, q.Decision.Reasoning),
			WhatToDoInstead: firstNonEmpty(p.Explanations.WhatToDoInstead, q.Decision.AlternativeAction),
		},
		ResumeGuidance: domain.ResumeGuidance{
			ATSOptimizedBullets: ResumeBullets(jdText, p.ResumeBullets),
		},
		Confidence: domain.Confidence{
			OverallConfidence: q.Confidence,
			Breakdown:         q.Breakdown,
		},
		FinalVerdict:   FinalVerdict(q.Confidence, q.CompanyName, q.Classification.Tier, q.Risks, p.Insights.WhatTheyDiscover),
		AdvertisedCTC:  q.CTC,
		AnalysisSource: p.Source,
	}
}

// keyConcerns unions provider concerns with the detected risk set, with a
// reassuring default when both are empty.
func keyConcerns(providerConcerns, risks []string) []string {
	merged := mergeRisks(providerConcerns, risks)
	if len(merged) == 0 {
		return []string{"No major concerns detected"}
	}
	return merged
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
