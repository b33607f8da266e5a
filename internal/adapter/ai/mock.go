package ai

import (
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// Mock is a deterministic ProviderClient for development and tests. It
// produces stable, plausible insights without network access.
type Mock struct{}

// NewMock returns a mock provider client.
func NewMock() *Mock { return &Mock{} }

// AnalyzeJD returns a canned result tagged with the mock provenance marker.
func (Mock) AnalyzeJD(_ domain.Context, jdText, companyHint string) (domain.ProviderResult, error) {
	clarity := 0.7
	if len(jdText) < 200 {
		clarity = 0.4
	}
	res := domain.ProviderResult{
		CompanyName:    companyHint,
		Classification: domain.UnknownClassification(),
		ClarityScore:   clarity,
		ClarityKnown:   true,
		ResumeBullets: []string{
			"Collaborated with engineering teams to maintain high system availability",
			"Implemented fallback mechanisms ensuring service continuity",
			"Optimized legacy code performance through refactoring",
		},
		Insights: domain.CandidateInsights{
			WhatTheyDiscover:      "Actual responsibilities often differ from the advertised title.",
			GrowthPotential:       "Medium",
			WorkLifeBalance:       "Moderate",
			LearningOpportunities: "Depends heavily on team allocation.",
		},
		Risk: domain.RiskAssessment{
			RiskLevel: "Low",
			Positives: []string{"Stable mock analysis"},
		},
		Source: domain.SourceMock,
		Model:  "mock",
	}
	if strings.Contains(strings.ToLower(jdText), "startup") {
		res.Classification.Type = domain.CompanyStartup
	}
	return res, nil
}
