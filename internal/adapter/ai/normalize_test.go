package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

const flatResponse = `{
  "company_classification": {"company_type": "Service", "tier": "Tier-1", "industry": "IT Services"},
  "role_analysis": {"clarity_score": 0.8, "red_flags": ["bond clause"]},
  "understanding": {"company": {"name": "Wipro", "context": "Large IT services firm"}, "role_reality": ""},
  "explanations": {
    "role_reality": "Client delivery work on assigned projects.",
    "experience_explanation": "Fresher mass hiring funnel.",
    "skills_you_will_build": ["Adaptability"],
    "skills_you_may_miss": ["Product depth"],
    "long_term_impact": "Broad but shallow exposure.",
    "key_concerns": ["Bond clause"],
    "good_for": "Freshers wanting stability.",
    "avoid_if": "You want product work.",
    "reasoning": "Service delivery role.",
    "what_to_do_instead": "Consider product startups."
  },
  "ats_optimized_bullets": ["b1", "b2", "b3"],
  "candidate_insights": {"what_they_discover": "Bench time is common.", "growth_potential": "Medium", "work_life_balance": "Moderate", "learning_opportunities": "Project dependent."},
  "risk_assessment": {"risk_level": "Medium", "concerns": ["bond"], "positives": ["stable"]}
}`

func TestParseResultFlatShape(t *testing.T) {
	t.Parallel()

	res, err := ParseResult(flatResponse, domain.SourceGemini, "gemini-2.0-flash")
	require.NoError(t, err)

	assert.Equal(t, "Wipro", res.CompanyName)
	assert.Equal(t, domain.CompanyService, res.Classification.Type)
	assert.Equal(t, domain.Tier1, res.Classification.Tier)
	assert.True(t, res.ClarityKnown)
	assert.InDelta(t, 0.8, res.ClarityScore, 0.001)
	assert.Equal(t, []string{"bond clause"}, res.RedFlags)
	assert.Equal(t, []string{"b1", "b2", "b3"}, res.ResumeBullets)
	assert.Equal(t, "Client delivery work on assigned projects.", res.Explanations.RoleReality)
	assert.Equal(t, "Large IT services firm", res.Explanations.CompanyContext)
	assert.Equal(t, "Bench time is common.", res.Insights.WhatTheyDiscover)
	assert.Equal(t, domain.SourceGemini, res.Source)
	assert.Equal(t, "gemini-2.0-flash", res.Model)
	assert.False(t, res.Failed())
}

const nestedResponse = `{
  "understanding": {
    "company": {"name": "Acme", "type": "Startup", "tier": "Unknown", "context": "Early stage"},
    "role_reality": "Broad generalist work."
  },
  "experience_fit": {"required_experience": "0-1 years", "explanation": "Fits freshers."},
  "career_implications": {
    "skills_you_will_build": ["Ownership"],
    "skills_you_may_miss": ["Mentorship"],
    "long_term_impact": "Fast learning."
  },
  "risk_and_tradeoffs": {"key_concerns": ["Funding risk"], "good_for": "Self-starters", "avoid_if": "Need structure"},
  "decision_guidance": {"reasoning": "Startup tradeoffs.", "what_to_do_instead": "Compare with captives."},
  "resume_guidance": {"ats_optimized_bullets": ["x", "y", "z"]}
}`

func TestParseResultNestedShape(t *testing.T) {
	t.Parallel()

	res, err := ParseResult(nestedResponse, domain.SourceGroq, "llama3-70b-8192")
	require.NoError(t, err)

	assert.Equal(t, "Acme", res.CompanyName)
	assert.Equal(t, domain.CompanyStartup, res.Classification.Type)
	assert.Equal(t, domain.TierUnknown, res.Classification.Tier)
	assert.False(t, res.ClarityKnown)
	assert.InDelta(t, 0.5, res.ClarityScore, 0.001)
	assert.Equal(t, "Broad generalist work.", res.Explanations.RoleReality)
	assert.Equal(t, "0-1 years", res.Explanations.RequiredExperience)
	assert.Equal(t, []string{"Ownership"}, res.Explanations.SkillsYouWillBuild)
	assert.Equal(t, []string{"Funding risk"}, res.Explanations.KeyConcerns)
	assert.Equal(t, "Startup tradeoffs.", res.Explanations.Reasoning)
	assert.Equal(t, []string{"x", "y", "z"}, res.ResumeBullets)
}

func TestParseResultFlatWinsOverNested(t *testing.T) {
	t.Parallel()

	raw := `{
	  "explanations": {"role_reality": "flat wins"},
	  "understanding": {"role_reality": "nested loses", "company": {"name": "X"}}
	}`
	res, err := ParseResult(raw, domain.SourceGemini, "m")
	require.NoError(t, err)
	assert.Equal(t, "flat wins", res.Explanations.RoleReality)
}

func TestParseResultInvalidTypeNormalized(t *testing.T) {
	t.Parallel()

	raw := `{"company_classification": {"company_type": "MegaCorp", "tier": "S-Tier"}}`
	res, err := ParseResult(raw, domain.SourceGemini, "m")
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyUnknown, res.Classification.Type)
	assert.Equal(t, domain.TierUnknown, res.Classification.Tier)
}

func TestParseResultMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseResult(`{"company_classification": [1,2]}`, domain.SourceGemini, "m")
	require.ErrorIs(t, err, domain.ErrProviderMalformed)
}
