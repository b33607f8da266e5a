package usecase

import (
	"log/slog"
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/extract"
	"github.com/srikarboddupally/analyzejd/pkg/textx"
)

// quickResult is the intermediate product of the quick pass, consumed by the
// deep-pass composer. All classification fields are already normalized.
type quickResult struct {
	CompanyName        string
	Classification     domain.Classification
	Risks              []string
	RequiredExperience string
	CTC                string
	Clarity            float64
	Confidence         float64
	Breakdown          domain.ConfidenceBreakdown
	Decision           domain.Decision
	Provider           domain.ProviderResult
}

// quickPass runs local extraction, the provider call, name resolution, the
// cache-backed registry classification and scoring. It never fails: a broken
// provider degrades to the fallback result and the local signals carry the
// analysis.
func (s *AnalyzeService) quickPass(ctx domain.Context, jdText, companyHint string) quickResult {
	text := textx.SanitizeText(jdText)

	risks := extract.RiskSignals(text)
	requiredExp := extract.ExperienceRequirement(text)
	ctc, _ := extract.Compensation(text)
	localName, localFound := s.registry.ExtractCompanyName(text)

	// A caller-supplied company name beats local extraction.
	if h := strings.TrimSpace(companyHint); h != "" {
		localName, localFound = h, true
	}
	hint := ""
	if localFound {
		hint = localName
	}
	provider, err := s.provider.AnalyzeJD(ctx, text, hint)
	if err != nil {
		// The port contract says adapters swallow provider failures; a non-nil
		// error means a bug, but the analysis must still complete.
		s.log.ErrorContext(ctx, "provider returned unexpected error", slog.Any("error", err))
		provider = domain.FallbackProviderResult("error:" + err.Error())
	}

	name := resolveCompanyName(provider.CompanyName, localName, localFound)
	classification := s.classify(ctx, name, provider.Classification)

	risks = mergeRisks(risks, provider.RedFlags)

	clarity := 0.5
	if provider.ClarityKnown {
		clarity = provider.ClarityScore
	}

	confidence, breakdown := ConfidenceScore(name, classification.Tier, len(risks), clarity)
	decision := Decide(classification.Type, risks, requiredExp)

	return quickResult{
		CompanyName:        name,
		Classification:     classification,
		Risks:              risks,
		RequiredExperience: requiredExp,
		CTC:                ctc,
		Clarity:            clarity,
		Confidence:         confidence,
		Breakdown:          breakdown,
		Decision:           decision,
		Provider:           provider,
	}
}

// classify resolves the company classification: cache, then registry, then
// the provider's claim filtered through the registry override. Cache errors
// are logged and treated as misses.
func (s *AnalyzeService) classify(ctx domain.Context, name string, providerClaim domain.Classification) domain.Classification {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "unknown" {
		return domain.Classification{
			Type: providerClaim.Type.Normalize(),
			Tier: providerClaim.Tier.Normalize(),
		}
	}
	if s.cache != nil {
		if c, ok, err := s.cache.Get(ctx, key); err != nil {
			s.log.WarnContext(ctx, "classification cache get failed", slog.Any("error", err))
		} else if ok {
			return c
		}
	}
	c := s.registry.Override(name, providerClaim)
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, c); err != nil {
			s.log.WarnContext(ctx, "classification cache put failed", slog.Any("error", err))
		}
	}
	return c
}

// resolveCompanyName prefers the provider's name unless it is empty or a
// literal "Unknown"; local extraction is the fallback.
func resolveCompanyName(providerName, localName string, localFound bool) string {
	p := strings.TrimSpace(providerName)
	if p != "" && !strings.EqualFold(p, "unknown") {
		return p
	}
	if localFound {
		return localName
	}
	return "Unknown"
}

// mergeRisks unions locally-detected risks with provider red flags, keeping
// first-seen order and dropping duplicates case-insensitively.
func mergeRisks(local, providerFlags []string) []string {
	seen := make(map[string]struct{}, len(local)+len(providerFlags))
	out := make([]string, 0, len(local)+len(providerFlags))
	for _, r := range append(append([]string{}, local...), providerFlags...) {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		k := strings.ToLower(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
