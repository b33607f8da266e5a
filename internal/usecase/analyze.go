// Package usecase holds the analysis pipeline: quick-pass signal scoring,
// the ordered decision engine and the deep-pass composer, plus the service
// orchestrating them against the persistence and provider ports.
package usecase

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/registry"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalyzeService runs job-description analyses and manages their records.
type AnalyzeService struct {
	provider    domain.ProviderClient
	cache       domain.ClassificationCache
	registry    *registry.Registry
	analyses    domain.AnalysisRepository
	companies   domain.CompanyRepository
	log         *slog.Logger
	minJDLength int
}

// NewAnalyzeService wires the analysis pipeline. cache may be nil to disable
// classification caching.
func NewAnalyzeService(
	provider domain.ProviderClient,
	cache domain.ClassificationCache,
	reg *registry.Registry,
	analyses domain.AnalysisRepository,
	companies domain.CompanyRepository,
	log *slog.Logger,
	minJDLength int,
) *AnalyzeService {
	if log == nil {
		log = slog.Default()
	}
	if minJDLength <= 0 {
		minJDLength = 50
	}
	return &AnalyzeService{
		provider:    provider,
		cache:       cache,
		registry:    reg,
		analyses:    analyses,
		companies:   companies,
		log:         log,
		minJDLength: minJDLength,
	}
}

// Analyze runs the full pipeline on one job description and persists the
// result. companyHint, when non-empty, overrides local company extraction.
// The returned record carries the storage id.
func (s *AnalyzeService) Analyze(ctx domain.Context, jdText, companyHint string) (domain.AnalysisRecord, error) {
	trimmed := strings.TrimSpace(jdText)
	if len(trimmed) < s.minJDLength {
		return domain.AnalysisRecord{}, fmt.Errorf(
			"op=analyze: job description shorter than %d characters: %w",
			s.minJDLength, domain.ErrInvalidArgument)
	}

	q := s.quickPass(ctx, trimmed, companyHint)
	result := compose(trimmed, q)

	rec := domain.AnalysisRecord{
		JDText:           trimmed,
		CompanyName:      result.Understanding.Company.Name,
		CompanyType:      result.Understanding.Company.Type,
		Recommendation:   result.DecisionGuidance.Recommendation,
		RiskLevel:        result.RiskAndTradeoffs.RiskLevel,
		FresherAlignment: result.ExperienceFit.FresherAlignment,
		ConfidenceScore:  result.Confidence.OverallConfidence,
		Result:           result,
	}

	id, err := s.analyses.Create(ctx, rec)
	if err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("op=analyze.create: %w", err)
	}
	rec.ID = id

	s.log.InfoContext(ctx, "analysis completed",
		slog.String("analysis_id", id),
		slog.String("company", rec.CompanyName),
		slog.String("recommendation", string(rec.Recommendation)),
		slog.String("risk_level", string(rec.RiskLevel)),
		slog.Float64("confidence", rec.ConfidenceScore),
		slog.String("source", result.AnalysisSource),
	)
	return rec, nil
}

// Get returns one stored analysis by id.
func (s *AnalyzeService) Get(ctx domain.Context, id string) (domain.AnalysisRecord, error) {
	rec, err := s.analyses.Get(ctx, id)
	if err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("op=analyze.get: %w", err)
	}
	return rec, nil
}

// List pages stored analyses, optionally filtered by recommendation.
func (s *AnalyzeService) List(ctx domain.Context, f domain.ListFilter) ([]domain.AnalysisRecord, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	recs, err := s.analyses.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("op=analyze.list: %w", err)
	}
	return recs, nil
}

// Save marks a stored analysis as saved.
func (s *AnalyzeService) Save(ctx domain.Context, id string) error {
	if err := s.analyses.MarkSaved(ctx, id); err != nil {
		return fmt.Errorf("op=analyze.save: %w", err)
	}
	return nil
}

// Delete removes a stored analysis.
func (s *AnalyzeService) Delete(ctx domain.Context, id string) error {
	if err := s.analyses.Delete(ctx, id); err != nil {
		return fmt.Errorf("op=analyze.delete: %w", err)
	}
	return nil
}

// Companies lists the persisted company entries.
func (s *AnalyzeService) Companies(ctx domain.Context) ([]domain.CompanyRecord, error) {
	recs, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("op=analyze.companies: %w", err)
	}
	return recs, nil
}

// SeedCompanies upserts every built-in registry entry into the company
// repository and reports how many were written.
func (s *AnalyzeService) SeedCompanies(ctx domain.Context) (int, error) {
	n := 0
	for _, e := range s.registry.Entries() {
		_, err := s.companies.Upsert(ctx, domain.CompanyRecord{
			Name:    e.Name,
			Aliases: e.Aliases,
			Type:    e.Type,
			Tier:    e.Tier,
		})
		if err != nil {
			return n, fmt.Errorf("op=analyze.seed company=%s: %w", e.Name, err)
		}
		n++
	}
	s.log.InfoContext(ctx, "company seed completed", slog.Int("count", n))
	return n, nil
}
