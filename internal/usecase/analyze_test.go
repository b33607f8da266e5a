package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/registry"
)

type fakeProvider struct {
	result domain.ProviderResult
	err    error
	calls  int
}

func (f *fakeProvider) AnalyzeJD(_ domain.Context, _, _ string) (domain.ProviderResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeAnalysisRepo struct {
	records map[string]domain.AnalysisRecord
	nextID  int
	failAll bool
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{records: map[string]domain.AnalysisRecord{}}
}

func (f *fakeAnalysisRepo) Create(_ domain.Context, rec domain.AnalysisRecord) (string, error) {
	if f.failAll {
		return "", errors.New("db down")
	}
	f.nextID++
	id := fmt.Sprintf("id-%d", f.nextID)
	rec.ID = id
	f.records[id] = rec
	return id, nil
}

func (f *fakeAnalysisRepo) Get(_ domain.Context, id string) (domain.AnalysisRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return domain.AnalysisRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeAnalysisRepo) List(_ domain.Context, filter domain.ListFilter) ([]domain.AnalysisRecord, error) {
	out := make([]domain.AnalysisRecord, 0, len(f.records))
	for _, rec := range f.records {
		if filter.Recommendation != "" && rec.Recommendation != filter.Recommendation {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAnalysisRepo) MarkSaved(_ domain.Context, id string) error {
	rec, ok := f.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.IsSaved = true
	f.records[id] = rec
	return nil
}

func (f *fakeAnalysisRepo) Delete(_ domain.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeCompanyRepo struct {
	upserts []domain.CompanyRecord
}

func (f *fakeCompanyRepo) Upsert(_ domain.Context, c domain.CompanyRecord) (string, error) {
	f.upserts = append(f.upserts, c)
	return c.Name, nil
}

func (f *fakeCompanyRepo) List(_ domain.Context) ([]domain.CompanyRecord, error) {
	return f.upserts, nil
}

type fakeCache struct {
	entries map[string]domain.Classification
	gets    int
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]domain.Classification{}}
}

func (f *fakeCache) Get(_ domain.Context, name string) (domain.Classification, bool, error) {
	f.gets++
	c, ok := f.entries[name]
	return c, ok, nil
}

func (f *fakeCache) Put(_ domain.Context, name string, c domain.Classification) error {
	f.puts++
	f.entries[name] = c
	return nil
}

func newTestService(t *testing.T, provider domain.ProviderClient) (*AnalyzeService, *fakeAnalysisRepo) {
	t.Helper()
	repo := newFakeAnalysisRepo()
	svc := NewAnalyzeService(
		provider, newFakeCache(), registry.MustLoad(),
		repo, &fakeCompanyRepo{},
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)), 50,
	)
	return svc, repo
}

const tcsBondJD = `TCS is hiring freshers for software engineer roles.
Candidates must sign a 2 year bond and submit a blank cheque as security.
0-1 years of experience required. Salary 3.5 LPA.`

const infosysSeniorJD = `Infosys is looking for a Principal Consultant with
8-10 years of experience in enterprise Java delivery and client management.
Location Bangalore, immediate joiners preferred.`

const cleanUnknownJD = `We are looking for motivated engineers to join our team.
You will work on interesting problems with modern technologies and
collaborate with a friendly team. Great learning environment.`

func TestAnalyzeServiceBondGivesSkip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)

	assert.Equal(t, "Tcs", rec.CompanyName)
	assert.Equal(t, domain.CompanyService, rec.CompanyType)
	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
	assert.Equal(t, domain.RiskHigh, rec.RiskLevel)
	assert.Equal(t, domain.AlignmentGood, rec.FresherAlignment)
	assert.Equal(t, "3.5 lpa", rec.Result.AdvertisedCTC)
	assert.Contains(t, rec.Result.RiskAndTradeoffs.KeyConcerns, "bond")
	assert.Contains(t, rec.Result.RiskAndTradeoffs.KeyConcerns, "cheque")
}

func TestAnalyzeServiceSeniorServiceSkip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	rec, err := svc.Analyze(context.Background(), infosysSeniorJD, "")
	require.NoError(t, err)

	assert.Equal(t, domain.CompanyService, rec.CompanyType)
	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
	assert.Equal(t, domain.RiskHigh, rec.RiskLevel)
	assert.Equal(t, "8+ Years (Lead/Principal)", rec.Result.ExperienceFit.RequiredExperience)
	assert.Equal(t, domain.AlignmentPoor, rec.FresherAlignment)
}

func TestAnalyzeServiceDefaultApply(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	rec, err := svc.Analyze(context.Background(), cleanUnknownJD, "")
	require.NoError(t, err)

	assert.Equal(t, domain.RecommendApply, rec.Recommendation)
	assert.Equal(t, domain.RiskLow, rec.RiskLevel)
	assert.Equal(t, "Unknown", rec.CompanyName)
	assert.Equal(t, []string{"No major concerns detected"}, rec.Result.RiskAndTradeoffs.KeyConcerns)
}

func TestAnalyzeServiceProviderFailureStillCompletes(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult("error:timeout")})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)

	// Every section is present and the engine verdict is unaffected.
	assert.Equal(t, "error:timeout", rec.Result.AnalysisSource)
	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
	assert.InDelta(t, 0.5, rec.Result.Confidence.Breakdown.RoleClarity, 0.001)
	assert.Len(t, rec.Result.ResumeGuidance.ATSOptimizedBullets, 3)
	assert.NotEmpty(t, rec.Result.Understanding.Company.Context)
	assert.NotEmpty(t, rec.Result.Understanding.RoleReality)
	assert.NotEmpty(t, rec.Result.FinalVerdict)
}

func TestAnalyzeServiceProviderErrorDegrades(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{err: errors.New("boom")})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)
	assert.Equal(t, "error:boom", rec.Result.AnalysisSource)
	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
}

func TestAnalyzeServiceEngineOverridesProviderRisk(t *testing.T) {
	t.Parallel()

	// The provider insists the role is safe; the engine still decides.
	result := domain.ProviderResult{
		CompanyName:    "TCS",
		Classification: domain.Classification{Type: domain.CompanyProduct, Tier: domain.TierFAANGM},
		ClarityScore:   1.0,
		ClarityKnown:   true,
		Risk:           domain.RiskAssessment{RiskLevel: "Low"},
		Source:         domain.SourceGemini,
	}
	svc, _ := newTestService(t, &fakeProvider{result: result})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)

	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
	assert.Equal(t, domain.RiskHigh, rec.RiskLevel)
	// Registry overrides the provider's classification for a known company.
	assert.Equal(t, domain.CompanyService, rec.CompanyType)
	assert.Equal(t, domain.Tier1, rec.Result.Understanding.Company.Tier)
}

func TestAnalyzeServiceProviderReasoningPreferred(t *testing.T) {
	t.Parallel()

	// Provider explanation text wins for the guidance prose; the
	// recommendation itself stays deterministic.
	result := domain.ProviderResult{
		CompanyName:    "TCS",
		Classification: domain.Classification{Type: domain.CompanyService, Tier: domain.Tier1},
		ClarityScore:   0.8,
		ClarityKnown:   true,
		Explanations: domain.Explanations{
			Reasoning:       "The bond terms shift all risk onto you.",
			WhatToDoInstead: "Target product companies with no bond clauses.",
		},
		Source: domain.SourceGemini,
	}
	svc, _ := newTestService(t, &fakeProvider{result: result})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)

	assert.Equal(t, domain.RecommendSkip, rec.Recommendation)
	assert.Equal(t, "The bond terms shift all risk onto you.", rec.Result.DecisionGuidance.Reasoning)
	assert.Equal(t, "Target product companies with no bond clauses.", rec.Result.DecisionGuidance.WhatToDoInstead)
}

func TestAnalyzeServiceProviderNamePreferred(t *testing.T) {
	t.Parallel()

	result := domain.FallbackProviderResult(domain.SourceGemini)
	result.CompanyName = "Tata Consultancy Services"
	result.Source = domain.SourceGemini
	svc, _ := newTestService(t, &fakeProvider{result: result})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)
	assert.Equal(t, "Tata Consultancy Services", rec.CompanyName)
}

func TestAnalyzeServiceCompanyHintOverridesExtraction(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	rec, err := svc.Analyze(context.Background(), cleanUnknownJD, "Infosys")
	require.NoError(t, err)

	assert.Equal(t, "Infosys", rec.CompanyName)
	assert.Equal(t, domain.CompanyService, rec.CompanyType)
	assert.Equal(t, domain.RecommendCaution, rec.Recommendation)
}

func TestAnalyzeServiceRejectsShortInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	_, err := svc.Analyze(context.Background(), "too short", "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAnalyzeServicePersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	rec, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.CompanyName, got.CompanyName)

	require.NoError(t, svc.Save(context.Background(), rec.ID))
	got, err = svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSaved)

	require.NoError(t, svc.Delete(context.Background(), rec.ID))
	_, err = svc.Get(context.Background(), rec.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, repo.records)
}

func TestAnalyzeServiceCreateFailure(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t, &fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)})
	repo.failAll = true
	_, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=analyze.create")
}

func TestAnalyzeServiceClassificationCached(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	svc := NewAnalyzeService(
		&fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)},
		cache, registry.MustLoad(),
		newFakeAnalysisRepo(), &fakeCompanyRepo{},
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)), 50,
	)

	_, err := svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	_, err = svc.Analyze(context.Background(), tcsBondJD, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts, "second analysis hits the cache")
	assert.Equal(t, domain.Classification{Type: domain.CompanyService, Tier: domain.Tier1}, cache.entries["tcs"])
}

func TestSeedCompanies(t *testing.T) {
	t.Parallel()

	companies := &fakeCompanyRepo{}
	svc := NewAnalyzeService(
		&fakeProvider{result: domain.FallbackProviderResult(domain.SourceNoAPIKey)},
		nil, registry.MustLoad(),
		newFakeAnalysisRepo(), companies,
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)), 50,
	)

	n, err := svc.SeedCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(registry.MustLoad().Entries()), n)
	assert.Len(t, companies.upserts, n)
}
