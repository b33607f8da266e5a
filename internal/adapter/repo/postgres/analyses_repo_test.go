package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

func sampleRecord() domain.AnalysisRecord {
	return domain.AnalysisRecord{
		JDText:           "TCS is hiring freshers with a 2 year bond requirement",
		CompanyName:      "Tcs",
		CompanyType:      domain.CompanyService,
		Recommendation:   domain.RecommendSkip,
		RiskLevel:        domain.RiskHigh,
		FresherAlignment: domain.AlignmentGood,
		ConfidenceScore:  0.62,
		Result: domain.FinalAnalysis{
			FinalVerdict:   "Multiple concerns detected for Tcs.",
			AnalysisSource: domain.SourceNoAPIKey,
		},
	}
}

func TestAnalysisRepoCreateGeneratesID(t *testing.T) {
	t.Parallel()

	pool := &fakePool{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewAnalysisRepo(pool)

	id, err := repo.Create(context.Background(), sampleRecord())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated id must be a uuid")

	require.Len(t, pool.execArgs, 1)
	args := pool.execArgs[0]
	assert.Equal(t, id, args[0])
	assert.Equal(t, "Tcs", args[2])

	// full_result is stored as JSON.
	var stored domain.FinalAnalysis
	require.NoError(t, json.Unmarshal(args[8].([]byte), &stored))
	assert.Equal(t, domain.SourceNoAPIKey, stored.AnalysisSource)
}

func analysisRowVals(id string) []any {
	result, _ := json.Marshal(domain.FinalAnalysis{FinalVerdict: "v", AnalysisSource: "gemini"})
	return []any{
		id, "jd text", "Wipro", "Service", "Apply with Caution",
		"Medium", "Good", 0.7, result, false, time.Now().UTC(),
	}
}

func TestAnalysisRepoGet(t *testing.T) {
	t.Parallel()

	id := uuid.New().String()
	pool := &fakePool{queryRow: fakeRow{vals: analysisRowVals(id)}}
	repo := NewAnalysisRepo(pool)

	rec, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, domain.CompanyService, rec.CompanyType)
	assert.Equal(t, domain.RecommendCaution, rec.Recommendation)
	assert.Equal(t, "v", rec.Result.FinalVerdict)
}

func TestAnalysisRepoGetNotFound(t *testing.T) {
	t.Parallel()

	pool := &fakePool{queryRow: fakeRow{err: pgx.ErrNoRows}}
	repo := NewAnalysisRepo(pool)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalysisRepoListFilter(t *testing.T) {
	t.Parallel()

	pool := &fakePool{rows: &fakeRows{rows: [][]any{analysisRowVals(uuid.New().String())}}}
	repo := NewAnalysisRepo(pool)

	recs, err := repo.List(context.Background(), domain.ListFilter{
		Limit: 10, Offset: 5, Recommendation: domain.RecommendSkip,
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.Len(t, pool.querySQL, 1)
	assert.Contains(t, pool.querySQL[0], "WHERE recommendation=$1")
	assert.Contains(t, pool.querySQL[0], "ORDER BY created_at DESC")
	assert.Equal(t, []any{domain.RecommendSkip, 10, 5}, pool.queryArgs[0])
}

func TestAnalysisRepoListNoFilter(t *testing.T) {
	t.Parallel()

	pool := &fakePool{rows: &fakeRows{}}
	repo := NewAnalysisRepo(pool)

	recs, err := repo.List(context.Background(), domain.ListFilter{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotContains(t, pool.querySQL[0], "WHERE")
	assert.Equal(t, []any{20, 0}, pool.queryArgs[0])
}

func TestAnalysisRepoMarkSavedNotFound(t *testing.T) {
	t.Parallel()

	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewAnalysisRepo(pool)
	require.ErrorIs(t, repo.MarkSaved(context.Background(), "missing"), domain.ErrNotFound)

	pool2 := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 1")}
	require.NoError(t, NewAnalysisRepo(pool2).MarkSaved(context.Background(), "present"))
}

func TestAnalysisRepoDelete(t *testing.T) {
	t.Parallel()

	pool := &fakePool{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewAnalysisRepo(pool)
	require.NoError(t, repo.Delete(context.Background(), "present"))

	pool2 := &fakePool{execTag: pgconn.NewCommandTag("DELETE 0")}
	require.ErrorIs(t, NewAnalysisRepo(pool2).Delete(context.Background(), "missing"), domain.ErrNotFound)
}
