// Package postgres provides PostgreSQL database adapters.
//
// It implements the repository ports over a minimal pgx pool interface so
// repos stay testable without a live database.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AnalysisRepo persists analyses.
type AnalysisRepo struct{ Pool PgxPool }

// NewAnalysisRepo constructs an AnalysisRepo with the given pool.
func NewAnalysisRepo(p PgxPool) *AnalysisRepo { return &AnalysisRepo{Pool: p} }

// Create stores a new analysis and returns its id (generates one if empty).
func (r *AnalysisRepo) Create(ctx domain.Context, rec domain.AnalysisRecord) (string, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "analyses"),
	)
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return "", fmt.Errorf("op=analyses.create.marshal: %w", err)
	}
	q := `INSERT INTO analyses
	        (id, jd_text, company_name, company_type, recommendation, risk_level,
	         fresher_alignment, confidence_score, full_result, is_saved, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err = r.Pool.Exec(ctx, q, id, rec.JDText, rec.CompanyName, rec.CompanyType,
		rec.Recommendation, rec.RiskLevel, rec.FresherAlignment, rec.ConfidenceScore,
		result, rec.IsSaved, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("op=analyses.create: %w", err)
	}
	return id, nil
}

const analysisColumns = `id, jd_text, company_name, company_type, recommendation,
	risk_level, fresher_alignment, confidence_score, full_result, is_saved, created_at`

func scanAnalysis(row pgx.Row) (domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	var result []byte
	err := row.Scan(&rec.ID, &rec.JDText, &rec.CompanyName, &rec.CompanyType,
		&rec.Recommendation, &rec.RiskLevel, &rec.FresherAlignment,
		&rec.ConfidenceScore, &result, &rec.IsSaved, &rec.CreatedAt)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("unmarshal full_result: %w", err)
	}
	return rec, nil
}

// Get loads an analysis by id or returns domain.ErrNotFound.
func (r *AnalysisRepo) Get(ctx domain.Context, id string) (domain.AnalysisRecord, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "analyses"),
	)
	q := `SELECT ` + analysisColumns + ` FROM analyses WHERE id=$1`
	rec, err := scanAnalysis(r.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AnalysisRecord{}, fmt.Errorf("op=analyses.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("op=analyses.get: %w", err)
	}
	return rec, nil
}

// List pages analyses newest-first, optionally filtered by recommendation.
func (r *AnalysisRepo) List(ctx domain.Context, f domain.ListFilter) ([]domain.AnalysisRecord, error) {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.List")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "analyses"),
	)
	q := `SELECT ` + analysisColumns + ` FROM analyses`
	args := []any{}
	if f.Recommendation != "" {
		q += ` WHERE recommendation=$1`
		args = append(args, f.Recommendation)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=analyses.list: %w", err)
	}
	defer rows.Close()

	out := []domain.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("op=analyses.list.scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=analyses.list: %w", err)
	}
	return out, nil
}

// MarkSaved flags an analysis as saved; missing ids map to ErrNotFound.
func (r *AnalysisRepo) MarkSaved(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.MarkSaved")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "analyses"),
	)
	tag, err := r.Pool.Exec(ctx, `UPDATE analyses SET is_saved=TRUE WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("op=analyses.save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=analyses.save: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes an analysis; missing ids map to ErrNotFound.
func (r *AnalysisRepo) Delete(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.analyses")
	ctx, span := tracer.Start(ctx, "analyses.Delete")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "analyses"),
	)
	tag, err := r.Pool.Exec(ctx, `DELETE FROM analyses WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("op=analyses.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=analyses.delete: %w", domain.ErrNotFound)
	}
	return nil
}
