package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// CompanyRepo persists company classification entries.
type CompanyRepo struct{ Pool PgxPool }

// NewCompanyRepo constructs a CompanyRepo with the given pool.
func NewCompanyRepo(p PgxPool) *CompanyRepo { return &CompanyRepo{Pool: p} }

// Upsert inserts or updates a company by name and returns its id.
func (r *CompanyRepo) Upsert(ctx domain.Context, c domain.CompanyRecord) (string, error) {
	tracer := otel.Tracer("repo.companies")
	ctx, span := tracer.Start(ctx, "companies.Upsert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "companies"),
	)
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	aliases, err := json.Marshal(c.Aliases)
	if err != nil {
		return "", fmt.Errorf("op=companies.upsert.marshal: %w", err)
	}
	q := `INSERT INTO companies (id, name, aliases, type, tier, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6)
	      ON CONFLICT (name) DO UPDATE SET aliases=$3, type=$4, tier=$5
	      RETURNING id`
	row := r.Pool.QueryRow(ctx, q, id, c.Name, aliases, c.Type, c.Tier, time.Now().UTC())
	var got string
	if err := row.Scan(&got); err != nil {
		return "", fmt.Errorf("op=companies.upsert: %w", err)
	}
	return got, nil
}

// List returns all companies ordered by name.
func (r *CompanyRepo) List(ctx domain.Context) ([]domain.CompanyRecord, error) {
	tracer := otel.Tracer("repo.companies")
	ctx, span := tracer.Start(ctx, "companies.List")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "companies"),
	)
	q := `SELECT id, name, aliases, type, tier, created_at FROM companies ORDER BY name`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=companies.list: %w", err)
	}
	defer rows.Close()

	out := []domain.CompanyRecord{}
	for rows.Next() {
		var c domain.CompanyRecord
		var aliases []byte
		if err := rows.Scan(&c.ID, &c.Name, &aliases, &c.Type, &c.Tier, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=companies.list.scan: %w", err)
		}
		if err := json.Unmarshal(aliases, &c.Aliases); err != nil {
			return nil, fmt.Errorf("op=companies.list.aliases: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=companies.list: %w", err)
	}
	return out, nil
}
