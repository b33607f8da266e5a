package postgres

import (
	"context"
	"fmt"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the idempotent schema. Called once at startup.
func EnsureSchema(ctx context.Context, pool PgxPool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("op=postgres.schema: %w", err)
	}
	return nil
}
