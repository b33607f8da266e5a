package app

import (
	"context"
	"fmt"

	"github.com/srikarboddupally/analyzejd/internal/config"
)

// Pinger is the minimal interface for a dependency capable of Ping. Both the
// pgx pool and the Redis cache adapter satisfy it.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns three readiness checks: db, redis, and provider.
// The redis check is nil when no Redis cache is configured; the in-process
// cache needs no probe. The provider check only verifies configuration, it
// never spends quota on a live call.
func BuildReadinessChecks(cfg config.Config, pool Pinger, rdb Pinger) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	dbCheck := func(ctx context.Context) error {
		if pool == nil {
			return fmt.Errorf("db not configured")
		}
		return pool.Ping(ctx)
	}
	var redisCheck func(ctx context.Context) error
	if rdb != nil {
		redisCheck = rdb.Ping
	}
	providerCheck := func(_ context.Context) error {
		if !cfg.ProviderConfigured() {
			return fmt.Errorf("no provider api key configured")
		}
		return nil
	}
	return dbCheck, redisCheck, providerCheck
}
