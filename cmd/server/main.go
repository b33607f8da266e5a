// Command server starts the job description analyzer HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srikarboddupally/analyzejd/internal/adapter/ai"
	"github.com/srikarboddupally/analyzejd/internal/adapter/cache"
	"github.com/srikarboddupally/analyzejd/internal/adapter/httpserver"
	"github.com/srikarboddupally/analyzejd/internal/adapter/observability"
	"github.com/srikarboddupally/analyzejd/internal/adapter/repo/postgres"
	"github.com/srikarboddupally/analyzejd/internal/app"
	"github.com/srikarboddupally/analyzejd/internal/config"
	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/registry"
	"github.com/srikarboddupally/analyzejd/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, provider, and analysis instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool and schema
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	analysesRepo := postgres.NewAnalysisRepo(pool)
	companiesRepo := postgres.NewCompanyRepo(pool)

	// Classification cache: Redis when configured, in-process otherwise.
	var clsCache domain.ClassificationCache
	var redisCache *cache.Redis
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = redisCache.Close() }()
		clsCache = redisCache
		slog.Info("classification cache backed by redis")
	} else {
		clsCache = cache.NewMemory()
		slog.Info("classification cache in-process")
	}

	// Provider chain: Gemini primary, Groq secondary. Without keys the
	// router degrades to the fallback result on its own.
	provider := ai.NewRouter(cfg, logger)
	if !cfg.ProviderConfigured() {
		slog.Warn("no provider api key configured, analyses will use fallback content")
	}

	reg := registry.MustLoad()
	analyzeSvc := usecase.NewAnalyzeService(
		provider, clsCache, reg, analysesRepo, companiesRepo, logger, cfg.MinJDLength,
	)

	if n, err := analyzeSvc.SeedCompanies(ctx); err != nil {
		slog.Error("company seed failed", slog.Any("error", err))
	} else {
		slog.Info("company registry seeded", slog.Int("companies", n))
	}

	// Readiness checks
	var rdbPinger app.Pinger
	if redisCache != nil {
		rdbPinger = redisCache
	}
	dbCheck, redisCheck, providerCheck := app.BuildReadinessChecks(cfg, pool, rdbPinger)

	srv := httpserver.NewServer(cfg, analyzeSvc, dbCheck, redisCheck, providerCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
