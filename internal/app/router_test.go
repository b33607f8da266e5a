package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikarboddupally/analyzejd/internal/adapter/httpserver"
	"github.com/srikarboddupally/analyzejd/internal/config"
)

func TestParseOrigins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , ,"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		ParseOrigins(" https://a.example, https://b.example "),
	)
}

func TestBuildRouterHealthAndMetrics(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		AppEnv:           "test",
		RateLimitPerMin:  100,
		HTTPWriteTimeout: 10 * time.Second,
	}
	srv := httpserver.NewServer(cfg, nil, nil, nil, nil)
	handler := BuildRouter(cfg, srv)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines") ||
		strings.Contains(rec.Body.String(), "promhttp_metric_handler"))

	// Readiness with no checks configured reports ready.
	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouterRequestID(t *testing.T) {
	t.Parallel()

	cfg := config.Config{AppEnv: "test", RateLimitPerMin: 100, HTTPWriteTimeout: 10 * time.Second}
	handler := BuildRouter(cfg, httpserver.NewServer(cfg, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
