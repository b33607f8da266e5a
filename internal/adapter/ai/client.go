package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/srikarboddupally/analyzejd/internal/adapter/observability"
	"github.com/srikarboddupally/analyzejd/internal/config"
	"github.com/srikarboddupally/analyzejd/internal/domain"
)

// Router implements domain.ProviderClient with a two-provider chain:
// Gemini primary, Groq secondary. Retries live here, inside each provider
// attempt; callers see exactly one AnalyzeJD call and never an error for
// provider-side failures.
type Router struct {
	cfg config.Config
	hc  *http.Client
	log *slog.Logger
}

// NewRouter constructs the provider router. The HTTP client carries the
// OTel transport so provider calls show up as spans.
func NewRouter(cfg config.Config, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.ProviderTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// AnalyzeJD runs the provider chain. Every failure path returns a fallback
// result with the provenance marker describing the failure and a nil error.
func (r *Router) AnalyzeJD(ctx domain.Context, jdText, companyHint string) (domain.ProviderResult, error) {
	if !r.cfg.ProviderConfigured() {
		return domain.FallbackProviderResult(domain.SourceNoAPIKey), nil
	}
	prompt := BuildPrompt(jdText, companyHint, r.cfg.PromptCharBudget)

	var lastErr error
	if r.cfg.GeminiAPIKey != "" {
		res, err := r.callGemini(ctx, prompt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		r.log.WarnContext(ctx, "gemini analysis failed, trying next provider", slog.Any("error", err))
	}
	if r.cfg.GroqAPIKey != "" {
		res, err := r.callGroq(ctx, prompt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		r.log.WarnContext(ctx, "groq analysis failed", slog.Any("error", err))
	}

	marker := domain.SourceParseError
	if !errors.Is(lastErr, domain.ErrProviderMalformed) {
		marker = "error:" + failureCause(lastErr)
	}
	r.log.ErrorContext(ctx, "all providers failed, degrading to fallback",
		slog.String("marker", marker), slog.Any("error", lastErr))
	return domain.FallbackProviderResult(marker), nil
}

func failureCause(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "unavailable"
	default:
		return "request_failed"
	}
}

func (r *Router) callGemini(ctx domain.Context, prompt string) (domain.ProviderResult, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     0.3,
			"maxOutputTokens": 4000,
		},
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		r.cfg.GeminiBaseURL, r.cfg.GeminiModel, url.QueryEscape(r.cfg.GeminiAPIKey))

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := r.postJSON(ctx, "gemini", endpoint, nil, body, &out); err != nil {
		return domain.ProviderResult{}, err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return domain.ProviderResult{}, fmt.Errorf("op=ai.gemini: empty candidates: %w", domain.ErrProviderMalformed)
	}
	return ParseResult(out.Candidates[0].Content.Parts[0].Text, domain.SourceGemini, r.cfg.GeminiModel)
}

func (r *Router) callGroq(ctx domain.Context, prompt string) (domain.ProviderResult, error) {
	body := map[string]any{
		"model":           r.cfg.GroqModel,
		"temperature":     0.3,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + r.cfg.GroqAPIKey}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := r.postJSON(ctx, "groq", r.cfg.GroqBaseURL+"/chat/completions", headers, body, &out); err != nil {
		return domain.ProviderResult{}, err
	}
	if len(out.Choices) == 0 {
		return domain.ProviderResult{}, fmt.Errorf("op=ai.groq: empty choices: %w", domain.ErrProviderMalformed)
	}
	return ParseResult(out.Choices[0].Message.Content, domain.SourceGroq, r.cfg.GroqModel)
}

// postJSON sends one JSON request with exponential backoff. 429 and 5xx are
// retryable; other 4xx are permanent.
func (r *Router) postJSON(ctx domain.Context, provider, endpoint string, headers map[string]string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("op=ai.request provider=%s: %w", provider, err)
	}

	op := func() error {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := r.hc.Do(req)
		observability.ProviderRequestsTotal.WithLabelValues(provider).Inc()
		observability.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			r.log.WarnContext(ctx, "provider rate limited", slog.String("provider", provider))
			return fmt.Errorf("rate limited: 429")
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			r.log.WarnContext(ctx, "provider 4xx",
				slog.String("provider", provider),
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(respBody, 512)))
			return backoff.Permanent(fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrProviderFailed))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			r.log.WarnContext(ctx, "provider non-2xx",
				slog.String("provider", provider),
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(respBody, 512)))
			return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrProviderUnavailable)
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode: %v: %w", err, domain.ErrProviderMalformed))
		}
		return nil
	}

	maxElapsed, initial, maxInterval := r.cfg.ProviderBackoff()
	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = maxElapsed
	expo.InitialInterval = initial
	expo.MaxInterval = maxInterval

	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return fmt.Errorf("op=ai.request provider=%s: %w", provider, err)
	}
	return nil
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
