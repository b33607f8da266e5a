package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/srikarboddupally/analyzejd/internal/adapter/observability"
	"github.com/srikarboddupally/analyzejd/internal/config"
	"github.com/srikarboddupally/analyzejd/internal/domain"
	"github.com/srikarboddupally/analyzejd/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg           config.Config
	Analyses      *usecase.AnalyzeService
	DBCheck       func(ctx context.Context) error
	RedisCheck    func(ctx context.Context) error
	ProviderCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, analyses *usecase.AnalyzeService,
	dbCheck, redisCheck, providerCheck func(context.Context) error) *Server {
	return &Server{
		Cfg: cfg, Analyses: analyses,
		DBCheck: dbCheck, RedisCheck: redisCheck, ProviderCheck: providerCheck,
	}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type analyzeRequest struct {
	JDText      string `json:"jd_text" validate:"required,min=50"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
}

type analyzeResponse struct {
	ID       string               `json:"id"`
	Analysis domain.FinalAnalysis `json:"analysis"`
}

// AnalyzeHandler accepts a job description and returns the full analysis.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			field, msg := "jd_text", "jd_text must be at least 50 characters"
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "CompanyName" {
				field, msg = "company_name", "company_name must be at most 200 characters"
			}
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, msg),
				map[string]string{"field": field})
			return
		}

		rec, err := s.Analyses.Analyze(r.Context(), req.JDText, req.CompanyName)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		observability.ObserveAnalysis(
			string(rec.Recommendation), string(rec.RiskLevel),
			rec.Result.AnalysisSource, rec.ConfidenceScore)
		LoggerFrom(r).Info("jd analyzed",
			slog.String("analysis_id", rec.ID),
			slog.String("recommendation", string(rec.Recommendation)))
		writeJSON(w, http.StatusOK, analyzeResponse{ID: rec.ID, Analysis: rec.Result})
	}
}

type analysisSummary struct {
	ID               string    `json:"id"`
	CompanyName      string    `json:"company_name"`
	CompanyType      string    `json:"company_type"`
	Recommendation   string    `json:"recommendation"`
	RiskLevel        string    `json:"risk_level"`
	FresherAlignment string    `json:"fresher_alignment"`
	ConfidenceScore  float64   `json:"confidence_score"`
	IsSaved          bool      `json:"is_saved"`
	CreatedAt        time.Time `json:"created_at"`
}

func toSummary(rec domain.AnalysisRecord) analysisSummary {
	return analysisSummary{
		ID:               rec.ID,
		CompanyName:      rec.CompanyName,
		CompanyType:      string(rec.CompanyType),
		Recommendation:   string(rec.Recommendation),
		RiskLevel:        string(rec.RiskLevel),
		FresherAlignment: string(rec.FresherAlignment),
		ConfidenceScore:  rec.ConfidenceScore,
		IsSaved:          rec.IsSaved,
		CreatedAt:        rec.CreatedAt,
	}
}

// ListHandler pages stored analyses, optionally filtered by recommendation.
func (s *Server) ListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := domain.ListFilter{}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidArgument), nil)
				return
			}
			f.Limit = n
		}
		if v := q.Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, r, fmt.Errorf("%w: offset must be a non-negative integer", domain.ErrInvalidArgument), nil)
				return
			}
			f.Offset = n
		}
		if v := q.Get("recommendation"); v != "" {
			rec := domain.Recommendation(v)
			switch rec {
			case domain.RecommendApply, domain.RecommendCaution, domain.RecommendSkip:
				f.Recommendation = rec
			default:
				writeError(w, r, fmt.Errorf("%w: unknown recommendation %q", domain.ErrInvalidArgument, v), nil)
				return
			}
		}

		recs, err := s.Analyses.List(r.Context(), f)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		items := make([]analysisSummary, 0, len(recs))
		for _, rec := range recs {
			items = append(items, toSummary(rec))
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	}
}

// GetHandler returns one stored analysis in full.
func (s *Server) GetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.Analyses.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":       rec.ID,
			"jd_text":  rec.JDText,
			"is_saved": rec.IsSaved,
			"analysis": rec.Result,
			"summary":  toSummary(rec),
		})
	}
}

// SaveHandler marks an analysis as saved.
func (s *Server) SaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := s.Analyses.Save(r.Context(), id); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_saved": true})
	}
}

// DeleteHandler removes an analysis.
func (s *Server) DeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Analyses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CompaniesHandler lists persisted company classifications.
func (s *Server) CompaniesHandler() http.HandlerFunc {
	type companyItem struct {
		Name    string   `json:"name"`
		Aliases []string `json:"aliases"`
		Type    string   `json:"type"`
		Tier    string   `json:"tier"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := s.Analyses.Companies(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		items := make([]companyItem, 0, len(recs))
		for _, c := range recs {
			items = append(items, companyItem{Name: c.Name, Aliases: c.Aliases, Type: string(c.Type), Tier: string(c.Tier)})
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	}
}

// SeedCompaniesHandler loads the built-in registry into the database.
func (s *Server) SeedCompaniesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.Analyses.SeedCompanies(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"seeded": n})
	}
}

// ReadyzHandler probes DB, Redis and provider configuration.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 3)
		run := func(name string, fn func(context.Context) error) {
			if fn == nil {
				return
			}
			if err := fn(ctx); err != nil {
				checks = append(checks, check{Name: name, OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: name, OK: true})
			}
		}
		run("db", s.DBCheck)
		run("redis", s.RedisCheck)
		run("provider", s.ProviderCheck)

		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
