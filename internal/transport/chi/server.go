// Package chi provides the HTTP transport for the search API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/domain"
	"github.com/konectfeed/feedsearch/internal/domain/listing"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/logger"
	"github.com/konectfeed/feedsearch/internal/metrics"
	healthuc "github.com/konectfeed/feedsearch/internal/usecase/health"
)

// searcher is the consumer interface over the search usecase.
type searcher interface {
	Search(ctx context.Context, params query.Params) ([]listing.Projection, error)
}

// Server holds the HTTP handlers.
type Server struct {
	search searcher
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search searcher, health *healthuc.Service, log *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: log}
}

// Router wires middleware and routes.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.loggerMiddleware())

	r.Get("/search/businesses", s.SearchBusinesses)
	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// loggerMiddleware puts a request-scoped logger into the context.
func (s *Server) loggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := s.logger.With(
				zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
		})
	}
}

// searchResponse is the stable response envelope.
type searchResponse struct {
	Results []listing.Projection `json:"results"`
}

// errorResponse carries a caller-safe error message.
type errorResponse struct {
	Error string `json:"error"`
}

// SearchBusinesses handles GET /search/businesses. Unrecognized query
// parameters are ignored.
func (s *Server) SearchBusinesses(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	params := query.Params{
		Q:           values.Get("q"),
		City:        values.Get("city"),
		Category:    values.Get("category"),
		Subcategory: values.Get("subcategory"),
		MinPrice:    values.Get("min_price"),
		MaxPrice:    values.Get("max_price"),
		Limit:       values.Get("limit"),
	}

	results, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.writeSearchError(r.Context(), w, err)
		return
	}

	if results == nil {
		results = []listing.Projection{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// writeSearchError maps domain errors to HTTP responses. Data-source
// detail stays in the log; the caller only sees a generic message.
func (s *Server) writeSearchError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFilter):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing q or city parameter"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.FromContext(ctx).Error("search failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to search businesses"})
	}
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
