package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/domain"
	healthuc "github.com/kailas-cloud/catsearch/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search and cache maintenance API.
type Server struct {
	search        Searcher
	cache         CacheMaintainer
	health        HealthChecker
	maxAge        time.Duration
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxAge is the eviction age used
// when POST /v1/cache/evict is called without max_age_sec.
func NewServer(
	search Searcher,
	cache CacheMaintainer,
	health HealthChecker,
	maxAge time.Duration,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		cache:  cache,
		health: health,
		maxAge: maxAge,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		queryTooLongHandler,
		sentinelHandler(domain.ErrCombinationRequired, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
	}
	return s
}

// Search handles GET /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	combinationID, err := uuid.Parse(params.CombinationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "combination_id must be a UUID")
		return
	}

	q, err := s.search.NewQuery(combinationID, deref(params.Locale), params.Q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := s.search.SearchPage(r.Context(), q, deref(params.Page), deref(params.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page))
}

// EvictExpired handles POST /v1/cache/evict.
func (s *Server) EvictExpired(w http.ResponseWriter, r *http.Request) {
	var params EvictParams
	if err := runtime.BindQueryParameter("form", true, false, "max_age_sec", r.URL.Query(), &params.MaxAgeSec); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	maxAge := s.maxAge
	if params.MaxAgeSec != nil {
		maxAge = time.Duration(*params.MaxAgeSec) * time.Second
	}

	n, err := s.cache.EvictExpired(r.Context(), maxAge)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EvictResponse{Deleted: n})
}

// ClearCache handles DELETE /v1/cache.
func (s *Server) ClearCache(w http.ResponseWriter, r *http.Request) {
	n, err := s.cache.EvictAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EvictResponse{Deleted: n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "combination_id", query, &params.CombinationID); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "locale", query, &params.Locale); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, true, "q", query, &params.Q); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return params, err
	}
	return params, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrCombinationRequired,
		domain.ErrQueryTooLong,
		domain.ErrInvalidArgument,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// queryTooLongHandler handles ErrQueryTooLong and reports the configured limit.
func queryTooLongHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrQueryTooLong) {
		return false
	}
	var qtl *domain.QueryTooLongError
	if errors.As(err, &qtl) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":       ErrorResponseCodeQueryTooLong,
			"message":    msg,
			"max_length": qtl.MaxLength,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeQueryTooLong, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
