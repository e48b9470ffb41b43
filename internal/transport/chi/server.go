package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/domain"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/result"
	batchuc "github.com/kailas-cloud/tenantdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/tenantdex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/tenantdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/tenantdex/internal/usecase/search"
)

// errorHandler writes an HTTP error response if it recognizes err.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options tunes request handling.
type Options struct {
	StaticDir      string
	MaxUploadBytes int64
	MaxTopK        int
	DefaultTenant  string
}

// Server serves the tenantdex HTTP API.
type Server struct {
	search        *searchuc.Service
	ingest        *ingestuc.Service
	batch         *batchuc.Service
	health        *healthuc.Service
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	ingest *ingestuc.Service,
	batch *batchuc.Service,
	health *healthuc.Service,
	opts Options,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.MaxTopK <= 0 {
		opts.MaxTopK = request.MaxTopK
	}
	if opts.DefaultTenant == "" {
		opts.DefaultTenant = request.DefaultTenant
	}
	s := &Server{
		search: search,
		ingest: ingest,
		batch:  batch,
		health: health,
		opts:   opts,
		logger: logger,
	}
	// Capacity errors also wrap ErrRebuildFailed, so they are matched first.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCorpusFull, http.StatusInsufficientStorage, ErrorResponseCodeCorpusFull),
		sentinelHandler(domain.ErrRebuildFailed, http.StatusInternalServerError, ErrorResponseCodeRebuildFailed),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeSourceUnavailable),
	}
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	message := "API is running"
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
		message = "API is degraded"
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:    string(report.Status),
		Message:   message,
		Checks:    checks,
		Documents: report.Documents,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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

// safeDomainMessage returns a client-safe message for err.
// Validation errors carry their detail; everything else is reduced to its sentinel.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidDocument) || errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrCorpusFull,
		domain.ErrRebuildFailed,
		domain.ErrSourceUnavailable,
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

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func toSources(results []result.Result) []Source {
	out := make([]Source, len(results))
	for i := range results {
		out[i] = Source{
			ID:      results[i].DocumentID(),
			Title:   results[i].Title(),
			Snippet: results[i].Snippet(),
			Score:   results[i].Score(),
		}
	}
	return out
}
