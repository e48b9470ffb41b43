package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/metrics"
)

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Handle("/static/*", s.Static())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/ingest", s.Ingest)
	r.Get("/ingest_sample", s.IngestSample)
	r.Post("/query", s.Query)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Post("/documents/batch", s.BatchUpsert)
		r.Delete("/documents", s.ResetDocuments)
		r.Get("/stats", s.Stats)
	})
}

// NewRouter builds the HTTP handler with the standard middleware chain.
func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(logger))
	r.Use(metrics.Middleware())
	s.Routes(r)
	return r
}
