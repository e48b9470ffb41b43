package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/result"
	"github.com/kailas-cloud/tenantdex/internal/logger"
	"github.com/kailas-cloud/tenantdex/internal/metrics"
)

// NoResultsAnswer is returned by Answer when nothing matched.
const NoResultsAnswer = "No relevant documents found."

// Service handles tenant-scoped document search.
type Service struct {
	ranker Ranker
	log    *zap.Logger
}

// New creates a search service. log may be nil.
func New(ranker Ranker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ranker: ranker, log: log}
}

// Search ranks the tenant's documents against the request query.
// An empty query returns no results without touching the index.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	if err := ctx.Err(); err != nil {
		metrics.ObserveQuery(0, err)
		return nil, fmt.Errorf("search: %w", err)
	}
	if req.IsEmpty() {
		return nil, nil
	}

	start := time.Now()
	results := s.ranker.Query(req.Query(), req.Tenant(), req.TopK())
	metrics.ObserveQuery(len(results), nil)

	logger.FromContext(ctx, s.log).Debug("Search completed",
		zap.String("tenant", req.Tenant()),
		zap.Int("top_k", req.TopK()),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}

// Answer joins "title: snippet" lines of the results with blank lines.
func Answer(results []result.Result) string {
	if len(results) == 0 {
		return NoResultsAnswer
	}
	parts := make([]string, len(results))
	for i := range results {
		parts[i] = results[i].Title() + ": " + results[i].Snippet()
	}
	return strings.Join(parts, "\n\n")
}
