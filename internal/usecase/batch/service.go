package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/domain"
	dombatch "github.com/kailas-cloud/tenantdex/internal/domain/batch"
	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/logger"
	"github.com/kailas-cloud/tenantdex/internal/metrics"
)

// MaxBatchSize is the maximum number of items per batch request.
const MaxBatchSize = 100

// Item is an unvalidated document submitted through the batch API.
type Item struct {
	ID     string
	Title  string
	Text   string
	Tenant string
}

// Service handles batch document ingestion with per-item error reporting.
type Service struct {
	corpus       Loader
	log          *zap.Logger
	maxBatchSize int
}

// New creates a batch service. log may be nil.
func New(corpus Loader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{corpus: corpus, log: log, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Add validates every item and loads the valid ones in a single rebuild.
// A failed rebuild marks every valid item as failed.
func (s *Service) Add(ctx context.Context, items []Item) []dombatch.Result {
	results := make([]dombatch.Result, len(items))

	if len(items) > s.maxBatchSize {
		for i, item := range items {
			results[i] = dombatch.NewError(
				item.ID, item.Tenant,
				fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidRequest),
			)
		}
		return results
	}

	valid := make([]domdoc.Document, 0, len(items))
	validIdx := make([]int, 0, len(items))
	for i, item := range items {
		doc, err := domdoc.NewBounded(item.ID, item.Title, item.Tenant, domdoc.Text(item.Text), domdoc.MaxContentSize)
		if err != nil {
			results[i] = dombatch.NewError(item.ID, item.Tenant, err)
			continue
		}
		valid = append(valid, doc)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	err := metrics.ObserveRebuild("batch", func() error { return s.corpus.Load(valid) })
	if err != nil {
		logger.FromContext(ctx, s.log).Error("Batch load failed",
			zap.Int("documents", len(valid)),
			zap.Error(err),
		)
		for _, i := range validIdx {
			results[i] = dombatch.NewError(items[i].ID, items[i].Tenant, fmt.Errorf("load: %w", err))
		}
		return results
	}

	st := s.corpus.Stats()
	metrics.SetIndexSize(st.Documents, st.VocabularySize)
	metrics.IngestedTotal.WithLabelValues("batch", string(domdoc.KindText)).Add(float64(len(valid)))

	for _, i := range validIdx {
		results[i] = dombatch.NewOK(items[i].ID, items[i].Tenant)
	}
	return results
}
