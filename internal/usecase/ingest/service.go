package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/domain/upload"
	"github.com/kailas-cloud/tenantdex/internal/index"
	"github.com/kailas-cloud/tenantdex/internal/logger"
	"github.com/kailas-cloud/tenantdex/internal/metrics"
)

// Ingestion sources used as metric labels.
const (
	sourceUpload  = "upload"
	sourceFolder  = "folder"
	sourceSamples = "samples"
	sourceRestore = "restore"
)

// Receipt identifies an ingested upload.
type Receipt struct {
	ID     string
	Tenant string
	Kind   domdoc.Kind
}

// Samples locates the sample document folder.
type Samples struct {
	Dir    string
	Tenant string
}

// Service feeds documents into the corpus from uploads, folders and the archive.
type Service struct {
	corpus  Corpus
	folder  FolderReader
	archive Archive
	samples Samples
	log     *zap.Logger
	now     func() time.Time
}

// New creates an ingest service. archive may be nil; log may be nil.
func New(corpus Corpus, folder FolderReader, archive Archive, samples Samples, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		corpus:  corpus,
		folder:  folder,
		archive: archive,
		samples: samples,
		log:     log,
		now:     time.Now,
	}
}

// Upload indexes an uploaded file under a fresh <uuid>_<filename> id.
// Bytes that are not valid UTF-8 are indexed as unparsed content.
// Archiving is best effort.
func (s *Service) Upload(ctx context.Context, tenant, filename string, data []byte) (Receipt, error) {
	l := logger.FromContext(ctx, s.log)

	u, err := upload.New(tenant, filename, data, s.now())
	if err != nil {
		return Receipt{}, err
	}
	content := domdoc.Decode(u.Data)
	if content.IsUnparsed() {
		l.Warn("Uploaded file is not valid UTF-8, indexing placeholder",
			zap.String("filename", u.Filename),
			zap.Int("bytes", len(u.Data)),
		)
	}
	doc, err := domdoc.New(u.ID, u.Filename, u.Tenant, content)
	if err != nil {
		return Receipt{}, err
	}

	if err := s.rebuild(ctx, sourceUpload, func() error { return s.corpus.Add(doc) }); err != nil {
		return Receipt{}, err
	}
	metrics.IngestedTotal.WithLabelValues(sourceUpload, string(content.Kind())).Inc()

	if s.archive != nil {
		if err := s.archive.Save(ctx, u); err != nil {
			metrics.ArchiveErrorsTotal.WithLabelValues("save").Inc()
			l.Warn("Failed to archive upload", zap.String("id", u.ID), zap.Error(err))
		}
	}

	l.Info("Document uploaded",
		zap.String("id", u.ID),
		zap.String("tenant", u.Tenant),
		zap.String("kind", string(content.Kind())),
	)
	return Receipt{ID: u.ID, Tenant: u.Tenant, Kind: content.Kind()}, nil
}

// LoadFolder extends the corpus with the documents of dir, tagged with tenant.
func (s *Service) LoadFolder(ctx context.Context, dir, tenant string) (int, error) {
	docs, err := s.folder.Read(ctx, dir, tenant)
	if err != nil {
		return 0, fmt.Errorf("read folder: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	if err := s.rebuild(ctx, sourceFolder, func() error { return s.corpus.Load(docs) }); err != nil {
		return 0, err
	}
	metrics.IngestedTotal.WithLabelValues(sourceFolder, string(domdoc.KindText)).Add(float64(len(docs)))
	logger.FromContext(ctx, s.log).Info("Folder loaded", zap.String("dir", dir), zap.Int("documents", len(docs)))
	return len(docs), nil
}

// ReloadSamples replaces the whole corpus with the sample folder.
func (s *Service) ReloadSamples(ctx context.Context) (int, error) {
	docs, err := s.folder.Read(ctx, s.samples.Dir, s.samples.Tenant)
	if err != nil {
		return 0, fmt.Errorf("read samples: %w", err)
	}
	if err := s.rebuild(ctx, sourceSamples, func() error { return s.corpus.Replace(docs) }); err != nil {
		return 0, err
	}
	metrics.IngestedTotal.WithLabelValues(sourceSamples, string(domdoc.KindText)).Add(float64(len(docs)))
	logger.FromContext(ctx, s.log).Info("Sample documents loaded",
		zap.String("dir", s.samples.Dir),
		zap.String("tenant", s.samples.Tenant),
		zap.Int("documents", len(docs)),
	)
	return len(docs), nil
}

// Restore re-ingests every archived upload. Without an archive it is a no-op.
func (s *Service) Restore(ctx context.Context) (int, error) {
	if s.archive == nil {
		return 0, nil
	}
	uploads, err := s.archive.List(ctx)
	if err != nil {
		metrics.ArchiveErrorsTotal.WithLabelValues("list").Inc()
		return 0, fmt.Errorf("list archive: %w", err)
	}
	if len(uploads) == 0 {
		return 0, nil
	}

	docs := make([]domdoc.Document, 0, len(uploads))
	for _, u := range uploads {
		content := domdoc.Decode(u.Data)
		docs = append(docs, domdoc.Reconstruct(u.ID, u.Filename, u.Tenant, content))
		metrics.IngestedTotal.WithLabelValues(sourceRestore, string(content.Kind())).Inc()
	}
	if err := s.rebuild(ctx, sourceRestore, func() error { return s.corpus.Load(docs) }); err != nil {
		return 0, err
	}
	logger.FromContext(ctx, s.log).Info("Archived uploads restored", zap.Int("documents", len(docs)))
	return len(docs), nil
}

// Reset empties the corpus and the upload archive.
// Archive failures are logged; the corpus is reset regardless.
func (s *Service) Reset(ctx context.Context) {
	s.corpus.Reset()
	metrics.SetIndexSize(0, 0)
	s.purgeArchive(ctx)
	logger.FromContext(ctx, s.log).Info("Corpus reset")
}

func (s *Service) purgeArchive(ctx context.Context) {
	if s.archive == nil {
		return
	}
	n, err := s.archive.Purge(ctx)
	if err != nil {
		metrics.ArchiveErrorsTotal.WithLabelValues("purge").Inc()
		logger.FromContext(ctx, s.log).Warn("Failed to purge upload archive", zap.Int("purged", n), zap.Error(err))
	}
}

// Stats describes the current corpus.
func (s *Service) Stats() index.Stats {
	return s.corpus.Stats()
}

func (s *Service) rebuild(ctx context.Context, op string, fn func() error) error {
	if err := metrics.ObserveRebuild(op, fn); err != nil {
		logger.FromContext(ctx, s.log).Error("Corpus rebuild failed", zap.String("operation", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	st := s.corpus.Stats()
	metrics.SetIndexSize(st.Documents, st.VocabularySize)
	return nil
}
