package ingest

import (
	"context"

	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/domain/upload"
	"github.com/kailas-cloud/tenantdex/internal/index"
)

// Corpus is the mutable document index.
type Corpus interface {
	Add(doc domdoc.Document) error
	Load(docs []domdoc.Document) error
	Replace(docs []domdoc.Document) error
	Reset()
	Stats() index.Stats
}

// FolderReader reads documents from a directory.
type FolderReader interface {
	Read(ctx context.Context, dir, tenant string) ([]domdoc.Document, error)
}

// Archive keeps raw uploads so they can be re-ingested after a restart.
type Archive interface {
	Save(ctx context.Context, u upload.Upload) error
	List(ctx context.Context) ([]upload.Upload, error)
	Purge(ctx context.Context) (int, error)
}
