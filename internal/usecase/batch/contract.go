package batch

import (
	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
	"github.com/kailas-cloud/tenantdex/internal/index"
)

// Loader extends the corpus with a set of documents in one rebuild.
type Loader interface {
	Load(docs []domdoc.Document) error
	Stats() index.Stats
}
