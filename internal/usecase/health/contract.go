package health

import "context"

// IndexSizer reports how many documents are indexed.
type IndexSizer interface {
	Len() int
}

// ArchivePinger checks upload archive availability.
type ArchivePinger interface {
	Ping(ctx context.Context) error
}
