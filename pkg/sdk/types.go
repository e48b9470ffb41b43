package tenantdex

import "time"

// Document is a unit of retrievable text owned by one tenant.
type Document struct {
	ID     string
	Title  string
	Text   string
	Tenant string
}

// Result is a single ranked hit.
type Result struct {
	ID      string
	Title   string
	Snippet string
	Score   float64 // cosine similarity in [0, 1]
}

// Stats describes the current corpus.
type Stats struct {
	Documents      int
	Tenants        int
	VocabularySize int
	BuiltAt        time.Time // zero for an empty corpus
}
