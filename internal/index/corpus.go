package index

import (
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/tenantdex/internal/domain"
	"github.com/kailas-cloud/tenantdex/internal/domain/document"
)

// Corpus is the in-memory document index. Every mutation rebuilds the
// vocabulary and all vectors; queries run against an immutable snapshot.
type Corpus struct {
	cfg Config
	tok *Tokenizer
	now func() time.Time

	// rebuildHook runs inside a rebuild before the snapshot is published.
	rebuildHook func([]document.Document)

	mu   sync.RWMutex
	snap *snapshot
}

// Stats describes the published snapshot.
type Stats struct {
	Documents      int
	Tenants        int
	VocabularySize int
	BuiltAt        time.Time
}

// NewCorpus creates an empty corpus.
func NewCorpus(cfg Config) (*Corpus, error) {
	if cfg.MaxFeatures < 0 {
		return nil, fmt.Errorf("max features must be >= 0, got %d", cfg.MaxFeatures)
	}
	if cfg.MaxDocuments < 0 {
		return nil, fmt.Errorf("max documents must be >= 0, got %d", cfg.MaxDocuments)
	}
	tok, err := cfg.tokenizer()
	if err != nil {
		return nil, err
	}
	return &Corpus{cfg: cfg, tok: tok, now: time.Now, snap: emptySnapshot}, nil
}

// Load appends docs to the corpus and rebuilds the index.
func (c *Corpus) Load(docs []document.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]document.Document, 0, len(c.snap.docs)+len(docs))
	next = append(next, c.snap.docs...)
	next = append(next, docs...)
	return c.rebuildLocked(next)
}

// Add appends a single document and rebuilds the index.
func (c *Corpus) Add(doc document.Document) error {
	return c.Load([]document.Document{doc})
}

// Replace swaps the whole document set in one rebuild.
func (c *Corpus) Replace(docs []document.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]document.Document, len(docs))
	copy(next, docs)
	return c.rebuildLocked(next)
}

// Reset empties the corpus.
func (c *Corpus) Reset() {
	c.mu.Lock()
	c.snap = &snapshot{builtAt: c.now()}
	c.mu.Unlock()
}

// Len returns the number of indexed documents.
func (c *Corpus) Len() int {
	return len(c.current().docs)
}

// Stats returns a description of the current snapshot.
func (c *Corpus) Stats() Stats {
	s := c.current()
	return Stats{
		Documents:      len(s.docs),
		Tenants:        s.tenants,
		VocabularySize: s.vocab.Size(),
		BuiltAt:        s.builtAt,
	}
}

// Vocabulary returns the vocabulary of the current snapshot, nil when empty.
func (c *Corpus) Vocabulary() *Vocabulary {
	return c.current().vocab
}

func (c *Corpus) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// rebuildLocked builds a new snapshot from docs and publishes it.
// On failure the previous snapshot stays in place. Caller holds c.mu.
func (c *Corpus) rebuildLocked(docs []document.Document) (err error) {
	if c.cfg.MaxDocuments > 0 && len(docs) > c.cfg.MaxDocuments {
		return fmt.Errorf("%w: %w", domain.ErrRebuildFailed, domain.NewCapacityError(c.cfg.MaxDocuments, len(docs)))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrRebuildFailed, r)
		}
	}()
	next := buildSnapshot(docs, c.tok, c.cfg.MaxFeatures, c.now())
	if c.rebuildHook != nil {
		c.rebuildHook(docs)
	}
	c.snap = next
	return nil
}
