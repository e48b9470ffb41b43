package index

import (
	"time"

	"github.com/kailas-cloud/tenantdex/internal/domain/document"
)

// snapshot is an immutable, consistent view of the corpus.
// len(docs) == len(vectors); an empty snapshot has a nil vocabulary.
type snapshot struct {
	docs    []document.Document
	vectors []Vector
	vocab   *Vocabulary
	tenants int
	builtAt time.Time
}

var emptySnapshot = &snapshot{}

func (s *snapshot) empty() bool { return s.vocab == nil || len(s.docs) == 0 }

// buildSnapshot tokenizes docs, derives the vocabulary and weights every document.
func buildSnapshot(docs []document.Document, tok *Tokenizer, maxFeatures int, now time.Time) *snapshot {
	if len(docs) == 0 {
		return &snapshot{builtAt: now}
	}
	tokenized := make([][]string, len(docs))
	tenants := make(map[string]struct{})
	for i := range docs {
		tokenized[i] = tok.Tokenize(docs[i].Text())
		tenants[docs[i].Tenant()] = struct{}{}
	}
	vocab := BuildVocabulary(tokenized, maxFeatures)
	vectors := make([]Vector, len(docs))
	for i, tokens := range tokenized {
		vectors[i] = vocab.Vectorize(tokens)
	}
	return &snapshot{
		docs:    docs,
		vectors: vectors,
		vocab:   vocab,
		tenants: len(tenants),
		builtAt: now,
	}
}
