package index

import (
	"sort"

	"github.com/kailas-cloud/tenantdex/internal/domain/search/result"
)

type scored struct {
	idx   int
	score float64
}

// Query returns up to topK documents of tenant ranked by cosine similarity
// to text. topK <= 0 uses the configured default.
//
// When no tenant document shares a term with the query the result is empty;
// otherwise zero-score documents may fill the remaining slots.
func (c *Corpus) Query(text, tenant string, topK int) []result.Result {
	s := c.current()
	if s.empty() {
		return nil
	}
	if topK <= 0 {
		topK = c.cfg.DefaultTopK
	}
	if topK <= 0 {
		topK = 1
	}

	q := s.vocab.Vectorize(c.tok.Tokenize(text))

	candidates := make([]scored, 0)
	matched := false
	for i := range s.docs {
		if s.docs[i].Tenant() != tenant {
			continue
		}
		sc := Cosine(q, s.vectors[i])
		if sc > 0 {
			matched = true
		}
		candidates = append(candidates, scored{idx: i, score: sc})
	}
	if !matched {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	out := make([]result.Result, len(candidates))
	for i, cand := range candidates {
		d := s.docs[cand.idx]
		out[i] = result.New(d.ID(), d.Title(), Snippet(d.Text()), cand.score)
	}
	return out
}
