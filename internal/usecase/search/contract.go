package search

import "github.com/kailas-cloud/tenantdex/internal/domain/search/result"

// Ranker ranks tenant documents against a free-text query.
type Ranker interface {
	Query(text, tenant string, topK int) []result.Result
}
