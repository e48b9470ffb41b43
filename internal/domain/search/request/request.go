package request

import (
	"fmt"

	"github.com/kailas-cloud/tenantdex/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultTopK    = 3
	MaxTopK        = 50
	DefaultTenant  = "demo"
)

// Request is a validated, tenant-scoped search query.
type Request struct {
	query  string
	tenant string
	topK   int
}

// New validates and normalizes search parameters.
// An empty query is valid: it ranks every tenant document at zero.
// topK <= 0 falls back to DefaultTopK; values above maxTopK are clamped.
func New(query, tenant string, topK, maxTopK int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidRequest)
	}
	if tenant == "" {
		return Request{}, fmt.Errorf("tenant is required: %w", domain.ErrInvalidRequest)
	}
	if maxTopK <= 0 {
		maxTopK = MaxTopK
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}
	return Request{query: query, tenant: tenant, topK: topK}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// Tenant returns the tenant the search is scoped to.
func (r *Request) Tenant() string { return r.tenant }

// TopK returns the maximum number of results.
func (r *Request) TopK() int { return r.topK }

// IsEmpty reports whether the query carries no text.
func (r *Request) IsEmpty() bool { return r.query == "" }
