package tenantdex

import "github.com/kailas-cloud/tenantdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidDocument   = domain.ErrInvalidDocument
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrRebuildFailed     = domain.ErrRebuildFailed
	ErrCorpusFull        = domain.ErrCorpusFull
	ErrSourceUnavailable = domain.ErrSourceUnavailable
)
