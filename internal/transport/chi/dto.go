package chi

import "time"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodePayloadTooLarge   ErrorResponseCode = "payload_too_large"
	ErrorResponseCodeRebuildFailed     ErrorResponseCode = "rebuild_failed"
	ErrorResponseCodeCorpusFull        ErrorResponseCode = "corpus_full"
	ErrorResponseCodeSourceUnavailable ErrorResponseCode = "source_unavailable"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Tenant   string `json:"tenant"`
	Question string `json:"question"`
	TopK     *int   `json:"top_k,omitempty"`
}

// Source is a ranked document excerpt.
type Source struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// QueryResponse is the body returned by POST /query.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// IngestResponse is returned by POST /ingest.
type IngestResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Tenant string `json:"tenant"`
	Kind   string `json:"kind"`
}

// SearchParams are the query parameters of GET /api/v1/search.
type SearchParams struct {
	Q      *string
	Tenant *string
	TopK   *int
}

// SearchResponse is returned by GET /api/v1/search.
type SearchResponse struct {
	Query   string   `json:"query"`
	Tenant  string   `json:"tenant"`
	Results []Source `json:"results"`
}

// BatchDocument is a single document of a batch upsert.
type BatchDocument struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Tenant string `json:"tenant"`
}

// BatchRequest is the body of POST /api/v1/documents/batch.
type BatchRequest struct {
	Documents []BatchDocument `json:"documents"`
}

// BatchItemResult is the per-document outcome of a batch.
type BatchItemResult struct {
	ID     string  `json:"id"`
	Tenant string  `json:"tenant"`
	Status string  `json:"status"`
	Error  *string `json:"error,omitempty"`
}

// BatchResponse is returned by POST /api/v1/documents/batch.
type BatchResponse struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// StatsResponse is returned by GET /api/v1/stats.
type StatsResponse struct {
	Documents      int        `json:"documents"`
	Tenants        int        `json:"tenants"`
	VocabularySize int        `json:"vocabulary_size"`
	BuiltAt        *time.Time `json:"built_at,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents"`
}
