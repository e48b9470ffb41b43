package chi

import (
	"encoding/json"
	"net/http"

	"github.com/oapi-codegen/runtime"

	dombatch "github.com/kailas-cloud/tenantdex/internal/domain/batch"
	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	batchuc "github.com/kailas-cloud/tenantdex/internal/usecase/batch"
)

// bindSearchParams decodes the form-style query parameters of GET /api/v1/search.
func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &params.Q); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "tenant", query, &params.Tenant); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "top_k", query, &params.TopK); err != nil {
		return params, err
	}
	return params, nil
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	var q string
	if params.Q != nil {
		q = *params.Q
	}
	tenant := s.opts.DefaultTenant
	if params.Tenant != nil && *params.Tenant != "" {
		tenant = *params.Tenant
	}
	topK := 0
	if params.TopK != nil {
		topK = *params.TopK
	}

	req, err := request.New(q, tenant, topK, s.opts.MaxTopK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query(),
		Tenant:  req.Tenant(),
		Results: toSources(results),
	})
}

// BatchUpsert handles POST /api/v1/documents/batch.
func (s *Server) BatchUpsert(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "documents must not be empty")
		return
	}

	items := make([]batchuc.Item, len(req.Documents))
	for i, d := range req.Documents {
		items[i] = batchuc.Item{ID: d.ID, Title: d.Title, Text: d.Text, Tenant: d.Tenant}
	}
	results := s.batch.Add(r.Context(), items)

	resp := BatchResponse{Results: make([]BatchItemResult, len(results))}
	for i, res := range results {
		item := BatchItemResult{ID: res.ID(), Tenant: res.Tenant(), Status: string(res.Status())}
		if res.Err() != nil {
			msg := safeDomainMessage(res.Err())
			item.Error = &msg
		}
		resp.Results[i] = item
	}
	resp.Succeeded, resp.Failed = dombatch.Tally(results)

	status := http.StatusOK
	if resp.Failed > 0 && resp.Succeeded > 0 {
		status = http.StatusMultiStatus
	} else if resp.Failed > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// ResetDocuments handles DELETE /api/v1/documents.
func (s *Server) ResetDocuments(w http.ResponseWriter, r *http.Request) {
	s.ingest.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, _ *http.Request) {
	st := s.ingest.Stats()
	resp := StatsResponse{
		Documents:      st.Documents,
		Tenants:        st.Tenants,
		VocabularySize: st.VocabularySize,
	}
	if !st.BuiltAt.IsZero() {
		builtAt := st.BuiltAt
		resp.BuiltAt = &builtAt
	}
	writeJSON(w, http.StatusOK, resp)
}
