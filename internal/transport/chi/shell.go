package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/tenantdex/internal/usecase/search"
)

// multipartOverhead leaves room for form boundaries and the tenant field.
const multipartOverhead = 1 << 20

// SampleDocsLoaded is the body returned by GET /ingest_sample.
const SampleDocsLoaded = "Sample docs loaded."

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.opts.StaticDir, "index.html"))
}

// Static serves files under /static/ from the web directory.
func (s *Server) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir)))
}

// Ingest handles POST /ingest with multipart fields "tenant" and "file".
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodePayloadTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Failed to read file: "+err.Error())
		return
	}

	receipt, err := s.ingest.Upload(r.Context(), r.FormValue("tenant"), header.Filename, data)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Status: "ok",
		ID:     receipt.ID,
		Tenant: receipt.Tenant,
		Kind:   string(receipt.Kind),
	})
}

// IngestSample handles GET /ingest_sample: the corpus is replaced by the sample folder.
func (s *Server) IngestSample(w http.ResponseWriter, r *http.Request) {
	n, err := s.ingest.ReloadSamples(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.requestLogger(r).Debug("samples reloaded", zap.Int("documents", n))
	writeJSON(w, http.StatusOK, SampleDocsLoaded)
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusOK, QueryResponse{Answer: "", Sources: []Source{}})
		return
	}
	if req.Tenant == "" {
		req.Tenant = s.opts.DefaultTenant
	}
	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}

	sreq, err := request.New(req.Question, req.Tenant, topK, s.opts.MaxTopK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	results, err := s.search.Search(r.Context(), &sreq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Answer:  searchuc.Answer(results),
		Sources: toSources(results),
	})
}
