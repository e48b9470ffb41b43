package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/tenantdex/internal/domain"
)

// MaxFilenameLength bounds the client supplied file name.
const MaxFilenameLength = 255

// Upload is a raw file handed over by the ingestion boundary.
type Upload struct {
	ID         string    `cbor:"id" json:"id"`
	Filename   string    `cbor:"filename" json:"filename"`
	Tenant     string    `cbor:"tenant" json:"tenant"`
	Data       []byte    `cbor:"data" json:"-"`
	ReceivedAt time.Time `cbor:"received_at" json:"received_at"`
}

// New validates an upload and assigns it an identifier of the form <uuid hex>_<filename>.
func New(tenant, filename string, data []byte, now time.Time) (Upload, error) {
	if tenant == "" {
		return Upload{}, fmt.Errorf("tenant is required: %w", domain.ErrInvalidDocument)
	}
	name := CleanFilename(filename)
	if name == "" {
		return Upload{}, fmt.Errorf("file name is required: %w", domain.ErrInvalidDocument)
	}
	if len(name) > MaxFilenameLength {
		return Upload{}, fmt.Errorf("file name too long (max %d): %w", MaxFilenameLength, domain.ErrInvalidDocument)
	}
	return Upload{
		ID:         NewID(name),
		Filename:   name,
		Tenant:     tenant,
		Data:       data,
		ReceivedAt: now.UTC(),
	}, nil
}

// NewID returns a fresh document identifier for an uploaded file.
func NewID(filename string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + filename
}

// CleanFilename strips any directory component from a client supplied name.
func CleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
