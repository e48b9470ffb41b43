package document

import (
	"fmt"

	"github.com/kailas-cloud/tenantdex/internal/domain"
)

// Document size and identifier limits.
const (
	// MaxContentSize bounds the text of documents submitted through the batch API.
	MaxContentSize = 163840 // 160KB
	MaxIDLength    = 512
	MaxTitleLength = 1024
	MaxTenantLen   = 256
)

// Document is an indexed document (immutable value object).
type Document struct {
	id      string
	title   string
	tenant  string
	content Content
}

// New validates and creates a Document.
// ID and tenant are required; the ID is opaque and may repeat across documents.
func New(id, title, tenant string, content Content) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required: %w", domain.ErrInvalidDocument)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d): %w", MaxIDLength, domain.ErrInvalidDocument)
	}
	if tenant == "" {
		return Document{}, fmt.Errorf("tenant is required: %w", domain.ErrInvalidDocument)
	}
	if len(tenant) > MaxTenantLen {
		return Document{}, fmt.Errorf("tenant too long (max %d): %w", MaxTenantLen, domain.ErrInvalidDocument)
	}
	if len(title) > MaxTitleLength {
		return Document{}, fmt.Errorf("title too long (max %d): %w", MaxTitleLength, domain.ErrInvalidDocument)
	}
	return Document{id: id, title: title, tenant: tenant, content: content}, nil
}

// NewBounded is New with an upper bound on the text size in bytes.
func NewBounded(id, title, tenant string, content Content, maxSize int) (Document, error) {
	if len(content.text) > maxSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes): %w", maxSize, domain.ErrInvalidDocument)
	}
	return New(id, title, tenant, content)
}

// Reconstruct creates a Document without validation (trusted sources, tests).
func Reconstruct(id, title, tenant string, content Content) Document {
	return Document{id: id, title: title, tenant: tenant, content: content}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the display title.
func (d *Document) Title() string { return d.title }

// Tenant returns the tenant the document belongs to.
func (d *Document) Tenant() string { return d.tenant }

// Content returns the document body.
func (d *Document) Content() Content { return d.content }

// Text returns the text used for indexing and snippets.
func (d *Document) Text() string { return d.content.IndexText() }
