package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/tenantdex/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("hello", "demo", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "hello" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Tenant() != "demo" {
		t.Errorf("Tenant() = %q", r.Tenant())
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("TopK() = %d, want %d", r.TopK(), DefaultTopK)
	}
}

func TestNew_ClampsTopK(t *testing.T) {
	r, err := New("q", "demo", 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != 10 {
		t.Errorf("TopK() = %d, want 10", r.TopK())
	}

	r, err = New("q", "demo", 1000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != MaxTopK {
		t.Errorf("TopK() = %d, want %d", r.TopK(), MaxTopK)
	}
}

func TestNew_NegativeTopK(t *testing.T) {
	r, err := New("q", "demo", -5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("TopK() = %d, want %d", r.TopK(), DefaultTopK)
	}
}

func TestNew_EmptyQueryAllowed(t *testing.T) {
	r, err := New("", "demo", 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), "demo", 3, 0)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_TenantRequired(t *testing.T) {
	_, err := New("q", "", 3, 0)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
