package batch

import (
	"errors"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK("doc-1", "demo")
	if r.ID() != "doc-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Tenant() != "demo" {
		t.Errorf("Tenant() = %q", r.Tenant())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	r := NewError("doc-2", "acme", err)
	if r.ID() != "doc-2" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestTally(t *testing.T) {
	results := []Result{
		NewOK("a", "demo"),
		NewError("b", "demo", errors.New("bad")),
		NewOK("c", "demo"),
	}
	ok, failed := Tally(results)
	if ok != 2 || failed != 1 {
		t.Errorf("Tally() = (%d, %d), want (2, 1)", ok, failed)
	}

	ok, failed = Tally(nil)
	if ok != 0 || failed != 0 {
		t.Errorf("Tally(nil) = (%d, %d), want (0, 0)", ok, failed)
	}
}
