package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument signals a document that failed validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRebuildFailed signals that a corpus rebuild did not complete.
	// The previously published index stays in place.
	ErrRebuildFailed = errors.New("index rebuild failed")
	// ErrCorpusFull signals that a mutation would exceed the configured corpus capacity.
	ErrCorpusFull = errors.New("corpus capacity exceeded")
	// ErrArchiveUnavailable signals an upload archive failure.
	ErrArchiveUnavailable = errors.New("upload archive unavailable")
	// ErrSourceUnavailable signals that the sample document folder could not be read.
	ErrSourceUnavailable = errors.New("document source unavailable")
)

// CapacityError wraps ErrCorpusFull with the limit that was hit.
type CapacityError struct {
	Limit     int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d documents requested, limit is %d", ErrCorpusFull.Error(), e.Requested, e.Limit)
}

func (e *CapacityError) Unwrap() error { return ErrCorpusFull }

// NewCapacityError creates a corpus capacity error.
func NewCapacityError(limit, requested int) error {
	return &CapacityError{Limit: limit, Requested: requested}
}
