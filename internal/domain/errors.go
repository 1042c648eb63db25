package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned by the extraction registry for file
	// extensions it has no extractor for.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidChunking is returned when chunking parameters would produce
	// a degenerate window (overlap >= chunk size, or a non-positive size).
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrSnapshotMissing is returned by Load when either snapshot artifact
	// does not exist. Callers treat it as "nothing to restore", not a fault.
	ErrSnapshotMissing = errors.New("snapshot artifacts not found")
)

// ExtractionError wraps a parser failure for a supported format.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError wraps a failure of the embedding model or its backend.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// DimensionMismatchError reports a vector whose width differs from the
// index's fixed dimension. The index rejects the whole batch before any row
// is appended.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}

// PersistenceError reports a corrupt or inconsistent snapshot artifact pair.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure at %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
