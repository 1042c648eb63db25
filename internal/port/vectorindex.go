package port

import "ragcore/internal/domain"

// VectorIndex stores embedding vectors with parallel metadata and answers
// exact nearest-neighbor queries. Implementations are not internally
// synchronized: a caller that interleaves Add, Search, Save or Load across
// goroutines must serialize externally.
type VectorIndex interface {
	// Add appends rows. Vectors and records must have equal length; every
	// vector must match the index dimension. The batch is rejected as a
	// whole before any row is appended. Nil records are synthesized 1:1.
	Add(vectors [][]float32, records []domain.Record) error

	// Search returns the min(k, stored) nearest rows by squared L2
	// distance, nearest first. An empty index yields an empty result,
	// never an error.
	Search(query []float32, k int) ([]domain.Hit, error)

	// Save writes the vector blob and the metadata list as a pair, each
	// atomically published.
	Save(indexPath, metaPath string) error

	// Load replaces the current state wholesale with a persisted pair.
	// A missing pair is reported as domain.ErrSnapshotMissing and leaves
	// the index untouched, as does any corrupt artifact.
	Load(indexPath, metaPath string) error

	// Clear discards all rows, keeping the dimension.
	Clear()

	Stats() domain.IndexStats
}
