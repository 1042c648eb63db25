// Package index provides an exact flat vector index with paired metadata
// and snapshot persistence.
package index

import (
	"fmt"
	"log/slog"
	"sort"

	"ragcore/internal/domain"
	"ragcore/internal/port"
)

var _ port.VectorIndex = (*Flat)(nil)

// Flat is a brute-force exact nearest-neighbor index over squared L2
// distance. Vectors live in one contiguous slice with a parallel record
// list; the i-th row of both describes the same chunk, and every operation
// keeps that alignment.
//
// Flat is not internally synchronized. A caller that mixes Add, Search,
// Save or Load across goroutines must serialize them.
type Flat struct {
	dimension int
	model     string
	logger    *slog.Logger

	vectors []float32 // row-major, len == rows * dimension
	records []domain.Record
}

// NewFlat creates an empty index with a fixed dimension. The model name is
// carried for stats only.
func NewFlat(dimension int, model string, logger *slog.Logger) (*Flat, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dimension)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flat{
		dimension: dimension,
		model:     model,
		logger:    logger,
	}, nil
}

// Len returns the number of stored rows.
func (f *Flat) Len() int {
	return len(f.vectors) / f.dimension
}

// Dimension returns the fixed vector width of the index.
func (f *Flat) Dimension() int { return f.dimension }

// Add appends vectors with their records. The whole batch is validated
// before the first row is appended, so a failed Add never leaves the index
// partially mutated. Passing nil records synthesizes one empty record per
// vector.
func (f *Flat) Add(vectors [][]float32, records []domain.Record) error {
	if len(vectors) == 0 {
		f.logger.Warn("add called with no vectors")
		return nil
	}

	if records == nil {
		records = make([]domain.Record, len(vectors))
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("vectors and records length mismatch: %d != %d", len(vectors), len(records))
	}
	for _, v := range vectors {
		if len(v) != f.dimension {
			return &domain.DimensionMismatchError{Expected: f.dimension, Got: len(v)}
		}
	}

	for _, v := range vectors {
		f.vectors = append(f.vectors, v...)
	}
	f.records = append(f.records, records...)

	f.logger.Debug("rows appended", "count", len(vectors), "total", f.Len())
	return nil
}

// Search returns the min(k, stored) nearest rows, nearest first. Distances
// are raw squared L2 values, passed through unmodified.
func (f *Flat) Search(query []float32, k int) ([]domain.Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}
	if len(query) != f.dimension {
		return nil, &domain.DimensionMismatchError{Expected: f.dimension, Got: len(query)}
	}

	rows := f.Len()
	if rows == 0 {
		return []domain.Hit{}, nil
	}

	type scored struct {
		row      int
		distance float32
	}
	scores := make([]scored, rows)
	for i := 0; i < rows; i++ {
		row := f.vectors[i*f.dimension : (i+1)*f.dimension]
		scores[i] = scored{row: i, distance: squaredL2(query, row)}
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].distance < scores[j].distance
	})

	if k > rows {
		k = rows
	}
	hits := make([]domain.Hit, k)
	for i := 0; i < k; i++ {
		rec := f.records[scores[i].row]
		hits[i] = domain.Hit{
			Text:     rec.Text,
			Distance: scores[i].distance,
			Metadata: rec.Metadata,
		}
	}
	return hits, nil
}

// Clear discards all rows irreversibly, keeping the dimension. It does not
// touch any persisted snapshot.
func (f *Flat) Clear() {
	f.vectors = nil
	f.records = nil
	f.logger.Info("index cleared", "dimension", f.dimension)
}

// Stats returns a derived view of the index. TotalDocuments counts stored
// chunks, mirroring the wire field of the same name.
func (f *Flat) Stats() domain.IndexStats {
	rows := f.Len()
	return domain.IndexStats{
		TotalDocuments:     rows,
		TotalChunks:        rows,
		IndexSize:          rows,
		EmbeddingDimension: f.dimension,
		EmbeddingModel:     f.model,
	}
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
