package embedding

import "ragcore/internal/port"

var _ port.Embedder = (*MockEmbedder)(nil)

// MockEmbedder produces deterministic vectors from the text itself. It
// exists for tests and offline runs; similar prefixes embed close together,
// which is enough to exercise ranking.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Encode(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, e.dimension)
		for j, r := range text {
			if j >= e.dimension {
				break
			}
			v[j] = float32(r) / 1000.0
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
