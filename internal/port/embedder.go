package port

// Embedder maps text to fixed-dimension dense vectors.
type Embedder interface {
	// Encode generates one embedding per input text, in input order.
	// It is deterministic for a fixed model identity and input.
	Encode(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension. It is fixed for
	// the lifetime of the embedder.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
