package port

import "ragcore/internal/domain"

// Generator produces an answer from a query, the assembled context and the
// conversation so far. It is an external collaborator of the retrieval core;
// the engine only assembles its inputs.
type Generator interface {
	Generate(query, context string, history []domain.Turn) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
