package port

import "ragcore/internal/domain"

// Extractor turns a file on disk into a Document with plain text.
// Implementations are registered per file extension; asking for an
// unregistered extension yields domain.ErrUnsupportedFormat.
type Extractor interface {
	Extract(path string) (domain.Document, error)
}
