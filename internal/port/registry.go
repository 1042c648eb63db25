package port

import "ragcore/internal/domain"

// DocumentRegistry records which documents have been ingested. It is
// bookkeeping beside the index, not part of the search path.
type DocumentRegistry interface {
	PutDocument(info domain.DocumentInfo) error

	GetDocument(filename string) (domain.DocumentInfo, error)

	ListDocuments() ([]domain.DocumentInfo, error)

	// Clear removes every record.
	Clear() error

	Close() error
}
