package domain

import "time"

// Document is the extracted form of one source file, immutable after chunking.
type Document struct {
	Filename string
	FileType string
	Text     string
}

// Chunk is a contiguous, possibly overlapping window of a document's text.
// ChunkIndex is assigned in left-to-right chunking order and is unique
// within one document's ingestion batch.
type Chunk struct {
	Text       string
	ChunkIndex int
	Filename   string
	FileType   string
}

// Record is the metadata stored alongside one vector row. The i-th record
// and the i-th vector in the index describe the same chunk.
type Record struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Hit is one search result: a stored chunk with its raw squared L2 distance
// to the query. Lower distance means more similar.
type Hit struct {
	Text     string
	Distance float32
	Metadata map[string]string
}

// Source identifies where a retrieved chunk came from. RelevanceScore is the
// raw distance passed through unmodified, so smaller values are better; the
// field name is kept for wire compatibility even though it reads backwards.
type Source struct {
	Filename       string  `json:"filename"`
	ChunkIndex     int     `json:"chunk_index"`
	RelevanceScore float32 `json:"relevance_score"`
}

// IngestResult reports the outcome of one document ingestion.
type IngestResult struct {
	Status        string `json:"status"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
	FileType      string `json:"file_type"`
	Message       string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Turn is one user/assistant exchange, passed through to the generation
// collaborator untouched. Bounding the history is the caller's policy.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// QueryResult is the assembled retrieval output for one query.
type QueryResult struct {
	Answer      string   `json:"answer"`
	Context     string   `json:"context"`
	Sources     []Source `json:"sources"`
	ContextUsed bool     `json:"context_used"`
}

// IndexStats is a derived view of the index state. TotalDocuments counts
// stored chunks, not distinct source files; it mirrors the wire field of the
// same name. DistinctFiles is the registry's count of ingested documents.
type IndexStats struct {
	TotalDocuments     int    `json:"total_documents"`
	TotalChunks        int    `json:"total_chunks"`
	IndexSize          int    `json:"index_size"`
	EmbeddingDimension int    `json:"embedding_dimension"`
	EmbeddingModel     string `json:"embedding_model"`
	DistinctFiles      int    `json:"distinct_files,omitempty"`
}

// DocumentInfo is the registry's record of one successful ingestion.
type DocumentInfo struct {
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}
