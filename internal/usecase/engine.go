// Package usecase wires extraction, chunking, embedding and the vector
// index into the ingestion and query pipelines.
package usecase

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ragcore/internal/adapter/chunker"
	"ragcore/internal/domain"
	"ragcore/internal/port"
)

// DefaultTopK is used when a query does not specify how many chunks to
// retrieve.
const DefaultTopK = 5

// Engine orchestrates the retrieval pipelines. Its lifetime is owned by the
// caller; construct one per index and pass it by reference.
//
// Engine does not synchronize access to the index: callers that ingest and
// query concurrently against the same instance must serialize externally.
type Engine struct {
	extractor port.Extractor
	chunker   *chunker.WindowChunker
	embedder  port.Embedder
	index     port.VectorIndex
	registry  port.DocumentRegistry // optional
	generator port.Generator        // optional
	indexPath string
	metaPath  string
	logger    *slog.Logger
}

// NewEngine assembles an engine and restores any existing snapshot. A
// missing snapshot is logged and ignored; a corrupt one is logged and the
// engine starts empty. registry and generator may be nil.
func NewEngine(
	extractor port.Extractor,
	chk *chunker.WindowChunker,
	embedder port.Embedder,
	index port.VectorIndex,
	registry port.DocumentRegistry,
	generator port.Generator,
	indexPath, metaPath string,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		extractor: extractor,
		chunker:   chk,
		embedder:  embedder,
		index:     index,
		registry:  registry,
		generator: generator,
		indexPath: indexPath,
		metaPath:  metaPath,
		logger:    logger,
	}

	if err := index.Load(indexPath, metaPath); err != nil {
		e.logger.Warn("could not load existing snapshot", "error", err)
	}

	return e
}

// Ingest runs extract, chunk, embed, add and save for one document. The
// index is only mutated after the entire document embedded successfully; a
// failed save leaves the in-memory index correct and is reported without
// being retried. Failures come back as structured error results, never as
// raw errors.
func (e *Engine) Ingest(path string) domain.IngestResult {
	e.logger.Info("ingesting document", "path", path)

	doc, err := e.extractor.Extract(path)
	if err != nil {
		e.logger.Error("ingestion failed", "path", path, "error", err)
		return domain.IngestResult{Status: domain.StatusError, Message: err.Error()}
	}

	chunks := e.chunker.ChunkDocument(doc)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := e.embedder.Encode(texts)
	if err != nil {
		e.logger.Error("ingestion failed", "filename", doc.Filename, "error", err)
		return domain.IngestResult{Status: domain.StatusError, Message: err.Error()}
	}
	if len(vectors) != len(chunks) {
		err := fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		e.logger.Error("ingestion failed", "filename", doc.Filename, "error", err)
		return domain.IngestResult{Status: domain.StatusError, Message: err.Error()}
	}

	records := make([]domain.Record, len(chunks))
	for i, c := range chunks {
		records[i] = domain.Record{
			Text: c.Text,
			Metadata: map[string]string{
				"filename":    c.Filename,
				"file_type":   c.FileType,
				"chunk_index": strconv.Itoa(c.ChunkIndex),
			},
		}
	}

	if err := e.index.Add(vectors, records); err != nil {
		e.logger.Error("ingestion failed", "filename", doc.Filename, "error", err)
		return domain.IngestResult{Status: domain.StatusError, Message: err.Error()}
	}

	result := domain.IngestResult{
		Status:        domain.StatusSuccess,
		Filename:      doc.Filename,
		ChunksCreated: len(chunks),
		FileType:      doc.FileType,
	}

	if err := e.index.Save(e.indexPath, e.metaPath); err != nil {
		// The in-memory index is correct; the next successful save will
		// also commit these rows.
		e.logger.Error("failed to save snapshot", "error", err)
		result.Message = fmt.Sprintf("index updated but snapshot not saved: %v", err)
	}

	if e.registry != nil {
		info := domain.DocumentInfo{
			Filename:   doc.Filename,
			FileType:   doc.FileType,
			ChunkCount: len(chunks),
			IngestedAt: time.Now().UTC(),
		}
		if err := e.registry.PutDocument(info); err != nil {
			e.logger.Warn("failed to record document", "filename", doc.Filename, "error", err)
		}
	}

	e.logger.Info("ingestion complete", "filename", doc.Filename, "chunks", len(chunks))
	return result
}

// Query embeds the query, searches the index and assembles the context
// string and source list in search order. Conversation history is passed
// through to the generator untouched. Any failure yields an empty context
// with ContextUsed false instead of an error.
func (e *Engine) Query(query string, k int, history []domain.Turn) domain.QueryResult {
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := e.embedder.Encode([]string{query})
	if err != nil || len(vectors) != 1 {
		e.logger.Error("query embedding failed", "error", err)
		return domain.QueryResult{ContextUsed: false}
	}

	hits, err := e.index.Search(vectors[0], k)
	if err != nil {
		e.logger.Error("search failed", "error", err)
		return domain.QueryResult{ContextUsed: false}
	}

	texts := make([]string, len(hits))
	sources := make([]domain.Source, len(hits))
	for i, hit := range hits {
		texts[i] = hit.Text
		chunkIndex, _ := strconv.Atoi(hit.Metadata["chunk_index"])
		sources[i] = domain.Source{
			Filename:       hit.Metadata["filename"],
			ChunkIndex:     chunkIndex,
			RelevanceScore: hit.Distance,
		}
	}

	result := domain.QueryResult{
		Context:     strings.Join(texts, "\n\n"),
		Sources:     sources,
		ContextUsed: len(hits) > 0,
	}

	if e.generator != nil {
		answer, err := e.generator.Generate(query, result.Context, history)
		if err != nil {
			e.logger.Error("answer generation failed", "error", err)
			return domain.QueryResult{ContextUsed: false}
		}
		result.Answer = answer
	}

	e.logger.Info("query complete", "results", len(hits), "context_used", result.ContextUsed)
	return result
}

// Stats reports the index view plus the registry's distinct document count.
func (e *Engine) Stats() domain.IndexStats {
	stats := e.index.Stats()
	if e.registry != nil {
		if docs, err := e.registry.ListDocuments(); err == nil {
			stats.DistinctFiles = len(docs)
		}
	}
	return stats
}

// Documents lists the registry's ingestion records.
func (e *Engine) Documents() ([]domain.DocumentInfo, error) {
	if e.registry == nil {
		return nil, nil
	}
	return e.registry.ListDocuments()
}

// Clear empties the index, deletes the snapshot artifacts and wipes the
// registry. The discarded rows are unrecoverable.
func (e *Engine) Clear() error {
	e.index.Clear()

	for _, path := range []string{e.indexPath, e.metaPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove snapshot artifact %s: %w", path, err)
		}
	}

	if e.registry != nil {
		if err := e.registry.Clear(); err != nil {
			return fmt.Errorf("failed to clear registry: %w", err)
		}
	}

	e.logger.Info("corpus cleared")
	return nil
}
