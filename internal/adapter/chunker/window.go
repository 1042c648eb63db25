package chunker

import (
	"fmt"

	"ragcore/internal/domain"
)

// WindowChunker splits text into overlapping fixed-size windows of runes.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

// NewWindowChunker validates the window parameters once so every later
// Chunk call is a pure function of its input. overlap must be smaller than
// chunkSize or the window would never advance.
func NewWindowChunker(chunkSize, overlap int) (*WindowChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", domain.ErrInvalidChunking, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d with chunk size %d", domain.ErrInvalidChunking, overlap, chunkSize)
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk returns the sliding windows of text in left-to-right order. Each
// window spans [start, start+chunkSize) clipped to the text length; starts
// are chunkSize-overlap apart. The final chunk may be shorter.
func (c *WindowChunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// ChunkDocument chunks a document's text and tags each window with its
// origin, assigning chunk indexes in chunking order.
func (c *WindowChunker) ChunkDocument(doc domain.Document) []domain.Chunk {
	texts := c.Chunk(doc.Text)
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			Text:       text,
			ChunkIndex: i,
			Filename:   doc.Filename,
			FileType:   doc.FileType,
		}
	}
	return chunks
}

// Size returns the configured window size.
func (c *WindowChunker) Size() int { return c.chunkSize }

// Overlap returns the configured window overlap.
func (c *WindowChunker) Overlap() int { return c.overlap }
