package chunker

import (
	"errors"
	"strings"
	"testing"

	"ragcore/internal/domain"
)

func TestWindowChunkerRejectsBadParams(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero size", 0, 0},
		{"negative size", -5, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindowChunker(tt.chunkSize, tt.overlap)
			if err == nil {
				t.Fatalf("expected error for size=%d overlap=%d", tt.chunkSize, tt.overlap)
			}
			if !errors.Is(err, domain.ErrInvalidChunking) {
				t.Errorf("expected ErrInvalidChunking, got %v", err)
			}
		})
	}
}

func TestWindowChunkerOffsets(t *testing.T) {
	// 2500 chars with size 1000 and overlap 200 must start at 0, 800,
	// 1600, 2400; the last chunk is the 100-char tail.
	text := strings.Repeat("x", 2400) + strings.Repeat("y", 100)

	c, err := NewWindowChunker(1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk(text)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	wantLens := []int{1000, 1000, 1000, 100}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Errorf("chunk %d: expected length %d, got %d", i, wantLens[i], len(chunk))
		}
	}

	if chunks[3] != strings.Repeat("y", 100) {
		t.Error("last chunk is not the tail of the text")
	}
}

func TestWindowChunkerCoversText(t *testing.T) {
	tests := []struct {
		name      string
		textLen   int
		chunkSize int
		overlap   int
	}{
		{"exact multiple", 1000, 100, 0},
		{"with overlap", 1000, 100, 20},
		{"short text", 50, 100, 20},
		{"single char", 1, 100, 0},
		{"overlap one", 10, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.textLen)
			c, err := NewWindowChunker(tt.chunkSize, tt.overlap)
			if err != nil {
				t.Fatal(err)
			}

			chunks := c.Chunk(text)
			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk")
			}

			step := tt.chunkSize - tt.overlap
			total := 0
			for i, chunk := range chunks {
				start := i * step
				wantEnd := start + tt.chunkSize
				if wantEnd > tt.textLen {
					wantEnd = tt.textLen
				}
				if len(chunk) != wantEnd-start {
					t.Errorf("chunk %d: expected length %d, got %d", i, wantEnd-start, len(chunk))
				}
				total = wantEnd
			}
			if total != tt.textLen {
				t.Errorf("last chunk ends at %d, want %d", total, tt.textLen)
			}
		})
	}
}

func TestWindowChunkerEmptyText(t *testing.T) {
	c, err := NewWindowChunker(100, 10)
	if err != nil {
		t.Fatal(err)
	}
	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestWindowChunkerRunes(t *testing.T) {
	// Window positions count runes, not bytes.
	text := strings.Repeat("é", 10)
	c, err := NewWindowChunker(4, 1)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Chunk(text)
	for i, chunk := range chunks {
		n := len([]rune(chunk))
		if n > 4 {
			t.Errorf("chunk %d holds %d runes, window is 4", i, n)
		}
	}
}

func TestChunkDocumentIndexes(t *testing.T) {
	c, err := NewWindowChunker(5, 0)
	if err != nil {
		t.Fatal(err)
	}

	doc := domain.Document{
		Filename: "notes.txt",
		FileType: ".txt",
		Text:     "aaaaabbbbbccccc",
	}

	chunks := c.ChunkDocument(doc)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if chunk.Filename != "notes.txt" || chunk.FileType != ".txt" {
			t.Errorf("chunk %d lost its origin: %+v", i, chunk)
		}
	}
}
