package index

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"ragcore/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestIndex(t *testing.T, dim int) *Flat {
	t.Helper()
	f, err := NewFlat(dim, "mock", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func rec(text string) domain.Record {
	return domain.Record{Text: text, Metadata: map[string]string{"filename": "a.txt"}}
}

func TestNewFlatRejectsBadDimension(t *testing.T) {
	if _, err := NewFlat(0, "mock", testLogger()); err == nil {
		t.Error("expected error for dimension 0")
	}
	if _, err := NewFlat(-3, "mock", testLogger()); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestAddAndSearchOrdering(t *testing.T) {
	f := newTestIndex(t, 2)

	vectors := [][]float32{
		{10, 0}, // far
		{1, 0},  // nearest to {0,0} after {0,1}? distances: 100, 1, 25
		{5, 0},
	}
	records := []domain.Record{rec("far"), rec("near"), rec("mid")}
	if err := f.Add(vectors, records); err != nil {
		t.Fatal(err)
	}

	hits, err := f.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}

	wantOrder := []string{"near", "mid", "far"}
	for i, hit := range hits {
		if hit.Text != wantOrder[i] {
			t.Errorf("hit %d: expected %q, got %q", i, wantOrder[i], hit.Text)
		}
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Errorf("distances not non-decreasing: %v then %v", hits[i-1].Distance, hits[i].Distance)
		}
	}

	// Raw squared L2, not normalized.
	if hits[0].Distance != 1 {
		t.Errorf("expected distance 1, got %v", hits[0].Distance)
	}
	if hits[2].Distance != 100 {
		t.Errorf("expected distance 100, got %v", hits[2].Distance)
	}
}

func TestSearchFewerRowsThanK(t *testing.T) {
	f := newTestIndex(t, 2)
	if err := f.Add([][]float32{{1, 1}, {2, 2}}, []domain.Record{rec("a"), rec("b")}); err != nil {
		t.Fatal(err)
	}

	hits, err := f.Search([]float32{0, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 hits for k=5 over 2 rows, got %d", len(hits))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	f := newTestIndex(t, 4)
	hits, err := f.Search([]float32{0, 0, 0, 0}, 5)
	if err != nil {
		t.Fatalf("empty index search must not fail: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected empty result, got %d hits", len(hits))
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	f := newTestIndex(t, 2)

	if _, err := f.Search([]float32{0, 0}, 0); err == nil {
		t.Error("expected error for k=0")
	}

	var dim *domain.DimensionMismatchError
	_, err := f.Search([]float32{0, 0, 0}, 1)
	if !errors.As(err, &dim) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}
}

func TestAddRejectsWithoutMutating(t *testing.T) {
	f := newTestIndex(t, 2)
	if err := f.Add([][]float32{{1, 2}}, []domain.Record{rec("keep")}); err != nil {
		t.Fatal(err)
	}

	// Length mismatch.
	err := f.Add([][]float32{{1, 2}, {3, 4}}, []domain.Record{rec("x")})
	if err == nil {
		t.Error("expected error for mismatched lengths")
	}

	// Wrong dimension in the middle of a batch.
	var dim *domain.DimensionMismatchError
	err = f.Add([][]float32{{1, 2}, {3, 4, 5}}, []domain.Record{rec("x"), rec("y")})
	if !errors.As(err, &dim) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}

	if f.Len() != 1 {
		t.Errorf("failed adds mutated the index: %d rows", f.Len())
	}
	hits, err := f.Search([]float32{1, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].Text != "keep" {
		t.Errorf("surviving row corrupted: %q", hits[0].Text)
	}
}

func TestAddNilRecordsSynthesized(t *testing.T) {
	f := newTestIndex(t, 2)
	if err := f.Add([][]float32{{1, 0}, {0, 1}}, nil); err != nil {
		t.Fatal(err)
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Len())
	}
	hits, err := f.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].Text != "" {
		t.Errorf("synthesized record should be empty, got %q", hits[0].Text)
	}
}

func TestAddEmptyIsNoOp(t *testing.T) {
	f := newTestIndex(t, 2)
	if err := f.Add(nil, nil); err != nil {
		t.Errorf("empty add must be a no-op, got %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("empty add changed row count: %d", f.Len())
	}
}

func TestStatsAndClear(t *testing.T) {
	f := newTestIndex(t, 3)

	stats := f.Stats()
	if stats.TotalChunks != 0 || stats.IndexSize != 0 {
		t.Errorf("empty index stats: %+v", stats)
	}
	if stats.EmbeddingDimension != 3 || stats.EmbeddingModel != "mock" {
		t.Errorf("stats identity wrong: %+v", stats)
	}

	if err := f.Add([][]float32{{1, 2, 3}, {4, 5, 6}}, nil); err != nil {
		t.Fatal(err)
	}
	stats = f.Stats()
	if stats.TotalChunks != 2 || stats.TotalDocuments != 2 || stats.IndexSize != 2 {
		t.Errorf("populated stats: %+v", stats)
	}

	f.Clear()
	if f.Len() != 0 {
		t.Errorf("clear left %d rows", f.Len())
	}
	if f.Dimension() != 3 {
		t.Errorf("clear changed dimension to %d", f.Dimension())
	}
	hits, err := f.Search([]float32{0, 0, 0}, 5)
	if err != nil || len(hits) != 0 {
		t.Errorf("cleared index search: %v, %d hits", err, len(hits))
	}
}
