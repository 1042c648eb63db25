// Package extract turns files into plain text, dispatching on file
// extension over a registry of per-format extractors.
package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ragcore/internal/domain"
	"ragcore/internal/port"
)

var _ port.Extractor = (*Registry)(nil)

// Func extracts plain text from one file of a known format.
type Func func(path string) (string, error)

// Registry maps lowercased file extensions to extractors. Unknown
// extensions are an explicit unsupported variant, not a silent fallthrough.
type Registry struct {
	extractors map[string]Func
}

// NewRegistry returns a registry with the built-in formats registered.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Func)}
	r.Register(".txt", extractText)
	r.Register(".text", extractText)
	r.Register(".md", extractMarkdown)
	r.Register(".markdown", extractMarkdown)
	r.Register(".csv", extractCSV)
	r.Register(".pdf", extractPDF)
	return r
}

// Register adds or replaces the extractor for an extension.
func (r *Registry) Register(ext string, fn Func) {
	r.extractors[strings.ToLower(ext)] = fn
}

// Extract dispatches on the file's extension and returns the extracted
// document. An unregistered extension yields domain.ErrUnsupportedFormat; a
// failing extractor yields a domain.ExtractionError.
func (r *Registry) Extract(path string) (domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := r.extractors[ext]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}

	text, err := fn(path)
	if err != nil {
		return domain.Document{}, &domain.ExtractionError{Filename: filepath.Base(path), Err: err}
	}

	return domain.Document{
		Filename: filepath.Base(path),
		FileType: ext,
		Text:     text,
	}, nil
}

// Supported returns the registered extensions, sorted.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
