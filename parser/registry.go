package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is wrapped into the error returned for extensions
// without a registered extractor.
var ErrUnknownFormat = fmt.Errorf("parser: unknown format")

// Registry maps file formats to their extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry returns a registry with the built-in PDF and DOCX extractors.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	for _, e := range []Extractor{&PDFExtractor{}, &DOCXExtractor{}} {
		for _, f := range e.SupportedFormats() {
			r.extractors[f] = e
		}
	}
	return r
}

// Register adds or replaces the extractor for a format.
func (r *Registry) Register(format string, e Extractor) {
	r.extractors[format] = e
}

// Get returns the extractor for a format.
func (r *Registry) Get(format string) (Extractor, error) {
	e, ok := r.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return e, nil
}

// ExtractFile dispatches on the file extension, extracts text and base
// metadata, and completes the metadata with the inference heuristics
// (title, author, sections, research flag, figure count).
func (r *Registry) ExtractFile(ctx context.Context, path string) (*Result, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	e, err := r.Get(ext)
	if err != nil {
		return nil, err
	}

	res, err := e.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", ext, err)
	}

	finishMetadata(res, path)
	return res, nil
}
