package parser

import "context"

// Result is what an extractor produces from a document file.
type Result struct {
	Text     string   // Full plain text of the document
	Pages    []string // Per-page text (DOCX yields a single page)
	Metadata Metadata
}

// Metadata describes a loaded document. It is always usable: a missing or
// unreadable file degrades to the defaults rather than a nil value.
type Metadata struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	TotalPages    int      `json:"total_pages,omitempty"` // 0 = unknown
	IsResearch    bool     `json:"is_research"`
	Sections      []string `json:"sections,omitempty"`
	FigureCount   int      `json:"figure_count,omitempty"`
	ImageCount    int      `json:"image_count,omitempty"`
	TableCount    int      `json:"table_count,omitempty"`
	ExtractedText string   `json:"extracted_text"`
}

const (
	DefaultTitle  = "Untitled Document"
	DefaultAuthor = "Unknown Author"
)

// DefaultMetadata returns the metadata used when no document is available.
func DefaultMetadata() Metadata {
	return Metadata{Title: DefaultTitle, Author: DefaultAuthor}
}

// Extractor can extract text and base metadata from a specific file format.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Result, error)
	SupportedFormats() []string
}
