// Package chunker splits extracted document text into overlapping,
// section-tagged passages suitable for context assembly.
package chunker

import "strings"

// Passage is a bounded slice of document text with an inferred section label.
type Passage struct {
	Content string `json:"content"`
	Section string `json:"section"`
}

// Config controls the chunking behaviour.
type Config struct {
	ChunkSize    int // Target characters per passage.
	ChunkOverlap int // Characters shared with the previous passage.
}

// Chunker converts document text into passages.
type Chunker struct {
	cfg Config
}

// New returns a Chunker with the given configuration.
// Zero-value fields are replaced with sensible defaults.
func New(cfg Config) *Chunker {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 4
	}
	return &Chunker{cfg: cfg}
}

// Break-point preference for chunk boundaries, most desirable first.
// The final fallback is a hard cut at the size limit, so chunking never
// fails to produce bounded passages.
var separators = []string{"\n\n", "\n", ". ", "? ", "! ", " "}

// Split chunks text into overlapping passages and tags each with its
// inferred section. Empty input yields no passages.
func (c *Chunker) Split(text string) []Passage {
	fragments := c.fragments(text)
	passages := make([]Passage, 0, len(fragments))
	for _, frag := range fragments {
		passages = append(passages, Passage{
			Content: frag,
			Section: tagSection(frag),
		})
	}
	return passages
}

// fragments walks the text producing pieces of at most ChunkSize
// characters, preferring to cut at the highest-priority separator found
// in the window, with ChunkOverlap characters carried into the next piece.
func (c *Chunker) fragments(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.cfg.ChunkSize {
		return []string{text}
	}

	var out []string
	start := 0
	for start < len(text) {
		end := start + c.cfg.ChunkSize
		if end >= len(text) {
			if frag := strings.TrimSpace(text[start:]); frag != "" {
				out = append(out, frag)
			}
			break
		}

		cut := boundary(text[start:end])
		if frag := strings.TrimSpace(text[start : start+cut]); frag != "" {
			out = append(out, frag)
		}

		next := start + cut - c.cfg.ChunkOverlap
		if next <= start {
			next = start + cut
		}
		start = next
	}
	return out
}

// boundary returns the cut position within window: the end of the last
// occurrence of the most preferred separator, or the full window length
// when no separator is present.
func boundary(window string) int {
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return idx + len(sep)
		}
	}
	return len(window)
}
