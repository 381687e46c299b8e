// Package prompt assembles the bounded context window handed to the LLM
// and renders the final instruction text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/avernet/docchat/chunker"
	"github.com/avernet/docchat/history"
	"github.com/avernet/docchat/intent"
	"github.com/avernet/docchat/parser"
)

// Passage selection limits.
const (
	maxHistoryEntries = 5
	maxPassages       = 5
	fallbackPassages  = 3
	metadataGate      = 0.3
	technicalGate     = 0.5
	comparisonGate    = 0.4
)

// Assembler builds the context window under a character budget.
type Assembler struct {
	maxContextLen int
}

// NewAssembler returns an Assembler with the given character budget for
// the document-content block. Zero or negative means the 8000 default.
func NewAssembler(maxContextLen int) *Assembler {
	if maxContextLen <= 0 {
		maxContextLen = 8000
	}
	return &Assembler{maxContextLen: maxContextLen}
}

// Assemble produces the bounded context string: an optional metadata
// block, an optional conversation block with continuity notes, and an
// optional document-content block, joined by blank lines. Parts that
// were not produced are omitted. The output is deterministic for
// identical inputs.
func (a *Assembler) Assemble(query string, passages []chunker.Passage, meta parser.Metadata, scores intent.Scores, chatHistory []history.Entry) string {
	var parts []string

	if scores.MetadataQuery > metadataGate {
		parts = append(parts, FormatMetadata(meta))
	}

	if len(chatHistory) > 0 {
		recent := chatHistory
		if len(recent) > maxHistoryEntries {
			recent = recent[len(recent)-maxHistoryEntries:]
		}

		lines := make([]string, 0, len(recent))
		for _, e := range recent {
			lines = append(lines, strings.ToUpper(e.Type)+": "+e.Content)
		}
		parts = append(parts, "PREVIOUS CONVERSATION:\n"+strings.Join(lines, "\n"))

		queryLower := strings.ToLower(query)
		for _, e := range recent {
			if e.Type == history.TypeUser && sharesWord(queryLower, e.Content) {
				parts = append(parts, fmt.Sprintf(
					"NOTE: You previously asked about '%s', which may be related.", e.Content))
			}
		}
	}

	if len(passages) > 0 {
		parts = append(parts, "DOCUMENT CONTENT:\n"+a.documentContent(passages, scores))
	}

	return strings.Join(parts, "\n\n")
}

// documentContent selects, orders, and truncates passages for the
// document-content block.
func (a *Assembler) documentContent(passages []chunker.Passage, scores intent.Scores) string {
	sections := targetSections(scores)

	var relevant []chunker.Passage
	for _, p := range passages {
		if sections[p.Section] {
			relevant = append(relevant, p)
		}
	}
	if len(relevant) == 0 {
		// No passage matched the target sections: take the leading
		// passages in original order instead of returning nothing.
		relevant = passages
		if len(relevant) > fallbackPassages {
			relevant = relevant[:fallbackPassages]
		}
	}
	if len(relevant) > maxPassages {
		relevant = relevant[:maxPassages]
	}

	blocks := make([]string, 0, len(relevant))
	for _, p := range relevant {
		blocks = append(blocks, fmt.Sprintf("[Section: %s]\n%s", p.Section, p.Content))
	}
	return a.truncate(strings.Join(blocks, "\n\n"))
}

// truncate enforces the character budget, cutting at the last paragraph
// break before the limit when one exists.
func (a *Assembler) truncate(content string) string {
	if len(content) <= a.maxContextLen {
		return content
	}
	if cut := strings.LastIndex(content[:a.maxContextLen], "\n\n"); cut > 0 {
		return content[:cut]
	}
	return content[:a.maxContextLen]
}

// targetSections maps intent scores to the section labels worth retrieving.
func targetSections(scores intent.Scores) map[string]bool {
	switch {
	case scores.TechnicalDetail > technicalGate:
		return map[string]bool{"methods": true, "results": true}
	case scores.Comparison > comparisonGate:
		return map[string]bool{"results": true, "discussion": true}
	default:
		return map[string]bool{"abstract": true, "introduction": true, "conclusion": true}
	}
}

// sharesWord reports whether any whitespace-delimited word of content
// appears in the lowercased query.
func sharesWord(queryLower, content string) bool {
	for _, word := range strings.Fields(strings.ToLower(content)) {
		if strings.Contains(queryLower, word) {
			return true
		}
	}
	return false
}

// FormatMetadata renders the metadata block included for metadata-leaning
// queries.
func FormatMetadata(meta parser.Metadata) string {
	lines := []string{"DOCUMENT METADATA:"}

	title := meta.Title
	if title == "" {
		title = parser.DefaultTitle
	}
	author := meta.Author
	if author == "" {
		author = parser.DefaultAuthor
	}
	lines = append(lines, "Title: "+title, "Author: "+author)

	if meta.TotalPages > 0 {
		lines = append(lines, fmt.Sprintf("Pages: %d", meta.TotalPages))
	} else {
		lines = append(lines, "Pages: Unknown")
	}
	if meta.IsResearch {
		lines = append(lines, "Type: Research paper")
	}
	if len(meta.Sections) > 0 {
		lines = append(lines, "Sections: "+strings.Join(meta.Sections, ", "))
	}
	return strings.Join(lines, "\n")
}
