package docchat

import (
	"fmt"
	"strings"

	"github.com/avernet/docchat/parser"
)

// metadataAnswer pairs a keyword predicate with its templated answer.
// The slice is evaluated in order and the first match wins; reordering
// changes which answer a mixed query receives.
type metadataAnswer struct {
	matches func(queryLower string) bool
	answer  func(meta parser.Metadata) string
}

var metadataAnswers = []metadataAnswer{
	{
		matches: containsAny("author"),
		answer: func(meta parser.Metadata) string {
			author := meta.Author
			if author == "" {
				author = parser.DefaultAuthor
			}
			return fmt.Sprintf("The author is %s.", author)
		},
	},
	{
		matches: containsAny("title"),
		answer: func(meta parser.Metadata) string {
			title := meta.Title
			if title == "" {
				title = parser.DefaultTitle
			}
			return fmt.Sprintf("The title is '%s'.", title)
		},
	},
	{
		matches: containsAny("pages", "length"),
		answer: func(meta parser.Metadata) string {
			if meta.TotalPages > 0 {
				return fmt.Sprintf("The document has %d pages.", meta.TotalPages)
			}
			return "The document has an unknown number of pages."
		},
	},
	{
		matches: containsAny("figure", "image"),
		answer: func(meta parser.Metadata) string {
			return fmt.Sprintf("There are %d figures and %d images.", meta.FigureCount, meta.ImageCount)
		},
	},
	{
		matches: containsAny("table"),
		answer: func(meta parser.Metadata) string {
			return fmt.Sprintf("The document contains %d tables.", meta.TableCount)
		},
	},
	{
		matches: containsAny("sections", "contents"),
		answer: func(meta parser.Metadata) string {
			if len(meta.Sections) > 0 {
				return "Main sections: " + strings.Join(meta.Sections, ", ")
			}
			return "The document structure information isn't available."
		},
	},
}

// resolveMetadataQuery answers simple factual questions directly from
// document metadata. It returns false when no keyword category matched,
// in which case the caller proceeds with the full pipeline.
func resolveMetadataQuery(query string, meta parser.Metadata) (string, bool) {
	queryLower := strings.ToLower(query)
	for _, ma := range metadataAnswers {
		if ma.matches(queryLower) {
			return ma.answer(meta), true
		}
	}
	return "", false
}

func containsAny(terms ...string) func(string) bool {
	return func(queryLower string) bool {
		for _, t := range terms {
			if strings.Contains(queryLower, t) {
				return true
			}
		}
		return false
	}
}
