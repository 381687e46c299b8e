// Package intent scores queries against five fixed question categories
// and derives response-style directives from the scores.
package intent

import (
	"regexp"
	"strings"
)

// Scores holds the normalized weight of each intent category. Values are
// non-negative and sum to 1.0, except when no keyword or pattern matched
// at all, in which case every value is 0.
type Scores struct {
	CasualChat      float64 `json:"casual_chat"`
	SummaryRequest  float64 `json:"summary_request"`
	TechnicalDetail float64 `json:"technical_detail"`
	Comparison      float64 `json:"comparison"`
	MetadataQuery   float64 `json:"metadata_query"`
}

// keywordWeight is added per matched keyword from a category's list.
const keywordWeight = 0.3

var (
	casualKeywords     = []string{"hi", "hello", "hey", "what's up", "how are you"}
	summaryKeywords    = []string{"summarize", "overview", "main points", "tl;dr"}
	technicalKeywords  = []string{"method", "result", "data", "analysis", "how does"}
	comparisonKeywords = []string{"vs", "versus", "compare", "difference", "similarity"}
	metadataKeywords   = []string{"author", "title", "date", "pages", "figure", "table"}
)

// explainRe adds a casual-chat bonus for "explain like/to ..." phrasings.
var explainRe = regexp.MustCompile(`explain (like|to) (a|me|i'm)`)

// prosConsRe adds a comparison bonus for advantage/disadvantage wording.
var prosConsRe = regexp.MustCompile(`\b(advantage|disadvantage|pros?|cons?)\b`)

// Classify scores a query across the five intent categories. Keyword hits
// are case-insensitive substring matches against the full query.
func Classify(query string) Scores {
	q := strings.ToLower(query)

	var s Scores
	s.CasualChat = keywordScore(q, casualKeywords)
	s.SummaryRequest = keywordScore(q, summaryKeywords)
	s.TechnicalDetail = keywordScore(q, technicalKeywords)
	s.Comparison = keywordScore(q, comparisonKeywords)
	s.MetadataQuery = keywordScore(q, metadataKeywords)

	if explainRe.MatchString(q) {
		s.CasualChat += 0.5
	}
	if prosConsRe.MatchString(q) {
		s.Comparison += 0.4
	}

	total := s.CasualChat + s.SummaryRequest + s.TechnicalDetail + s.Comparison + s.MetadataQuery
	if total > 0 {
		s.CasualChat /= total
		s.SummaryRequest /= total
		s.TechnicalDetail /= total
		s.Comparison /= total
		s.MetadataQuery /= total
	}
	return s
}

func keywordScore(query string, keywords []string) float64 {
	score := 0.0
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			score += keywordWeight
		}
	}
	return score
}
