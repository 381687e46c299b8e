package prompt

import (
	"fmt"
	"strings"

	"github.com/avernet/docchat/intent"
)

// Query phrasings that trigger extra prompt directives.
const (
	eli5Phrase     = "explain like i'm 5"
	prosConsPhrase = "advantages and disadvantages"
)

// Build combines the response style, assembled context, and raw query
// into the final instruction sent to the LLM.
func Build(query, context string, style intent.Style) string {
	var parts []string

	instruction := fmt.Sprintf(`You are an AI assistant with %s tone. Respond with:
- Depth: %s
- Structure: %s
- Style: Adapt to user's apparent knowledge level
- Instruction: If relevant, reference prior conversation to maintain continuity.`,
		style.Tone, style.Depth, style.Structure)
	if style.Structure == intent.StructureTable {
		instruction += "\nFormat comparisons or lists as markdown tables when helpful"
	}
	parts = append(parts, instruction)

	if context != "" {
		parts = append(parts, "CONTEXT:\n"+context)
	}
	parts = append(parts, "USER QUERY:\n"+query)

	queryLower := strings.ToLower(query)
	if strings.Contains(queryLower, eli5Phrase) {
		parts = append(parts, "USE: Simple analogies, avoid jargon, max 3 sentences")
	}
	if strings.Contains(queryLower, prosConsPhrase) {
		parts = append(parts, "STRUCTURE: Bullet points for pros/cons with 1-sentence explanations")
	}

	return strings.Join(parts, "\n\n")
}
