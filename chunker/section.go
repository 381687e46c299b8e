package chunker

import (
	"regexp"
	"strings"
)

// SectionOther is the label for passages matching no section pattern.
const SectionOther = "other"

// sectionHead is how much of a passage is inspected for section keywords.
const sectionHead = 200

// sectionPatterns is evaluated in order; the first matching pattern wins.
// Reordering changes tagging outcomes, so the priority is fixed.
var sectionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"abstract", regexp.MustCompile(`abstract|summary`)},
	{"introduction", regexp.MustCompile(`introduction|background`)},
	{"methods", regexp.MustCompile(`method|methodology|approach|experiment`)},
	{"results", regexp.MustCompile(`result|finding|outcome|data`)},
	{"discussion", regexp.MustCompile(`discussion|conclusion|implication`)},
	{"references", regexp.MustCompile(`reference|bibliography`)},
	{"appendix", regexp.MustCompile(`appendix|supplement`)},
}

// tagSection assigns a section label by scanning the lowercased first
// sectionHead characters of the passage.
func tagSection(content string) string {
	head := strings.ToLower(content)
	if runes := []rune(head); len(runes) > sectionHead {
		head = string(runes[:sectionHead])
	}
	for _, p := range sectionPatterns {
		if p.re.MatchString(head) {
			return p.name
		}
	}
	return SectionOther
}
