package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Title inference window. These are heuristics, not sacred thresholds:
// papers typeset with unusual front matter may need different bounds.
const (
	titleMinLen = 10
	titleMaxLen = 100
)

// titleRe matches a candidate title line on the first page: a line of
// titleMinLen..titleMaxLen characters immediately followed by a blank
// line, an "Abstract" heading, or a numbered "Introduction" heading.
var titleRe = regexp.MustCompile(fmt.Sprintf(
	`(?m)^([^\n]{%d,%d})\n(?:\n|Abstract\b|\d+\s+Introduction\b)`, titleMinLen, titleMaxLen))

// authorRe matches a capitalized name-like line that precedes an
// affiliation line (Department/University) or an Abstract heading.
var authorRe = regexp.MustCompile(
	`(?m)^([A-Z][\w .,]+(?:,\s*[A-Z][\w .,]+)*)\n(?:[A-Za-z ]*(?:Department|University)|\nAbstract)`)

// figureRe matches figure captions such as "Figure 3" or "Fig. 2".
var figureRe = regexp.MustCompile(`(?i)\bfig(?:ure)?\.?\s+(\d+)`)

// headingRe matches standalone section headings, optionally numbered.
var headingRe = regexp.MustCompile(
	`^(?:\d+[.\s]+)?(abstract|introduction|background|methods?|methodology|results?|discussion|conclusions?|references|bibliography|appendix)\b`)

// finishMetadata completes extractor output with the inference heuristics:
// title and author from the first page, section headings, the research
// flag, and the figure-caption count.
func finishMetadata(res *Result, path string) {
	meta := &res.Metadata

	firstPage := ""
	if len(res.Pages) > 0 {
		firstPage = res.Pages[0]
	}

	if meta.Title == "" || meta.Title == DefaultTitle || meta.Title == filepath.Base(path) {
		meta.Title = inferTitle(firstPage)
	}
	if meta.Author == "" || meta.Author == DefaultAuthor || meta.Author == "Unknown" {
		meta.Author = inferAuthor(firstPage)
	}

	meta.Sections = scanSectionHeadings(res.Text)
	meta.IsResearch = looksLikeResearch(meta.Sections)
	if meta.FigureCount == 0 {
		meta.FigureCount = countFigureCaptions(res.Text)
	}
}

// inferTitle searches the first page for a title-shaped line.
func inferTitle(firstPage string) string {
	if m := titleRe.FindStringSubmatch(firstPage); m != nil {
		return strings.TrimSpace(m[1])
	}
	return DefaultTitle
}

// inferAuthor searches the first page for a name line above an affiliation.
func inferAuthor(firstPage string) string {
	if m := authorRe.FindStringSubmatch(firstPage); m != nil {
		return strings.TrimSpace(m[1])
	}
	return DefaultAuthor
}

// scanSectionHeadings collects recognized top-level headings in document
// order, deduplicated.
func scanSectionHeadings(text string) []string {
	var sections []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 60 {
			continue
		}
		m := headingRe.FindStringSubmatch(strings.ToLower(line))
		if m == nil {
			continue
		}
		name := m[1]
		if !seen[name] {
			seen[name] = true
			sections = append(sections, name)
		}
	}
	return sections
}

// looksLikeResearch reports whether the heading structure resembles a
// research paper.
func looksLikeResearch(sections []string) bool {
	has := make(map[string]bool, len(sections))
	for _, s := range sections {
		has[s] = true
	}
	if has["abstract"] {
		return true
	}
	return has["introduction"] && (has["methods"] || has["method"] || has["methodology"] || has["results"] || has["result"])
}

// countFigureCaptions counts distinct figure numbers referenced in the text.
func countFigureCaptions(text string) int {
	seen := make(map[string]bool)
	for _, m := range figureRe.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	return len(seen)
}
