package parser

import (
	"strings"
	"testing"
)

const samplePaperFirstPage = `Deep Learning for Document Understanding

John Smith, Maria Garcia
Department of Computer Science
Example University

Abstract
We present a method for understanding documents.
`

const samplePaperBody = `Abstract
We present a method for understanding documents.

1 Introduction
Document understanding is hard. See Figure 1 for an overview.

2 Methods
We trained a model. Figure 2 shows the architecture, and Figure 1 recurs.

3 Results
Accuracy improved by 12 percent.

4 Discussion
The approach generalizes.

References
[1] Smith, J.
`

func TestInferTitle(t *testing.T) {
	tests := []struct {
		name      string
		firstPage string
		want      string
	}{
		{"blank line after title", samplePaperFirstPage, "Deep Learning for Document Understanding"},
		{"abstract follows title", "A Study of Chunk Boundaries in Long Texts\nAbstract\nWe study...", "A Study of Chunk Boundaries in Long Texts"},
		{"numbered introduction follows", "Notes on Retrieval Heuristics Compared\n1 Introduction\nWe begin...", "Notes on Retrieval Heuristics Compared"},
		{"too short", "Short\n\nBody text follows here.", DefaultTitle},
		{"no candidate", "just a single stream of words with no structure at all", DefaultTitle},
		{"empty page", "", DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferTitle(tt.firstPage); got != tt.want {
				t.Errorf("inferTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferAuthor(t *testing.T) {
	tests := []struct {
		name      string
		firstPage string
		want      string
	}{
		{"before department", samplePaperFirstPage, "John Smith, Maria Garcia"},
		{"before university", "Some Title Line Goes Here\n\nAlice Wong\nExample University\n", "Alice Wong"},
		{"no affiliation anchor", "Bob Jones\nwrote this informally", DefaultAuthor},
		{"empty page", "", DefaultAuthor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferAuthor(tt.firstPage); got != tt.want {
				t.Errorf("inferAuthor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanSectionHeadings(t *testing.T) {
	got := scanSectionHeadings(samplePaperBody)
	want := []string{"abstract", "introduction", "methods", "results", "discussion", "references"}
	if len(got) != len(want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanSectionHeadingsIgnoresLongLines(t *testing.T) {
	text := "The introduction to this book spans a rather long sentence that should never be mistaken for a heading\n"
	if got := scanSectionHeadings(text); len(got) != 0 {
		t.Errorf("sections = %v, want none for prose lines", got)
	}
}

func TestLooksLikeResearch(t *testing.T) {
	if !looksLikeResearch([]string{"abstract"}) {
		t.Error("abstract alone should flag research")
	}
	if !looksLikeResearch([]string{"introduction", "methods"}) {
		t.Error("introduction+methods should flag research")
	}
	if looksLikeResearch([]string{"introduction"}) {
		t.Error("introduction alone should not flag research")
	}
	if looksLikeResearch(nil) {
		t.Error("no sections should not flag research")
	}
}

func TestCountFigureCaptions(t *testing.T) {
	// Figure 1 appears twice; distinct numbers are 1 and 2.
	if got := countFigureCaptions(samplePaperBody); got != 2 {
		t.Errorf("countFigureCaptions = %d, want 2", got)
	}
	if got := countFigureCaptions("no figures here"); got != 0 {
		t.Errorf("countFigureCaptions = %d, want 0", got)
	}
}

func TestFinishMetadata(t *testing.T) {
	res := &Result{
		Text:     samplePaperBody,
		Pages:    []string{samplePaperFirstPage},
		Metadata: DefaultMetadata(),
	}
	finishMetadata(res, "/tmp/paper.pdf")

	meta := res.Metadata
	if meta.Title != "Deep Learning for Document Understanding" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "John Smith, Maria Garcia" {
		t.Errorf("Author = %q", meta.Author)
	}
	if !meta.IsResearch {
		t.Error("IsResearch = false, want true")
	}
	if meta.FigureCount != 2 {
		t.Errorf("FigureCount = %d, want 2", meta.FigureCount)
	}
	if len(meta.Sections) == 0 || meta.Sections[0] != "abstract" {
		t.Errorf("Sections = %v", meta.Sections)
	}
}

func TestFinishMetadataKeepsExtractedValues(t *testing.T) {
	res := &Result{
		Text:     "Body without structure.",
		Pages:    []string{"Body without structure."},
		Metadata: Metadata{Title: "From The Info Dict", Author: "P. Producer"},
	}
	finishMetadata(res, "/tmp/report.pdf")

	if res.Metadata.Title != "From The Info Dict" {
		t.Errorf("Title = %q, want extractor value kept", res.Metadata.Title)
	}
	if res.Metadata.Author != "P. Producer" {
		t.Errorf("Author = %q, want extractor value kept", res.Metadata.Author)
	}
}

func TestFinishMetadataFilenameTitleIsReplaced(t *testing.T) {
	res := &Result{
		Text:     "",
		Pages:    []string{"A Perfectly Reasonable Title Line\n\nBody."},
		Metadata: Metadata{Title: "paper.pdf", Author: DefaultAuthor},
	}
	finishMetadata(res, "/uploads/paper.pdf")

	if res.Metadata.Title != "A Perfectly Reasonable Title Line" {
		t.Errorf("Title = %q, want inferred title over bare filename", res.Metadata.Title)
	}
}

func TestTitleLengthWindow(t *testing.T) {
	long := strings.Repeat("x", titleMaxLen+1)
	if got := inferTitle(long + "\n\nBody."); got != DefaultTitle {
		t.Errorf("inferTitle accepted a %d-char line", len(long))
	}
}
