package parser

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXExtractor reads word/document.xml straight out of the ZIP container.
type DOCXExtractor struct{}

func (e *DOCXExtractor) SupportedFormats() []string { return []string{"docx"} }

func (e *DOCXExtractor) Extract(ctx context.Context, path string) (*Result, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	fileIndex := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileIndex[f.Name] = f
	}

	docFile := fileIndex["word/document.xml"]
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in DOCX")
	}

	data, err := readZipFile(docFile)
	if err != nil {
		return nil, err
	}

	var doc docxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	var full strings.Builder
	for _, para := range doc.Body.Paras {
		text := extractParaText(para)
		if text == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString("\n\n")
		}
		full.WriteString(text)
	}

	res := &Result{
		Text:     full.String(),
		Pages:    []string{full.String()},
		Metadata: DefaultMetadata(),
	}
	res.Metadata.ExtractedText = res.Text
	res.Metadata.TableCount = len(doc.Body.Tables)
	res.Metadata.ImageCount = countDocxImages(fileIndex)

	readCoreProperties(fileIndex, &res.Metadata)

	return res, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// countDocxImages counts embedded media files in word/media/.
func countDocxImages(fileIndex map[string]*zip.File) int {
	n := 0
	for name := range fileIndex {
		if strings.HasPrefix(name, "word/media/") {
			n++
		}
	}
	return n
}

// readCoreProperties fills title and author from docProps/core.xml.
func readCoreProperties(fileIndex map[string]*zip.File, meta *Metadata) {
	propsFile := fileIndex["docProps/core.xml"]
	if propsFile == nil {
		return
	}

	data, err := readZipFile(propsFile)
	if err != nil {
		return
	}

	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return
	}

	if t := strings.TrimSpace(props.Title); t != "" {
		meta.Title = t
	}
	if a := strings.TrimSpace(props.Creator); a != "" {
		meta.Author = a
	}
}

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	XMLName xml.Name    `xml:"body"`
	Paras   []docxPara  `xml:"p"`
	Tables  []docxTable `xml:"tbl"`
}

type docxPara struct {
	XMLName xml.Name  `xml:"p"`
	Runs    []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

type coreProperties struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
}

func extractParaText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
