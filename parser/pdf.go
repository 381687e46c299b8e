package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor extracts plain text via ledongthuc/pdf and base metadata
// (info dict, page count, embedded image count) via pdfcpu.
type PDFExtractor struct{}

func (e *PDFExtractor) SupportedFormats() []string { return []string{"pdf"} }

func (e *PDFExtractor) Extract(ctx context.Context, path string) (*Result, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages := make([]string, 0, totalPages)
	var full strings.Builder

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, text)
		if full.Len() > 0 {
			full.WriteString("\n\n")
		}
		full.WriteString(text)
	}

	res := &Result{
		Text:     full.String(),
		Pages:    pages,
		Metadata: DefaultMetadata(),
	}
	res.Metadata.TotalPages = totalPages
	res.Metadata.ExtractedText = res.Text

	// Info dict and image streams are best effort; a PDF with a broken
	// cross-reference table still yields text-only metadata.
	readPDFInfo(path, &res.Metadata)

	return res, nil
}

// readPDFInfo fills title, author, page count, and embedded image count
// from the pdfcpu document context.
func readPDFInfo(path string, meta *Metadata) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return
	}

	if pctx.PageCount > 0 {
		meta.TotalPages = pctx.PageCount
	}
	if t := strings.TrimSpace(pctx.Title); t != "" {
		meta.Title = t
	}
	if a := strings.TrimSpace(pctx.Author); a != "" {
		meta.Author = a
	}

	if pctx.Optimize != nil {
		images := 0
		for p := 1; p <= pctx.PageCount; p++ {
			images += len(pdfcpulib.ImageObjNrs(pctx, p))
		}
		meta.ImageCount = images
	}
}
