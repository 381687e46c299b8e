package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPDFExtractorFormats(t *testing.T) {
	e := &PDFExtractor{}
	got := e.SupportedFormats()
	if len(got) != 1 || got[0] != "pdf" {
		t.Errorf("SupportedFormats = %v", got)
	}
}

func TestPDFExtractNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (&PDFExtractor{}).Extract(context.Background(), path); err == nil {
		t.Error("Extract on a non-PDF file should error")
	}
}

func TestPDFExtractMissingFile(t *testing.T) {
	if _, err := (&PDFExtractor{}).Extract(context.Background(), "/no/such/file.pdf"); err == nil {
		t.Error("Extract on a missing file should error")
	}
}
