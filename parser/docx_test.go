package parser

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly Review of Operations</w:t></w:r></w:p>
    <w:p><w:r><w:t>The team shipped </w:t></w:r><w:r><w:t>three releases.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>Release</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
  </w:body>
</w:document>`

const testCoreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Quarterly Review</dc:title>
  <dc:creator>R. Alvarez</dc:creator>
</cp:coreProperties>`

func writeTestDocx(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDOCXExtract(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"word/document.xml":    testDocumentXML,
		"docProps/core.xml":    testCoreXML,
		"word/media/image1.png": "not-a-real-png",
	})

	e := &DOCXExtractor{}
	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if !strings.Contains(res.Text, "The team shipped three releases.") {
		t.Errorf("Text = %q, runs not joined", res.Text)
	}
	if res.Metadata.Title != "Quarterly Review" {
		t.Errorf("Title = %q, want core property", res.Metadata.Title)
	}
	if res.Metadata.Author != "R. Alvarez" {
		t.Errorf("Author = %q, want core property", res.Metadata.Author)
	}
	if res.Metadata.TableCount != 1 {
		t.Errorf("TableCount = %d, want 1", res.Metadata.TableCount)
	}
	if res.Metadata.ImageCount != 1 {
		t.Errorf("ImageCount = %d, want 1", res.Metadata.ImageCount)
	}
}

func TestDOCXExtractMissingDocumentXML(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"docProps/core.xml": testCoreXML,
	})

	e := &DOCXExtractor{}
	if _, err := e.Extract(context.Background(), path); err == nil {
		t.Fatal("expected error for archive without word/document.xml")
	}
}

func TestDOCXExtractNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("definitely not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	e := &DOCXExtractor{}
	if _, err := e.Extract(context.Background(), path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
