package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := buildDocx(t, "Jane Doe", "Senior Engineer")

	text, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if text != "Jane Doe\nSenior Engineer" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("  Experience\nGo  \n"), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Experience\nGo" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextFromBytes_OctetStreamUsesExtension(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("# Resume"), "application/octet-stream", "cv.md")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "# Resume" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextFromBytes_BadPDF(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 not really"), "application/pdf", "cv.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestExtractTextReadsFromStore(t *testing.T) {
	store := localstore.New(t.TempDir())
	ctx := context.Background()
	stored, err := store.Save(ctx, object.Upload{OwnerID: "user-1", Folder: object.FolderResumeFiles, FileName: "resume.docx", Body: bytes.NewReader(buildDocx(t, "Hello"))})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := ExtractText(ctx, store, stored.Key, stored.MimeType, "resume.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Hello" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextMissingObject(t *testing.T) {
	store := localstore.New(t.TempDir())
	if _, err := ExtractText(context.Background(), store, "resume-files/x/missing.pdf", "application/pdf", "missing.pdf"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestWordprocessingTextKeepsTabsAndBreaks(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>5 years</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	got, err := wordprocessingText(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("wordprocessingText: %v", err)
	}
	if got != "Go\t5 years\nline one\nline two\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTidyCollapsesBlankLines(t *testing.T) {
	got := tidy("Summary  \r\n\r\n\r\n\nSkills\t\n")
	if got != "Summary\n\nSkills" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextClipsLongText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte(strings.Repeat("é", MaxTextRunes+10)), "text/plain", "long.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n := len([]rune(text)); n != MaxTextRunes {
		t.Fatalf("expected %d runes, got %d", MaxTextRunes, n)
	}
}
