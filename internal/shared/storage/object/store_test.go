package object

import (
	"io"
	"strings"
	"testing"
)

func TestSniffReplaysBody(t *testing.T) {
	body := strings.Repeat("resume line\n", 100)
	mimeType, r, err := Sniff(strings.NewReader(body), "cv.txt")
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime %q", mimeType)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != body {
		t.Fatalf("body not replayed: got %d bytes want %d", len(got), len(body))
	}
}

func TestRefineType(t *testing.T) {
	cases := []struct{ detected, name, want string }{
		{"application/zip", "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"application/zip", "bundle.zip", "application/zip"},
		{"text/plain; charset=utf-8", "notes.md", "text/markdown; charset=utf-8"},
		{"image/png", "photo.docx", "image/png"},
		{"application/pdf", "cv.pdf", "application/pdf"},
	}
	for _, c := range cases {
		if got := refineType(c.detected, c.name); got != c.want {
			t.Fatalf("refineType(%q, %q) = %q, want %q", c.detected, c.name, got, c.want)
		}
	}
}

func TestCountingReaderCountsBytes(t *testing.T) {
	c := &CountingReader{R: strings.NewReader("twelve bytes")}
	if _, err := io.Copy(io.Discard, c); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if c.N != 12 {
		t.Fatalf("expected 12 bytes counted, got %d", c.N)
	}
}
