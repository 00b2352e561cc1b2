// Package extract turns uploaded resume documents into plain text for prompts.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"career-backend/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
	mimeMD   = "text/markdown"

	// MaxInputBytes bounds how much of a stored object is read.
	MaxInputBytes = 10 << 20
	// MaxTextRunes bounds the text handed to prompts.
	MaxTextRunes = 60000
)

var (
	// ErrUnsupported is returned for payloads that carry no extractable text.
	ErrUnsupported = errors.New("unsupported mime type")
	ErrTooLarge    = errors.New("document too large")
)

// ExtractText reads a stored resume file and extracts its text.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, MaxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileKey, err)
	}
	if len(raw) > MaxInputBytes {
		return "", fmt.Errorf("%s: %w", fileKey, ErrTooLarge)
	}
	return ExtractTextFromBytes(ctx, raw, mimeType, fileName)
}

// ExtractTextFromBytes extracts text from an in-memory payload. The mime type may be
// empty or generic; the file name extension and zip contents then decide.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		text string
		err  error
	)
	switch kind := detectKind(mimeType, fileName, data); kind {
	case mimePDF:
		text, err = pdfText(data)
	case mimeDOCX:
		text, err = docxText(data)
	case mimeText, mimeMD:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	if err != nil {
		return "", err
	}
	return clip(tidy(text), MaxTextRunes), nil
}

// pdfText reads pages in order, separating them with a blank line.
func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		pages = append(pages, txt)
	}
	return strings.Join(pages, "\n\n"), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	doc := findZipEntry(zr, "word/document.xml")
	if doc == nil {
		return "", errors.New("docx: word/document.xml not found")
	}
	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return wordprocessingText(rc)
}

// wordprocessingText keeps w:t runs, maps w:tab to a tab and ends a line at
// every paragraph or break.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

func findZipEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == name {
			return f
		}
	}
	return nil
}

// detectKind trusts a specific mime type, falls back to the extension for
// generic ones and looks inside zips for a Word document.
func detectKind(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	byExt := map[string]string{".pdf": mimePDF, ".docx": mimeDOCX, ".txt": mimeText, ".md": mimeMD}
	ext := strings.ToLower(filepath.Ext(fileName))

	switch clean {
	case "", "application/octet-stream":
		if kind, ok := byExt[ext]; ok {
			return kind
		}
		return clean
	case "application/zip":
		if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil && findZipEntry(zr, "word/document.xml") != nil {
			return mimeDOCX
		}
		return clean
	}
	return clean
}

// tidy normalizes line endings, trims trailing spaces and collapses runs of blank lines.
func tidy(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
