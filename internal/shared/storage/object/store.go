package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Folders group objects by feature under each owner.
const (
	FolderStoryImages = "story-images"
	FolderResumeFiles = "resume-files"
)

// ErrNotFound is returned by Open when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Upload is one file to store for an owner.
type Upload struct {
	OwnerID  string
	Folder   string
	FileName string
	Body     io.Reader
}

// Stored describes a saved object.
type Stored struct {
	Key      string
	Size     int64
	MimeType string
}

// ObjectStore saves and serves user files. Keys are opaque to callers.
type ObjectStore interface {
	Save(ctx context.Context, up Upload) (Stored, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

const sniffLen = 512

// Sniff reads the head of body to detect its type and returns a reader that
// replays the full content. Generic detections are refined by the file extension.
func Sniff(body io.Reader, fileName string) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("sniff: %w", err)
	}
	head = head[:n]
	detected := http.DetectContentType(head)
	return refineType(detected, fileName), io.MultiReader(bytes.NewReader(head), body), nil
}

// refineType trusts the extension when sniffing only found a container or plain text,
// so .docx is not stored as application/zip and .md keeps its markdown type.
func refineType(detected, fileName string) string {
	base := strings.TrimSpace(strings.Split(detected, ";")[0])
	switch base {
	case "application/zip", "application/octet-stream", "text/plain":
	default:
		return detected
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".md":
		return "text/markdown; charset=utf-8"
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" && base == "application/octet-stream" {
		return byExt
	}
	return detected
}

// CountingReader counts bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
