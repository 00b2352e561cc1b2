// Package local stores objects on disk for development and single-node setups.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"career-backend/internal/shared/storage/object"
)

// Store keeps objects as files under baseDir, one directory per key segment.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes to a temp file beside the target and renames it into place,
// so readers never observe a partial object.
func (s *Store) Save(ctx context.Context, up object.Upload) (object.Stored, error) {
	key, err := object.BuildKey(up.OwnerID, up.Folder, up.FileName)
	if err != nil {
		return object.Stored{}, err
	}
	if err := ctx.Err(); err != nil {
		return object.Stored{}, err
	}
	mimeType, body, err := object.Sniff(up.Body, up.FileName)
	if err != nil {
		return object.Stored{}, err
	}

	target := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return object.Stored{}, fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return object.Stored{}, fmt.Errorf("create temp: %w", err)
	}
	counter := &object.CountingReader{R: body}
	_, copyErr := io.Copy(tmp, counter)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return object.Stored{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return object.Stored{}, fmt.Errorf("rename %s: %w", key, err)
	}
	return object.Stored{Key: key, Size: counter.N, MimeType: mimeType}, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, object.ErrNotFound
	}
	return f, err
}

// Delete removes an object. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// resolve maps a key inside baseDir and rejects anything that would escape it.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ObjectStore = (*Store)(nil)
