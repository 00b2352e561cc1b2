package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	stored, err := store.Save(ctx, object.Upload{OwnerID: "guest:1", Folder: object.FolderResumeFiles, FileName: "resume.txt", Body: strings.NewReader("hello resume")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Key, object.FolderResumeFiles+"/"))
	assert.Equal(t, int64(len("hello resume")), stored.Size)
	assert.Contains(t, stored.MimeType, "text/plain")

	rc, err := store.Open(ctx, stored.Key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello resume", string(data))

	require.NoError(t, store.Delete(ctx, stored.Key))
	_, err = store.Open(ctx, stored.Key)
	assert.True(t, errors.Is(err, object.ErrNotFound))
	assert.NoError(t, store.Delete(ctx, stored.Key))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	stored, err := store.Save(context.Background(), object.Upload{OwnerID: "u", Folder: object.FolderStoryImages, FileName: "a.png", Body: strings.NewReader("\x89PNG\r\n\x1a\n")})
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.MimeType)

	entries, err := os.ReadDir(filepath.Dir(filepath.Join(dir, filepath.FromSlash(stored.Key))))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".upload-"))
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../secret", "..", "/etc/passwd"} {
		_, err := store.Open(context.Background(), key)
		assert.Error(t, err, key)
	}
}

func TestSaveHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(t.TempDir()).Save(ctx, object.Upload{OwnerID: "u", Folder: object.FolderResumeFiles, FileName: "a.txt", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, context.Canceled)
}
