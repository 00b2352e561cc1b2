package stories

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localstore "career-backend/internal/shared/storage/object/local"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func newService(t *testing.T) *Service {
	t.Helper()
	clock := time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)
	return &Service{
		Repo:  NewMemoryRepo(),
		Store: localstore.New(t.TempDir()),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}
}

func TestCreateComputesExcerptAndDate(t *testing.T) {
	svc := newService(t)
	content := strings.Repeat("x", 160)
	s, err := svc.Create(context.Background(), Author{ID: "u1", Email: "u1@example.com"}, Input{Title: " Title ", Content: content})
	require.NoError(t, err)
	assert.Equal(t, "Title", s.Title)
	assert.Equal(t, strings.Repeat("x", 150)+"...", s.Excerpt)
	assert.Equal(t, "2026-05-04", s.Date)
	assert.NotEmpty(t, s.ID)
}

func TestCreateValidates(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), Author{ID: "u1"}, Input{Title: "", Content: "c"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(context.Background(), Author{ID: "u1"}, Input{Title: "t", Content: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRecomputesExcerptAndIsOwnerScoped(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	s, err := svc.Create(ctx, Author{ID: "u1"}, Input{Title: "t", Content: "old"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u2", s.ID, Input{Title: "t", Content: "hijack"})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, "u1", s.ID, Input{Title: "t2", Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new...", updated.Excerpt)
	assert.True(t, updated.UpdatedAt.After(s.UpdatedAt))
	assert.Equal(t, s.Date, updated.Date)
}

func TestListNewestFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, Author{ID: "u1"}, Input{Title: title, Content: "c"})
		require.NoError(t, err)
	}
	list, err := svc.List(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Title)
	assert.Equal(t, "b", list[1].Title)
}

func TestSelectFiltersForeignStories(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	mine, _ := svc.Create(ctx, Author{ID: "u1"}, Input{Title: "mine", Content: "c"})
	theirs, _ := svc.Create(ctx, Author{ID: "u2"}, Input{Title: "theirs", Content: "c"})

	got, err := svc.Select(ctx, "u1", []string{mine.ID, theirs.ID}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	all, err := svc.Select(ctx, "u2", nil, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, theirs.ID, all[0].ID)
}

func TestAttachImageRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	s, err := svc.Create(ctx, Author{ID: "u1"}, Input{Title: "t", Content: "c"})
	require.NoError(t, err)

	updated, err := svc.AttachImage(ctx, "u1", s.ID, "pixel.png", bytes.NewReader(pngPixel))
	require.NoError(t, err)
	require.NotEmpty(t, updated.ImageKey)

	rc, contentType, err := svc.OpenImage(ctx, "u1", s.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, data)
	assert.Equal(t, "image/png", contentType)
}

func TestAttachImageRejectsNonImage(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	s, _ := svc.Create(ctx, Author{ID: "u1"}, Input{Title: "t", Content: "c"})

	_, err := svc.AttachImage(ctx, "u1", s.ID, "notes.txt", strings.NewReader("plain text"))
	assert.True(t, errors.Is(err, ErrNotAnImage))

	_, _, err = svc.OpenImage(ctx, "u1", s.ID)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestDeleteRemovesStory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	s, _ := svc.Create(ctx, Author{ID: "u1"}, Input{Title: "t", Content: "c"})
	require.NoError(t, svc.Delete(ctx, "u1", s.ID))
	_, err := svc.Get(ctx, "u1", s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
