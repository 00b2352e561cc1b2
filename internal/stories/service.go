package stories

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
)

const displayDateLayout = "2006-01-02"

// Author identifies the caller writing a story.
type Author struct {
	ID    string
	Email string
}

// Service contains business logic for stories.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	Tracker analytics.Tracker
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeInput(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.YouTubeLink = strings.TrimSpace(in.YouTubeLink)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return in, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return in, nil
}

// Create stores a new story for author.
func (s *Service) Create(ctx context.Context, author Author, in Input) (Story, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return Story{}, err
	}
	now := s.now()
	story := Story{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     Excerpt(in.Content),
		Date:        now.Format(displayDateLayout),
		YouTubeLink: in.YouTubeLink,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, story); err != nil {
		return Story{}, err
	}
	analytics.Emit(ctx, s.Tracker, author.ID, analytics.EventStoryAction, map[string]any{"action": "create", "storyId": story.ID})
	return story, nil
}

// Update replaces the editable fields and recomputes the excerpt.
func (s *Service) Update(ctx context.Context, authorID, id string, in Input) (Story, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return Story{}, err
	}
	story, err := s.Repo.GetByID(ctx, authorID, id)
	if err != nil {
		return Story{}, err
	}
	story.Title = in.Title
	story.Content = in.Content
	story.Excerpt = Excerpt(in.Content)
	story.YouTubeLink = in.YouTubeLink
	story.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, story); err != nil {
		return Story{}, err
	}
	analytics.Emit(ctx, s.Tracker, authorID, analytics.EventStoryAction, map[string]any{"action": "update", "storyId": id})
	return story, nil
}

func (s *Service) Get(ctx context.Context, authorID, id string) (Story, error) {
	return s.Repo.GetByID(ctx, authorID, id)
}

func (s *Service) List(ctx context.Context, authorID string, limit, offset int) ([]Story, error) {
	return s.Repo.ListByAuthor(ctx, authorID, limit, offset)
}

// Select returns every story of the author when all is set, else the owned subset of ids.
func (s *Service) Select(ctx context.Context, authorID string, ids []string, all bool) ([]Story, error) {
	if all {
		return s.Repo.ListByAuthor(ctx, authorID, 0, 0)
	}
	return s.Repo.ListByIDs(ctx, authorID, ids)
}

// Delete removes the story and its image.
func (s *Service) Delete(ctx context.Context, authorID, id string) error {
	story, err := s.Repo.GetByID(ctx, authorID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, authorID, id); err != nil {
		return err
	}
	s.removeImage(ctx, story.ImageKey)
	analytics.Emit(ctx, s.Tracker, authorID, analytics.EventStoryAction, map[string]any{"action": "delete", "storyId": id})
	return nil
}

// AttachImage stores an image for the story, replacing any previous one.
func (s *Service) AttachImage(ctx context.Context, authorID, id, fileName string, r io.Reader) (Story, error) {
	if s.Store == nil {
		return Story{}, errors.New("object store not configured")
	}
	story, err := s.Repo.GetByID(ctx, authorID, id)
	if err != nil {
		return Story{}, err
	}
	stored, err := s.Store.Save(ctx, object.Upload{OwnerID: authorID, Folder: object.FolderStoryImages, FileName: fileName, Body: r})
	if err != nil {
		return Story{}, err
	}
	key := stored.Key
	if !strings.HasPrefix(stored.MimeType, "image/") {
		s.removeImage(ctx, key)
		return Story{}, ErrNotAnImage
	}

	previous := story.ImageKey
	story.ImageKey = key
	story.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, story); err != nil {
		s.removeImage(ctx, key)
		return Story{}, err
	}
	if previous != "" && previous != key {
		s.removeImage(ctx, previous)
	}
	return story, nil
}

// OpenImage returns the story image and its sniffed content type.
func (s *Service) OpenImage(ctx context.Context, authorID, id string) (io.ReadCloser, string, error) {
	story, err := s.Repo.GetByID(ctx, authorID, id)
	if err != nil {
		return nil, "", err
	}
	if story.ImageKey == "" || s.Store == nil {
		return nil, "", ErrNoImage
	}
	rc, err := s.Store.Open(ctx, story.ImageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, "", ErrNoImage
		}
		return nil, "", err
	}
	br := bufio.NewReader(rc)
	head, _ := br.Peek(512)
	return readCloser{Reader: br, Closer: rc}, http.DetectContentType(head), nil
}

func (s *Service) removeImage(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("stories.image_delete_failed", map[string]any{"error": err})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
