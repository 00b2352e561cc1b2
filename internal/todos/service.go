package todos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
)

type Service struct {
	Repo    Repo
	Tracker analytics.Tracker
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) List(ctx context.Context, userID string) ([]Todo, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Add(ctx context.Context, userID, text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	t := Todo{ID: uuid.NewString(), UserID: userID, Text: text, CreatedAt: s.now()}
	if err := s.Repo.Create(ctx, t); err != nil {
		return Todo{}, err
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventTodoAction, map[string]any{"action": "add"})
	return t, nil
}

func (s *Service) Toggle(ctx context.Context, userID, id string) (Todo, error) {
	t, err := s.Repo.Toggle(ctx, userID, id)
	if err != nil {
		return Todo{}, err
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventTodoAction, map[string]any{"action": "toggle", "completed": t.Completed})
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventTodoAction, map[string]any{"action": "delete"})
	return nil
}
