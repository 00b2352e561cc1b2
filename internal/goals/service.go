package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
)

// Service contains business logic for goals. Only the admin may change the board;
// everyone else may read it and leave suggestions.
type Service struct {
	Repo       Repo
	AdminEmail string
	Tracker    analytics.Tracker
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// IsOwner reports whether the actor manages the goal board.
func (s *Service) IsOwner(a Actor) bool {
	admin := strings.TrimSpace(s.AdminEmail)
	return admin != "" && strings.EqualFold(strings.TrimSpace(a.Email), admin)
}

func (s *Service) requireOwner(a Actor) error {
	if !s.IsOwner(a) {
		return ErrForbidden
	}
	return nil
}

func (s *Service) track(ctx context.Context, a Actor, action string, props map[string]any) {
	merged := map[string]any{"action": action}
	for k, v := range props {
		merged[k] = v
	}
	analytics.Emit(ctx, s.Tracker, a.ID, analytics.EventGoalAction, merged)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.Repo.List(ctx)
}

// CreateCategory appends a new category at the end of the board.
func (s *Service) CreateCategory(ctx context.Context, a Actor, name string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	existing, err := s.Repo.List(ctx)
	if err != nil {
		return Category{}, err
	}
	now := s.now()
	c := Category{
		ID:          uuid.NewString(),
		UserID:      a.ID,
		Category:    name,
		Tasks:       []Task{},
		Suggestions: []Suggestion{},
		Order:       len(existing),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	s.track(ctx, a, "add_category", map[string]any{"categoryId": c.ID})
	return c, nil
}

// DeleteCategory removes a category and closes the gap in the board ordering.
func (s *Service) DeleteCategory(ctx context.Context, a Actor, id string) error {
	if err := s.requireOwner(a); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	remaining, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(remaining))
	for i, c := range remaining {
		ids[i] = c.ID
	}
	if err := s.Repo.SetOrder(ctx, ids); err != nil {
		return err
	}
	s.track(ctx, a, "delete_category", map[string]any{"categoryId": id})
	return nil
}

// ReorderCategories sets the board order. ids must name every category exactly once.
func (s *Service) ReorderCategories(ctx context.Context, a Actor, ids []string) ([]Category, error) {
	if err := s.requireOwner(a); err != nil {
		return nil, err
	}
	existing, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	current := make([]string, len(existing))
	for i, c := range existing {
		current[i] = c.ID
	}
	if !IsPermutation(current, ids) {
		return nil, fmt.Errorf("%w: ids must list every category exactly once", ErrInvalidInput)
	}
	if err := s.Repo.SetOrder(ctx, ids); err != nil {
		return nil, err
	}
	s.track(ctx, a, "reorder_categories", nil)
	return s.Repo.List(ctx)
}

// mutate loads a category, applies fn and saves the result.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Category) error) (Category, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := fn(&c); err != nil {
		return Category{}, err
	}
	c.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) AddTask(ctx context.Context, a Actor, categoryID, text string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Category{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	c, err := s.mutate(ctx, categoryID, func(c *Category) error {
		c.Tasks = AppendTask(c.Tasks, Task{ID: uuid.NewString(), Text: text})
		return nil
	})
	if err == nil {
		s.track(ctx, a, "add_task", map[string]any{"categoryId": categoryID})
	}
	return c, err
}

func (s *Service) ToggleTask(ctx context.Context, a Actor, categoryID, taskID string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	c, err := s.mutate(ctx, categoryID, func(c *Category) error {
		tasks, ok := ToggleTask(c.Tasks, taskID)
		if !ok {
			return ErrNotFound
		}
		c.Tasks = tasks
		return nil
	})
	if err == nil {
		s.track(ctx, a, "toggle_task", map[string]any{"categoryId": categoryID, "taskId": taskID})
	}
	return c, err
}

// DeleteTask removes a task; remaining tasks are renumbered 0..n-1.
func (s *Service) DeleteTask(ctx context.Context, a Actor, categoryID, taskID string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	c, err := s.mutate(ctx, categoryID, func(c *Category) error {
		tasks, ok := RemoveTask(c.Tasks, taskID)
		if !ok {
			return ErrNotFound
		}
		c.Tasks = tasks
		return nil
	})
	if err == nil {
		s.track(ctx, a, "delete_task", map[string]any{"categoryId": categoryID, "taskId": taskID})
	}
	return c, err
}

func (s *Service) MoveTask(ctx context.Context, a Actor, categoryID, taskID string, toIndex int) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	return s.mutate(ctx, categoryID, func(c *Category) error {
		tasks, ok := MoveTask(c.Tasks, taskID, toIndex)
		if !ok {
			return ErrNotFound
		}
		c.Tasks = tasks
		return nil
	})
}

// Suggest records a task proposal from a visitor. The owner adds tasks directly instead.
func (s *Service) Suggest(ctx context.Context, a Actor, categoryID, text string) (Category, error) {
	if s.IsOwner(a) {
		return Category{}, ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Category{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	by := strings.TrimSpace(a.Email)
	if by == "" {
		by = "anonymous"
	}
	c, err := s.mutate(ctx, categoryID, func(c *Category) error {
		c.Suggestions = append(c.Suggestions, Suggestion{ID: uuid.NewString(), Text: text, SuggestedBy: by})
		return nil
	})
	if err == nil {
		s.track(ctx, a, "suggest", map[string]any{"categoryId": categoryID})
	}
	return c, err
}

// ApproveSuggestion turns a suggestion into a task at the end of the list.
func (s *Service) ApproveSuggestion(ctx context.Context, a Actor, categoryID, suggestionID string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	c, err := s.mutate(ctx, categoryID, func(c *Category) error {
		rest, sug, ok := removeSuggestion(c.Suggestions, suggestionID)
		if !ok {
			return ErrNotFound
		}
		c.Suggestions = rest
		c.Tasks = AppendTask(c.Tasks, Task{ID: uuid.NewString(), Text: sug.Text})
		return nil
	})
	if err == nil {
		s.track(ctx, a, "approve_suggestion", map[string]any{"categoryId": categoryID})
	}
	return c, err
}

func (s *Service) DeleteSuggestion(ctx context.Context, a Actor, categoryID, suggestionID string) (Category, error) {
	if err := s.requireOwner(a); err != nil {
		return Category{}, err
	}
	return s.mutate(ctx, categoryID, func(c *Category) error {
		rest, _, ok := removeSuggestion(c.Suggestions, suggestionID)
		if !ok {
			return ErrNotFound
		}
		c.Suggestions = rest
		return nil
	})
}

func removeSuggestion(list []Suggestion, id string) ([]Suggestion, Suggestion, bool) {
	for i, sug := range list {
		if sug.ID == id {
			out := make([]Suggestion, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, sug, true
		}
	}
	return list, Suggestion{}, false
}
