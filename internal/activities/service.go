package activities

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
)

// Owner identifies the caller logging activities.
type Owner struct {
	ID    string
	Email string
}

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

// normalize applies defaults and derives timeSpent from start/end when both are set.
func (s *Service) normalize(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	switch in.Type {
	case "":
		in.Type = TypeJobSearch
	case TypeJobSearch, TypeUpskilling:
	default:
		return in, fmt.Errorf("%w: type must be job_search or upskilling", ErrInvalidInput)
	}

	switch in.Status {
	case "":
		in.Status = StatusCompleted
	case StatusCompleted, StatusInProgress, StatusPlanned:
	default:
		return in, fmt.Errorf("%w: status must be completed, in_progress or planned", ErrInvalidInput)
	}

	if in.Date == "" {
		in.Date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return in, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if in.StartTime != "" && in.EndTime != "" {
		minutes, err := MinutesBetween(in.StartTime, in.EndTime)
		if err != nil {
			return in, err
		}
		in.TimeSpent = minutes
	}
	if in.TimeSpent < 0 {
		return in, fmt.Errorf("%w: timeSpent cannot be negative", ErrInvalidInput)
	}
	return in, nil
}

func (s *Service) Create(ctx context.Context, owner Owner, in Input) (Activity, error) {
	in, err := s.normalize(in)
	if err != nil {
		return Activity{}, err
	}
	now := s.now()
	a := Activity{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		UserEmail:   owner.Email,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		TimeSpent:   in.TimeSpent,
		Status:      in.Status,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Activity{}, err
	}
	analytics.Emit(ctx, s.Tracker, owner.ID, analytics.EventJobSearch, map[string]any{
		"action":    "add",
		"type":      a.Type,
		"timeSpent": a.TimeSpent,
	})
	return a, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Activity, error) {
	in, err := s.normalize(in)
	if err != nil {
		return Activity{}, err
	}
	a, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Activity{}, err
	}
	a.Type = in.Type
	a.Title = in.Title
	a.Description = in.Description
	a.TimeSpent = in.TimeSpent
	a.Status = in.Status
	a.Date = in.Date
	a.StartTime = in.StartTime
	a.EndTime = in.EndTime
	a.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, a); err != nil {
		return Activity{}, err
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventJobSearch, map[string]any{"action": "update", "type": a.Type})
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Activity, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventJobSearch, map[string]any{"action": "delete"})
	return nil
}

// Summary totals the caller's activities for date, defaulting to today.
func (s *Service) Summary(ctx context.Context, userID, date string) (Summary, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return Summary{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	list, err := s.Repo.ListByDate(ctx, userID, date)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(date, list), nil
}
