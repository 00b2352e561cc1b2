package coverletters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
	"career-backend/internal/llm"
	"career-backend/internal/stories"
)

// StorySource resolves the caller's stories used as background.
type StorySource interface {
	Select(ctx context.Context, authorID string, ids []string, all bool) ([]stories.Story, error)
}

// Owner identifies the caller.
type Owner struct {
	ID    string
	Email string
}

type Service struct {
	Repo    Repo
	Stories StorySource
	LLM     llm.Completer
	Tracker analytics.Tracker
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Generate drafts a cover letter from the caller's stories. Ids the caller does not own are ignored.
func (s *Service) Generate(ctx context.Context, userID, jobDescription string, storyIDs []string, all bool) (string, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return "", fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}
	if s.LLM == nil {
		return "", fmt.Errorf("%w: %w", ErrLLM, llm.ErrNotConfigured)
	}
	selected, err := s.Stories.Select(ctx, userID, storyIDs, all)
	if err != nil {
		return "", err
	}
	letter, err := s.LLM.Complete(ctx, Prompt(jobDescription, selected))
	if err != nil {
		analytics.Emit(ctx, s.Tracker, userID, analytics.EventError, map[string]any{"errorType": "Cover Letter Generation Error", "error": err.Error()})
		return "", fmt.Errorf("%w: %w", ErrLLM, err)
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventCoverLetter, map[string]any{"action": "generate", "storyCount": len(selected)})
	return letter, nil
}

// Save stores an edited letter. Story ids are kept as given.
func (s *Service) Save(ctx context.Context, owner Owner, jobDescription string, storyIDs []string, letter string) (CoverLetter, error) {
	if strings.TrimSpace(letter) == "" {
		return CoverLetter{}, fmt.Errorf("%w: coverLetter is required", ErrInvalidInput)
	}
	if storyIDs == nil {
		storyIDs = []string{}
	}
	l := CoverLetter{
		ID:             uuid.NewString(),
		UserID:         owner.ID,
		UserEmail:      owner.Email,
		JobDescription: jobDescription,
		StoryIDs:       storyIDs,
		CoverLetter:    letter,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return CoverLetter{}, err
	}
	analytics.Emit(ctx, s.Tracker, owner.ID, analytics.EventCoverLetter, map[string]any{"action": "save", "coverLetterId": l.ID})
	return l, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]CoverLetter, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}
