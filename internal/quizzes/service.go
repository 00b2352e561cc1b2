package quizzes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/analytics"
	"career-backend/internal/llm"
	"career-backend/internal/shared/telemetry"
)

// Service generates and grades quizzes. Nothing is persisted.
type Service struct {
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

// Generate asks the model for a quiz over notes. A zero difficulty means the default.
func (s *Service) Generate(ctx context.Context, userID, notes string, difficulty int) (Quiz, error) {
	if strings.TrimSpace(notes) == "" {
		analytics.Emit(ctx, s.Tracker, userID, analytics.EventQuizAction, map[string]any{"action": "generate", "error": "No notes provided"})
		return Quiz{}, ErrNotesRequired
	}
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	if difficulty < 1 || difficulty > MaxDifficulty {
		return Quiz{}, ErrInvalidDifficulty
	}

	reply, err := s.complete(ctx, GeneratePrompt(notes, difficulty))
	if err != nil {
		s.trackError(ctx, userID, "Quiz Generation Error", err)
		return Quiz{}, err
	}

	var parsed struct {
		Title     string     `json:"title"`
		Questions []Question `json:"questions"`
	}
	if err := llm.DecodeObject(reply, &parsed); err != nil {
		s.trackError(ctx, userID, "Quiz Generation Parse Error", err)
		return Quiz{}, errors.Join(ErrInvalidOutput, err)
	}
	if len(parsed.Questions) == 0 {
		s.trackError(ctx, userID, "Quiz Generation Parse Error", ErrNoQuestions)
		return Quiz{}, errors.Join(ErrInvalidOutput, ErrNoQuestions)
	}

	hasMC, hasSA := false, false
	for i := range parsed.Questions {
		q := &parsed.Questions[i]
		if strings.TrimSpace(q.ID) == "" {
			q.ID = "q" + strconv.Itoa(i+1)
		}
		if q.Type != TypeMultipleChoice {
			q.Type = TypeShortAnswer
			q.Options = nil
			hasSA = true
		} else {
			hasMC = true
		}
	}
	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = "Quiz"
	}

	quiz := Quiz{
		ID:              uuid.NewString(),
		Title:           title,
		Difficulty:      difficulty,
		DifficultyLabel: DifficultyLabel(difficulty),
		Questions:       parsed.Questions,
		CreatedAt:       s.now(),
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventQuizAction, map[string]any{
		"action":            "Generate Quiz Success",
		"quizTitle":         quiz.Title,
		"questionCount":     len(quiz.Questions),
		"difficulty":        difficulty,
		"difficultyLabel":   quiz.DifficultyLabel,
		"hasMultipleChoice": hasMC,
		"hasShortAnswer":    hasSA,
	})
	return quiz, nil
}

// Grade asks the model to score answers. Every question must have a non-blank answer.
func (s *Service) Grade(ctx context.Context, userID string, quiz Quiz, answers map[string]string) (Grade, error) {
	if len(quiz.Questions) == 0 {
		return Grade{}, ErrNoQuestions
	}
	unanswered := 0
	for _, q := range quiz.Questions {
		if strings.TrimSpace(answers[q.ID]) == "" {
			unanswered++
		}
	}
	if unanswered > 0 {
		analytics.Emit(ctx, s.Tracker, userID, analytics.EventQuizAction, map[string]any{
			"action":          "Grade Quiz Attempt",
			"error":           "Unanswered questions",
			"unansweredCount": unanswered,
			"totalQuestions":  len(quiz.Questions),
		})
		return Grade{}, ErrUnanswered
	}

	prompt, err := GradePrompt(quiz, answers)
	if err != nil {
		return Grade{}, err
	}
	reply, err := s.complete(ctx, prompt)
	if err != nil {
		s.trackError(ctx, userID, "Quiz Grading Error", err)
		return Grade{}, err
	}
	var results []Result
	if err := llm.DecodeArray(reply, &results); err != nil {
		s.trackError(ctx, userID, "Quiz Grading Parse Error", err)
		return Grade{}, errors.Join(ErrInvalidOutput, err)
	}

	grade := Score(quiz, results)
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventQuizAction, map[string]any{
		"action":          "Grade Quiz Success",
		"quizTitle":       quiz.Title,
		"totalScore":      grade.TotalScore,
		"maxScore":        grade.MaxScore,
		"scorePercentage": grade.Percentage,
		"questionCount":   len(grade.Results),
		"perfectScore":    grade.Perfect,
	})
	return grade, nil
}

// Score fills gaps in the model's results and totals them. Points are clamped to [0, maxPoints].
func Score(quiz Quiz, results []Result) Grade {
	byID := make(map[string]Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byID[q.ID] = q
	}

	out := Grade{Results: make([]Result, 0, len(results))}
	for _, r := range results {
		q, known := byID[r.QuestionID]
		if r.MaxPoints <= 0 {
			if known {
				r.MaxPoints = q.MaxPoints()
			} else {
				r.MaxPoints = shortAnswerPoints
			}
		}
		r.Points = math.Max(0, math.Min(r.Points, r.MaxPoints))
		if r.CorrectAnswer == "" && known {
			r.CorrectAnswer = q.CorrectAnswer
		}
		out.TotalScore += r.Points
		out.MaxScore += r.MaxPoints
		out.Results = append(out.Results, r)
	}
	if out.MaxScore > 0 {
		ratio := out.TotalScore / out.MaxScore
		out.Percentage = int(math.Round(ratio * 100))
		out.Perfect = out.TotalScore == out.MaxScore
	}
	return out
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.LLM == nil {
		return "", fmt.Errorf("%w: %w", ErrLLM, llm.ErrNotConfigured)
	}
	reply, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLM, err)
	}
	return reply, nil
}

func (s *Service) trackError(ctx context.Context, userID, name string, err error) {
	telemetry.Warn("quizzes.llm_failed", map[string]any{"stage": name, "error": err, "user_id": userID})
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventError, map[string]any{"errorType": name, "error": err.Error()})
}
