package quizzes

import (
	"errors"
	"time"
)

const (
	TypeMultipleChoice = "multiple_choice"
	TypeShortAnswer    = "short_answer"

	DefaultDifficulty = 3
	MaxDifficulty     = 10

	multipleChoicePoints = 5
	shortAnswerPoints    = 10
)

var difficultyLabels = [...]string{
	"",
	"Beginner",
	"Novice",
	"Easy",
	"Intermediate",
	"Competent",
	"Proficient",
	"Advanced",
	"Expert",
	"Genius",
	"Harvard",
}

// DifficultyLabel names a difficulty level; out-of-range levels have no label.
func DifficultyLabel(level int) string {
	if level < 1 || level > MaxDifficulty {
		return ""
	}
	return difficultyLabels[level]
}

// Question is one generated quiz item. CorrectAnswer travels with the quiz so it can be graded.
type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// MaxPoints is the score available for the question type.
func (q Question) MaxPoints() float64 {
	if q.Type == TypeMultipleChoice {
		return multipleChoicePoints
	}
	return shortAnswerPoints
}

type Quiz struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Difficulty      int        `json:"difficulty"`
	DifficultyLabel string     `json:"difficultyLabel"`
	Questions       []Question `json:"questions"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Result is the grade of one answer.
type Result struct {
	QuestionID    string  `json:"questionId"`
	Points        float64 `json:"points"`
	MaxPoints     float64 `json:"maxPoints"`
	Feedback      string  `json:"feedback"`
	Explanation   string  `json:"explanation,omitempty"`
	CorrectAnswer string  `json:"correctAnswer"`
}

type Grade struct {
	Results    []Result `json:"results"`
	TotalScore float64  `json:"totalScore"`
	MaxScore   float64  `json:"maxScore"`
	Percentage int      `json:"percentage"`
	Perfect    bool     `json:"perfect"`
}

var (
	ErrNotesRequired     = errors.New("notes are required")
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 10")
	ErrNoQuestions       = errors.New("quiz has no questions")
	ErrUnanswered        = errors.New("unanswered questions")
	// ErrInvalidOutput means the model reply could not be turned into a quiz or grade.
	ErrInvalidOutput = errors.New("invalid model output")
	// ErrLLM wraps completer failures.
	ErrLLM = errors.New("llm call failed")
)
