package quizzes

import (
	"encoding/json"
	"fmt"
)

const generatePromptTemplate = `Create a quiz based on the following notes. Return ONLY valid JSON, no explanations, markdown, or extra text. Limit the quiz to 5 questions. Each question should be either multiple choice (with 3-4 options) or short answer. For each question, include: id, type, question, options (if multiple choice), and correctAnswer. Do NOT include explanations or grading.

The quiz should be at difficulty level %d (1 = Beginner, 10 = Harvard-level).

Example format:
{
  "title": "Quiz Title",
  "questions": [
    {
      "id": "q1",
      "type": "multiple_choice",
      "question": "...",
      "options": ["A", "B", "C"],
      "correctAnswer": "A"
    },
    {
      "id": "q2",
      "type": "short_answer",
      "question": "...",
      "correctAnswer": "..."
    }
  ]
}

Notes:
%s`

const gradePromptTemplate = `You are a quiz grader. Grade the following answers. For each question, award points (5 for multiple choice, 10 for short answer), give feedback, and provide a brief explanation. Use partial credit for short answers if appropriate. Return ONLY valid JSON in this format:
[
  {
    "questionId": "q1",
    "points": 5,
    "maxPoints": 5,
    "feedback": "...",
    "explanation": "...",
    "correctAnswer": "..."
  }
]

Questions and Answers:
%s`

// GeneratePrompt builds the quiz generation prompt.
func GeneratePrompt(notes string, difficulty int) string {
	return fmt.Sprintf(generatePromptTemplate, difficulty, notes)
}

type gradingItem struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	UserAnswer    string   `json:"userAnswer"`
	Options       []string `json:"options,omitempty"`
}

// GradePrompt builds the grading prompt with every question and its answer.
func GradePrompt(q Quiz, answers map[string]string) (string, error) {
	items := make([]gradingItem, 0, len(q.Questions))
	for _, question := range q.Questions {
		items = append(items, gradingItem{
			ID:            question.ID,
			Type:          question.Type,
			Question:      question.Question,
			CorrectAnswer: question.CorrectAnswer,
			UserAnswer:    answers[question.ID],
			Options:       question.Options,
		})
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(gradePromptTemplate, payload), nil
}
