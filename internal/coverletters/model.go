package coverletters

import (
	"errors"
	"time"
)

// CoverLetter is a saved, user-edited letter together with the stories it drew on.
type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserEmail      string    `json:"userEmail,omitempty"`
	JobDescription string    `json:"jobDescription"`
	StoryIDs       []string  `json:"storyIds"`
	CoverLetter    string    `json:"coverLetter"`
	CreatedAt      time.Time `json:"createdAt"`
}

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLLM          = errors.New("llm call failed")
)
