package goals

import "time"

// Task is one item of a goal category.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// Suggestion is a task proposed by a visitor, pending owner approval.
type Suggestion struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	SuggestedBy string `json:"suggestedBy"`
}

// Category groups tasks under a named goal.
type Category struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Category    string       `json:"category"`
	Tasks       []Task       `json:"tasks"`
	Suggestions []Suggestion `json:"suggestions"`
	Order       int          `json:"order"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Actor is the caller performing a goal operation.
type Actor struct {
	ID    string
	Email string
}
