package activities

import (
	"errors"
	"time"
)

const (
	TypeJobSearch  = "job_search"
	TypeUpskilling = "upskilling"

	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusPlanned    = "planned"

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Activity is one logged block of job-search or upskilling work.
type Activity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeSpent   int       `json:"timeSpent"`
	Status      string    `json:"status"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the editable part of an activity.
type Input struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeSpent   int    `json:"timeSpent"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// Summary aggregates the activities of one day.
type Summary struct {
	Date           string         `json:"date"`
	Count          int            `json:"count"`
	TotalMinutes   int            `json:"totalMinutes"`
	TotalFormatted string         `json:"totalFormatted"`
	ByType         map[string]int `json:"byType"`
}

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
