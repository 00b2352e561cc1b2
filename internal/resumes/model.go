package resumes

import (
	"errors"
	"time"
)

// Job is a past position the user can pick for a resume.
type Job struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	BulletPoints []string  `json:"bulletPoints"`
	Selected     bool      `json:"selected"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Project struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Link         string    `json:"link,omitempty"`
	Selected     bool      `json:"selected"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Skill struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Selected  bool      `json:"selected"`
	CreatedAt time.Time `json:"createdAt"`
}

// File is an uploaded resume document and the text pulled out of it.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	FileName      string    `json:"fileName"`
	MimeType      string    `json:"mimeType"`
	SizeBytes     int64     `json:"sizeBytes"`
	StorageKey    string    `json:"-"`
	ExtractedText string    `json:"extractedText"`
	Selected      bool      `json:"selected"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (j Job) owner() string           { return j.UserID }
func (j Job) key() string             { return j.ID }
func (j Job) created() time.Time      { return j.CreatedAt }
func (j Job) withSelected(v bool) Job { j.Selected = v; return j }
func (j Job) isSelected() bool        { return j.Selected }

func (p Project) owner() string               { return p.UserID }
func (p Project) key() string                 { return p.ID }
func (p Project) created() time.Time          { return p.CreatedAt }
func (p Project) withSelected(v bool) Project { p.Selected = v; return p }
func (p Project) isSelected() bool            { return p.Selected }

func (s Skill) owner() string             { return s.UserID }
func (s Skill) key() string               { return s.ID }
func (s Skill) created() time.Time        { return s.CreatedAt }
func (s Skill) withSelected(v bool) Skill { s.Selected = v; return s }
func (s Skill) isSelected() bool          { return s.Selected }

func (f File) owner() string            { return f.UserID }
func (f File) key() string              { return f.ID }
func (f File) created() time.Time       { return f.CreatedAt }
func (f File) withSelected(v bool) File { f.Selected = v; return f }
func (f File) isSelected() bool         { return f.Selected }

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLLM          = errors.New("llm call failed")
)

// ErrObjectiveInput is returned when either objective field is blank.
var ErrObjectiveInput = errors.New("job description and current objective are required")
