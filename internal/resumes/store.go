package resumes

import (
	"context"
	"time"
)

// record is implemented by every resume record kind.
type record[T any] interface {
	owner() string
	key() string
	created() time.Time
	withSelected(bool) T
	isSelected() bool
}

// Store persists one kind of resume record. Every method is scoped to the owner.
type Store[T any] interface {
	Create(ctx context.Context, v T) error
	Update(ctx context.Context, v T) error
	Get(ctx context.Context, userID, id string) (T, error)
	// List returns oldest first; selectedOnly limits it to records picked for the resume.
	List(ctx context.Context, userID string, selectedOnly bool) ([]T, error)
	SetSelected(ctx context.Context, userID, id string, selected bool) (T, error)
	Delete(ctx context.Context, userID, id string) error
}

// Repos groups the stores of every record kind.
type Repos struct {
	Jobs     Store[Job]
	Projects Store[Project]
	Skills   Store[Skill]
	Files    Store[File]
}

// NewMemoryRepos returns in-process stores used when no database is configured.
func NewMemoryRepos() Repos {
	return Repos{
		Jobs:     NewMemoryStore[Job](),
		Projects: NewMemoryStore[Project](),
		Skills:   NewMemoryStore[Skill](),
		Files:    NewMemoryStore[File](),
	}
}
