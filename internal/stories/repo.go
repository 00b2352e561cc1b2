package stories

import "context"

// Repo persists stories. Every method is scoped to the author.
type Repo interface {
	Create(ctx context.Context, s Story) error
	Update(ctx context.Context, s Story) error
	GetByID(ctx context.Context, authorID, id string) (Story, error)
	// ListByAuthor returns newest first; limit <= 0 returns all.
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Story, error)
	ListByIDs(ctx context.Context, authorID string, ids []string) ([]Story, error)
	Delete(ctx context.Context, authorID, id string) error
}
