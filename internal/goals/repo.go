package goals

import "context"

// Repo persists goal categories. Tasks and suggestions are stored with their category.
type Repo interface {
	// List returns categories by order, then createdAt.
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, c Category) error
	// Save replaces the category name, tasks and suggestions.
	Save(ctx context.Context, c Category) error
	Delete(ctx context.Context, id string) error
	// SetOrder assigns order i to ids[i] in a single transaction.
	SetOrder(ctx context.Context, ids []string) error
}
