package todos

import "context"

type Repo interface {
	Create(ctx context.Context, t Todo) error
	// ListByUser returns oldest first.
	ListByUser(ctx context.Context, userID string) ([]Todo, error)
	// Toggle flips completed and returns the updated todo.
	Toggle(ctx context.Context, userID, id string) (Todo, error)
	Delete(ctx context.Context, userID, id string) error
}
