package activities

import "context"

type Repo interface {
	Create(ctx context.Context, a Activity) error
	Update(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, userID, id string) (Activity, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string) ([]Activity, error)
	ListByDate(ctx context.Context, userID, date string) ([]Activity, error)
	Delete(ctx context.Context, userID, id string) error
}
