package coverletters

import "context"

type Repo interface {
	Create(ctx context.Context, l CoverLetter) error
	GetByID(ctx context.Context, userID, id string) (CoverLetter, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID string) ([]CoverLetter, error)
	Delete(ctx context.Context, userID, id string) error
}
