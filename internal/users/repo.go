package users

import "context"

type Repo interface {
	// Upsert inserts or refreshes a profile and stamps the login time.
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
