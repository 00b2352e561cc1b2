package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo backs users when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]User
	clock func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]User), clock: time.Now}
}

// Upsert mirrors PGRepo: empty name or picture keeps what is stored.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := r.clock().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.byID[user.ID]
	if !exists {
		stored = User{ID: user.ID, CreatedAt: now}
	}
	stored.Email = user.Email
	if user.FullName != "" {
		stored.FullName = user.FullName
	}
	if user.PictureURL != "" {
		stored.PictureURL = user.PictureURL
	}
	stored.UpdatedAt = now
	stored.LastLoginAt = &now
	r.byID[user.ID] = stored
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	u, ok := r.byID[userID]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

var _ Repo = (*MemoryRepo)(nil)
