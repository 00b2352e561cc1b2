package activities

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured.
type MemoryRepo struct {
	mu         sync.RWMutex
	activities map[string]Activity
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{activities: make(map[string]Activity)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[a.ID] = a
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, a Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.activities[a.ID]
	if !ok || existing.UserID != a.UserID {
		return ErrNotFound
	}
	r.activities[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Activity, error) {
	if err := ctx.Err(); err != nil {
		return Activity{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.activities[id]
	if !ok || a.UserID != userID {
		return Activity{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Activity, error) {
	return r.filter(ctx, func(a Activity) bool { return a.UserID == userID })
}

func (r *MemoryRepo) ListByDate(ctx context.Context, userID, date string) ([]Activity, error) {
	return r.filter(ctx, func(a Activity) bool { return a.UserID == userID && a.Date == date })
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Activity) bool) ([]Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Activity, 0)
	for _, a := range r.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok || a.UserID != userID {
		return ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
