package todos

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	todos map[string]Todo
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{todos: make(map[string]Todo)}
}

func (r *MemoryRepo) Create(ctx context.Context, t Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos[t.ID] = t
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Toggle(ctx context.Context, userID, id string) (Todo, error) {
	if err := ctx.Err(); err != nil {
		return Todo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return Todo{}, ErrNotFound
	}
	t.Completed = !t.Completed
	r.todos[id] = t
	return t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
