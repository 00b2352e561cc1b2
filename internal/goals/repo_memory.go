package goals

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured.
type MemoryRepo struct {
	mu         sync.RWMutex
	categories map[string]Category
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{categories: make(map[string]Category)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, clone(c))
	}
	r.mu.RUnlock()
	sortCategories(out)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Category, error) {
	if err := ctx.Err(); err != nil {
		return Category{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return clone(c), nil
}

func (r *MemoryRepo) Create(ctx context.Context, c Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = clone(c)
	return nil
}

func (r *MemoryRepo) Save(ctx context.Context, c Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.categories[c.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Category = c.Category
	existing.Tasks = c.Tasks
	existing.Suggestions = c.Suggestions
	existing.UpdatedAt = c.UpdatedAt
	r.categories[c.ID] = clone(existing)
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *MemoryRepo) SetOrder(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.categories[id]; !ok {
			return ErrNotFound
		}
	}
	for i, id := range ids {
		c := r.categories[id]
		c.Order = i
		r.categories[id] = c
	}
	return nil
}

func clone(c Category) Category {
	c.Tasks = append([]Task{}, c.Tasks...)
	c.Suggestions = append([]Suggestion{}, c.Suggestions...)
	return c
}

func sortCategories(list []Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
