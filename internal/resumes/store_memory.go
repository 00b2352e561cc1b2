package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore[T record[T]] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewMemoryStore[T record[T]]() *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[string]T)}
}

func (s *MemoryStore[T]) Create(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[v.key()] = v
	return nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[v.key()]
	if !ok || existing.owner() != v.owner() {
		return ErrNotFound
	}
	s.items[v.key()] = v
	return nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, userID, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok || v.owner() != userID {
		return zero, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore[T]) List(ctx context.Context, userID string, selectedOnly bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]T, 0)
	for _, v := range s.items {
		if v.owner() != userID || (selectedOnly && !v.isSelected()) {
			continue
		}
		out = append(out, v)
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].created().Before(out[j].created()) })
	return out, nil
}

func (s *MemoryStore[T]) SetSelected(ctx context.Context, userID, id string, selected bool) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok || v.owner() != userID {
		return zero, ErrNotFound
	}
	v = v.withSelected(selected)
	s.items[id] = v
	return v, nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok || v.owner() != userID {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

var (
	_ Store[Job]     = (*MemoryStore[Job])(nil)
	_ Store[Project] = (*MemoryStore[Project])(nil)
	_ Store[Skill]   = (*MemoryStore[Skill])(nil)
	_ Store[File]    = (*MemoryStore[File])(nil)
)
