package coverletters

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	letters map[string]CoverLetter
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{letters: make(map[string]CoverLetter)}
}

func (r *MemoryRepo) Create(ctx context.Context, l CoverLetter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters[l.ID] = l
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.letters[id]
	if !ok || l.UserID != userID {
		return CoverLetter{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]CoverLetter, 0)
	for _, l := range r.letters {
		if l.UserID == userID {
			out = append(out, l)
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
	l, ok := r.letters[id]
	if !ok || l.UserID != userID {
		return ErrNotFound
	}
	delete(r.letters, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
