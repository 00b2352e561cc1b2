package stories

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	stories map[string]Story
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{stories: make(map[string]Story)}
}

func (r *MemoryRepo) Create(ctx context.Context, s Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stories[s.ID] = s
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, s Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.stories[s.ID]
	if !ok || existing.AuthorID != s.AuthorID {
		return ErrNotFound
	}
	r.stories[s.ID] = s
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, authorID, id string) (Story, error) {
	if err := ctx.Err(); err != nil {
		return Story{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stories[id]
	if !ok || s.AuthorID != authorID {
		return Story{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Story, 0)
	for _, s := range r.stories {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset > 0 {
		if offset >= len(out) {
			return []Story{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ListByIDs(ctx context.Context, authorID string, ids []string) ([]Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Story, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := r.stories[id]; ok && s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, authorID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stories[id]
	if !ok || s.AuthorID != authorID {
		return ErrNotFound
	}
	delete(r.stories, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
