package todos

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory repository for tests and local runs.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]Todo
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{items: map[string]Todo{}} }

func (r *MemoryRepo) Insert(ctx context.Context, t Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[t.ID] = t
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok || t.UserID != userID {
		return Todo{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Todo, 0)
	for _, t := range r.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, t Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[t.ID]
	if !ok || cur.UserID != t.UserID {
		return ErrNotFound
	}
	r.items[t.ID] = t
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok || cur.UserID != userID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
