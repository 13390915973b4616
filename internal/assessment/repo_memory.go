package assessment

import (
	"context"
	"sync"

	"voice-mentor/internal/ai"
)

type MemoryRepo struct {
	mu   sync.Mutex
	byID map[string]History
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{byID: map[string]History{}} }

func (r *MemoryRepo) Get(ctx context.Context, userID string) (History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byID[userID]
	if !ok {
		return History{}, ErrNotFound
	}
	h.Entries = append([]ai.QA(nil), h.Entries...)
	return h, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, h History) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.Entries = append([]ai.QA(nil), h.Entries...)
	r.byID[h.UserID] = h
	return nil
}
