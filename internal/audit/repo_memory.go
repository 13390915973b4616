package audit

import (
	"context"
	"sync"
)

// MemoryRepo keeps activity events in process. Used by tests and local runs.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(_ context.Context, e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

// Events returns a snapshot in append order.
func (r *MemoryRepo) Events() []Event {
	return r.ForUser("")
}

// ForUser returns the events recorded for userID, in append order.
// An empty userID matches every event.
func (r *MemoryRepo) ForUser(userID string) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		if userID == "" || e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
