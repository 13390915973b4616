package calls

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory repository for tests and local runs.
type MemoryRepo struct {
	mu   sync.Mutex
	logs map[string]CallLog // keyed by call sid
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{logs: map[string]CallLog{}} }

func (r *MemoryRepo) Insert(ctx context.Context, l CallLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[l.CallSID] = l
	return nil
}

func (r *MemoryRepo) GetByCallSID(ctx context.Context, callSID string) (CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[callSID]
	if !ok {
		return CallLog{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, callSID string, status CallStatus, durationSeconds int, at time.Time) (CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.logs[callSID]
	if !ok {
		return CallLog{}, ErrNotFound
	}
	l := prev
	l.Status = status
	l.DurationSeconds = durationSeconds
	l.UpdatedAt = at
	r.logs[callSID] = l
	return prev, nil
}

func (r *MemoryRepo) SetRecording(ctx context.Context, callSID, url string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[callSID]
	if !ok {
		return ErrNotFound
	}
	l.RecordingURL = url
	l.UpdatedAt = at
	r.logs[callSID] = l
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallLog, 0)
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
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

// Len reports how many logs are stored.
func (r *MemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}
