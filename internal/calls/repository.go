package calls

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("calls: not found")

// Repository persists call logs. Logs are never deleted.
type Repository interface {
	Insert(ctx context.Context, l CallLog) error
	GetByCallSID(ctx context.Context, callSID string) (CallLog, error)
	// UpdateStatus sets status and duration and returns the log as it was before
	// the update. Concurrent updates of one call are serialized, so exactly one of
	// them observes CallStatusInitiated.
	UpdateStatus(ctx context.Context, callSID string, status CallStatus, durationSeconds int, at time.Time) (CallLog, error)
	SetRecording(ctx context.Context, callSID, url string, at time.Time) error
	// ListByUser returns the user's logs, newest first.
	ListByUser(ctx context.Context, userID string) ([]CallLog, error)
}
