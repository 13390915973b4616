package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"voice-mentor/pkg/logger"
)

// Repository is the persistence contract for audit events. It is append-only.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records account activity.
//
// IMPORTANT:
// - Audit is internal-only. These records are not exposed to users.
// - Callers should treat audit logging as best-effort; see Record.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.UserID == "" || e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// Record appends an event and logs, rather than returns, any failure.
// A nil Service is a no-op.
func (s *Service) Record(ctx context.Context, userID string, typ EventType, ip, ref, message string) {
	if s == nil {
		return
	}
	err := s.Append(ctx, Event{
		UserID:    userID,
		Type:      typ,
		IPAddress: ip,
		Ref:       ref,
		Message:   message,
	})
	if err != nil {
		logger.From(ctx).Warn("audit event dropped", "type", string(typ), "user_id", userID, "err", err)
	}
}
