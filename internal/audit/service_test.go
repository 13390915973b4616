package audit

import (
	"context"
	"errors"
	"testing"
)

func TestService_AppendRequiresUserAndType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{Type: EventTypeLogin}); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Append(context.Background(), Event{UserID: "u"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_RecordAppendsEvents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	svc.Record(context.Background(), "u1", EventTypeCallPlaced, "1.2.3.4", "CA123", "Data Science")

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].IPAddress != "1.2.3.4" || evs[0].Ref != "CA123" {
		t.Fatalf("unexpected event: %+v", evs[0])
	}
	if evs[0].ID == "" || evs[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned")
	}
}

type failingRepo struct{}

func (failingRepo) Append(ctx context.Context, e Event) error { return errors.New("down") }

func TestService_RecordIsBestEffort(t *testing.T) {
	NewService(failingRepo{}).Record(context.Background(), "u1", EventTypeLogin, "", "", "")
	NewService(nil).Record(context.Background(), "u1", EventTypeLogin, "", "", "")

	var nilSvc *Service
	nilSvc.Record(context.Background(), "u1", EventTypeLogin, "", "", "")
}

func TestMemoryRepo_ForUser(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	svc.Record(context.Background(), "u1", EventTypeSignup, "", "", "")
	svc.Record(context.Background(), "u2", EventTypeSignup, "", "", "")
	svc.Record(context.Background(), "u1", EventTypeLogin, "", "", "")

	got := repo.ForUser("u1")
	if len(got) != 2 || got[0].Type != EventTypeSignup || got[1].Type != EventTypeLogin {
		t.Fatalf("unexpected events for u1: %+v", got)
	}
	if n := len(repo.Events()); n != 3 {
		t.Fatalf("expected 3 events, got %d", n)
	}
}
