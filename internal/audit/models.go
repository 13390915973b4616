package audit

import "time"

// Event is an immutable, append-only record of account activity.
//
// Invariants:
// - Events are never updated or deleted.
// - user_id is required.
// - ip capture is best-effort; do not block critical flows on audit failures.
type Event struct {
	ID     string    `json:"id" db:"id" bson:"_id"`
	UserID string    `json:"userId" db:"user_id" bson:"userId"`
	Type   EventType `json:"type" db:"type" bson:"type"`

	IPAddress string `json:"ipAddress,omitempty" db:"ip_address" bson:"ipAddress,omitempty"`

	// CallSID or verification reference, depending on Type.
	Ref string `json:"ref,omitempty" db:"ref" bson:"ref,omitempty"`

	Message string `json:"message,omitempty" db:"message" bson:"message,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
}

type EventType string

const (
	EventTypeSignup                EventType = "signup"
	EventTypeLogin                 EventType = "login"
	EventTypeCallPlaced            EventType = "call_placed"
	EventTypeVerificationRequested EventType = "verification_requested"
)
