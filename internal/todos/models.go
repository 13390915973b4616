package todos

import "time"

// Todo is an action item owned by one user. Items created at the end of a
// mentoring call carry Source "conversation".
type Todo struct {
	ID          string   `json:"id" db:"id" bson:"_id"`
	UserID      string   `json:"userId" db:"user_id" bson:"userId"`
	Title       string   `json:"title" db:"title" bson:"title"`
	Description string   `json:"description" db:"description" bson:"description"`
	Status      Status   `json:"status" db:"status" bson:"status"`
	Source      string   `json:"source,omitempty" db:"source" bson:"source,omitempty"`
	Priority    Priority `json:"priority" db:"priority" bson:"priority"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

const SourceConversation = "conversation"

// Patch carries a partial update. Empty fields are left untouched.
type Patch struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

func (p Patch) apply(t *Todo) {
	if p.Title != "" {
		t.Title = p.Title
	}
	if p.Description != "" {
		t.Description = p.Description
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.Priority != "" {
		t.Priority = p.Priority
	}
}
