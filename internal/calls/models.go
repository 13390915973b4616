package calls

import "time"

// CallLog records one mentoring call placed for a user.
//
// It is created when the call is placed and only ever updated by status
// callbacks afterwards. CallSID is the provider's call identifier and is unique.
type CallLog struct {
	ID     string `json:"id" db:"id" bson:"_id"`
	UserID string `json:"userId" db:"user_id" bson:"userId"`

	CallSID string `json:"callSid" db:"call_sid" bson:"callSid"`

	To   string `json:"to" db:"to_number" bson:"to"`
	From string `json:"from" db:"from_number" bson:"from"`

	CareerPath string     `json:"careerPath" db:"career_path" bson:"careerPath"`
	Status     CallStatus `json:"status" db:"status" bson:"status"`

	// DurationSeconds is reported by the provider once the call ends.
	DurationSeconds int `json:"duration" db:"duration" bson:"duration"`

	Notes        string `json:"notes,omitempty" db:"notes" bson:"notes,omitempty"`
	RecordingURL string `json:"recordingUrl,omitempty" db:"recording_url" bson:"recordingUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}

type CallStatus string

const (
	CallStatusInitiated CallStatus = "initiated"
	CallStatusCompleted CallStatus = "completed"
	CallStatusFailed    CallStatus = "failed"
)

// StatusFromProvider maps a provider call status onto the log's status set.
// Anything other than "completed" counts as failed.
func StatusFromProvider(s string) CallStatus {
	if s == string(CallStatusCompleted) {
		return CallStatusCompleted
	}
	return CallStatusFailed
}

// DefaultCareerPath is used when a call is requested without a topic.
const DefaultCareerPath = "General Career Advice"
