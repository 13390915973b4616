package reporting

import "time"

// TimeRange filters by creation time, From inclusive and To exclusive.
// A zero bound is open.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r TimeRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

func (r TimeRange) valid() bool {
	return r.From.IsZero() || r.To.IsZero() || r.To.After(r.From)
}

// SummaryRequest asks for one user's dashboard figures.
type SummaryRequest struct {
	UserID string    `json:"userId"`
	Range  TimeRange `json:"range"`
}

type CallsSummary struct {
	TotalCalls      int `json:"totalCalls"`
	CompletedCalls  int `json:"completedCalls"`
	FailedCalls     int `json:"failedCalls"`
	InProgressCalls int `json:"inProgressCalls"`

	TotalDurationSeconds   int `json:"totalDurationSeconds"`
	AverageDurationSeconds int `json:"averageDurationSeconds"`

	RecordedCalls int `json:"recordedCalls"`

	// ByCareerPath counts calls per topic.
	ByCareerPath map[string]int `json:"byCareerPath"`
}

type TodoProgress struct {
	Total      int `json:"total"`
	NotStarted int `json:"notStarted"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`

	// FromConversations counts items generated at the end of a call.
	FromConversations int `json:"fromConversations"`

	CompletionRate float64 `json:"completionRate"`
}

type Summary struct {
	UserID string       `json:"userId"`
	Calls  CallsSummary `json:"calls"`
	Todos  TodoProgress `json:"todos"`
}
