package reporting

import (
	"context"
	"errors"

	"voice-mentor/internal/calls"
	"voice-mentor/internal/todos"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting. Every method is scoped to one user.
type Repository interface {
	ListCalls(ctx context.Context, userID string) ([]calls.CallLog, error)
	ListTodos(ctx context.Context, userID string) ([]todos.Todo, error)
}

// Sources reads straight from the call log and todo repositories.
type Sources struct {
	Calls calls.Repository
	Todos todos.Repository
}

func (s Sources) ListCalls(ctx context.Context, userID string) ([]calls.CallLog, error) {
	return s.Calls.ListByUser(ctx, userID)
}

func (s Sources) ListTodos(ctx context.Context, userID string) ([]todos.Todo, error) {
	return s.Todos.ListByUser(ctx, userID)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) CallsSummary(ctx context.Context, req SummaryRequest) (CallsSummary, error) {
	if req.UserID == "" || !req.Range.valid() {
		return CallsSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return CallsSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListCalls(ctx, req.UserID)
	if err != nil {
		return CallsSummary{}, err
	}

	out := CallsSummary{ByCareerPath: map[string]int{}}
	for _, c := range rows {
		if !req.Range.contains(c.CreatedAt) {
			continue
		}
		out.TotalCalls++
		out.TotalDurationSeconds += c.DurationSeconds
		out.ByCareerPath[c.CareerPath]++
		if c.RecordingURL != "" {
			out.RecordedCalls++
		}
		switch c.Status {
		case calls.CallStatusCompleted:
			out.CompletedCalls++
		case calls.CallStatusFailed:
			out.FailedCalls++
		case calls.CallStatusInitiated:
			out.InProgressCalls++
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.TotalCalls
	}
	return out, nil
}

func (s *Service) TodoProgress(ctx context.Context, req SummaryRequest) (TodoProgress, error) {
	if req.UserID == "" || !req.Range.valid() {
		return TodoProgress{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return TodoProgress{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListTodos(ctx, req.UserID)
	if err != nil {
		return TodoProgress{}, err
	}

	var out TodoProgress
	for _, t := range rows {
		if !req.Range.contains(t.CreatedAt) {
			continue
		}
		out.Total++
		if t.Source == todos.SourceConversation {
			out.FromConversations++
		}
		switch t.Status {
		case todos.StatusNotStarted:
			out.NotStarted++
		case todos.StatusInProgress:
			out.InProgress++
		case todos.StatusCompleted:
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.CompletionRate = float64(out.Completed) / float64(out.Total)
	}
	return out, nil
}

// Summary combines the call and todo figures for the dashboard.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (Summary, error) {
	c, err := s.CallsSummary(ctx, req)
	if err != nil {
		return Summary{}, err
	}
	t, err := s.TodoProgress(ctx, req)
	if err != nil {
		return Summary{}, err
	}
	return Summary{UserID: req.UserID, Calls: c, Todos: t}, nil
}
