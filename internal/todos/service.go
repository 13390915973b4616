package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"voice-mentor/internal/ai"
)

// maxConcurrentSaves bounds the fan-out of SaveSuggestions.
const maxConcurrentSaves = 5

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Source      string   `json:"source"`
}

func (s *Service) List(ctx context.Context, userID string) ([]Todo, error) {
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	return s.repo.ListByUser(ctx, userID)
}

// Create stores a new todo. Title and description are required; status
// defaults to not-started and priority to medium.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Todo, error) {
	title := strings.TrimSpace(req.Title)
	desc := strings.TrimSpace(req.Description)
	if userID == "" || title == "" || desc == "" {
		return Todo{}, ErrInvalidRequest
	}
	if req.Status == "" {
		req.Status = StatusNotStarted
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !req.Status.Valid() || !req.Priority.Valid() {
		return Todo{}, ErrInvalidRequest
	}

	now := s.clock().UTC()
	t := Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: desc,
		Status:      req.Status,
		Source:      req.Source,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return Todo{}, err
	}
	return t, nil
}

// Update applies the non-empty fields of p to the user's todo.
func (s *Service) Update(ctx context.Context, userID, id string, p Patch) (Todo, error) {
	if userID == "" || id == "" {
		return Todo{}, ErrInvalidRequest
	}
	if (p.Status != "" && !p.Status.Valid()) || (p.Priority != "" && !p.Priority.Valid()) {
		return Todo{}, ErrInvalidRequest
	}

	t, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Todo{}, err
	}
	p.apply(&t)
	t.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidRequest
	}
	return s.repo.Delete(ctx, userID, id)
}

// SaveSuggestions stores generated action items for userID concurrently and
// waits for all of them. One failed insert does not cancel the others; the
// count of stored items is returned with the joined errors.
func (s *Service) SaveSuggestions(ctx context.Context, userID string, items []ai.TodoSuggestion) (int, error) {
	if userID == "" {
		return 0, ErrInvalidRequest
	}

	var (
		g     errgroup.Group
		saved atomic.Int64
		errs  = make([]error, len(items))
	)
	g.SetLimit(maxConcurrentSaves)

	for i, item := range items {
		i, item := i, item // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			_, err := s.Create(ctx, userID, CreateRequest{
				Title:       item.Title,
				Description: item.Description,
				Status:      StatusNotStarted,
				Priority:    suggestionPriority(item.Priority),
				Source:      SourceConversation,
			})
			if err != nil {
				errs[i] = fmt.Errorf("todo %d %q: %w", i, item.Title, err)
				return nil
			}
			saved.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(saved.Load()), errors.Join(errs...)
}

func suggestionPriority(p ai.Priority) Priority {
	if out := Priority(p); out.Valid() {
		return out
	}
	return PriorityMedium
}
