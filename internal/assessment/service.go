package assessment

import (
	"context"
	"errors"
	"strings"
	"time"

	"voice-mentor/internal/ai"
	"voice-mentor/pkg/logger"
)

// DefaultChatCareerPath frames chat replies when the client names no career.
const DefaultChatCareerPath = "general career advice"

// Generator is the text generation the assessment endpoints need.
type Generator interface {
	AssessmentQuestion(ctx context.Context, history []ai.QA) (ai.Question, error)
	Roadmaps(ctx context.Context, history []ai.QA) ([]ai.Roadmap, error)
	Reply(ctx context.Context, userInput, careerPath string, conversation any) (string, error)
}

type Service struct {
	gen   Generator
	repo  Repository
	clock func() time.Time
}

func NewService(gen Generator, repo Repository) *Service {
	return &Service{gen: gen, repo: repo, clock: time.Now}
}

// NextQuestion generates the question following history and stores history as
// the user's transcript. Storage failures are logged only.
func (s *Service) NextQuestion(ctx context.Context, userID string, history []ai.QA) (ai.Question, error) {
	q, err := s.gen.AssessmentQuestion(ctx, history)
	if err != nil {
		return ai.Question{}, err
	}
	s.store(ctx, userID, history)
	return q, nil
}

// Roadmaps generates career roadmaps from the finished assessment and stores
// its transcript. Storage failures are logged only.
func (s *Service) Roadmaps(ctx context.Context, userID string, history []ai.QA) ([]ai.Roadmap, error) {
	maps, err := s.gen.Roadmaps(ctx, history)
	if err != nil {
		return nil, err
	}
	s.store(ctx, userID, history)
	return maps, nil
}

type ChatRequest struct {
	Message    string         `json:"message"`
	CareerPath string         `json:"careerPath"`
	Context    map[string]any `json:"context"`
}

// Chat answers a free-form message and appends the exchange to the transcript.
func (s *Service) Chat(ctx context.Context, userID string, req ChatRequest) (string, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return "", ErrInvalidRequest
	}
	careerPath := strings.TrimSpace(req.CareerPath)
	if careerPath == "" {
		careerPath = DefaultChatCareerPath
	}
	conversation := req.Context
	if conversation == nil {
		conversation = map[string]any{}
	}

	reply, err := s.gen.Reply(ctx, msg, careerPath, conversation)
	if err != nil {
		return "", err
	}
	s.append(ctx, userID, ai.QA{Question: msg, Answer: ai.Answer(reply), Timestamp: s.clock().UTC()})
	return reply, nil
}

// Messages returns the user's transcript as chat messages. A user with no
// transcript gets an empty list.
func (s *Service) Messages(ctx context.Context, userID string) ([]ChatMessage, error) {
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	h, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return []ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]ChatMessage, 0, len(h.Entries))
	for _, e := range h.Entries {
		out = append(out, ChatMessage{User: e.Question, AI: string(e.Answer), Timestamp: e.Timestamp})
	}
	return out, nil
}

func (s *Service) store(ctx context.Context, userID string, history []ai.QA) {
	if userID == "" || s.repo == nil {
		return
	}
	err := s.repo.Upsert(ctx, History{UserID: userID, Entries: history, UpdatedAt: s.clock().UTC()})
	if err != nil {
		logger.From(ctx).Error("assessment history not saved", "user_id", userID, "err", err)
	}
}

func (s *Service) append(ctx context.Context, userID string, entry ai.QA) {
	if userID == "" || s.repo == nil {
		return
	}
	h, err := s.repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.From(ctx).Error("chat history not loaded", "user_id", userID, "err", err)
		return
	}
	s.store(ctx, userID, append(h.Entries, entry))
}
