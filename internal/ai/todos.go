package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Exchange is one spoken round-trip of a mentoring call.
type Exchange struct {
	UserInput  string    `json:"userInput"`
	AIResponse string    `json:"aiResponse"`
	Turn       int       `json:"turn"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReplyContext is what the model sees about the call so far.
type ReplyContext struct {
	TurnCount         int      `json:"turnCount"`
	PreviousResponses []string `json:"previousResponses"`
	CareerPath        string   `json:"careerPath"`
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
	default:
		return false
	}
}

// TodoSuggestion is an action item derived from a conversation.
type TodoSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// A conversation yields between MinTodos and MaxTodos items.
const (
	MinTodos = 3
	MaxTodos = 5
)

var errInvalidTodos = errors.New("ai: invalid todo format")

// Todos derives action items from a finished call.
//
// A transport failure is returned as an error. Output that is not a JSON array of
// at least MinTodos complete items is replaced by FallbackTodos; extra items past
// MaxTodos are dropped.
func (g *Generator) Todos(ctx context.Context, history []Exchange, careerPath string) ([]TodoSuggestion, error) {
	raw, err := g.complete(ctx, todosPrompt(history, careerPath))
	if err != nil {
		return nil, err
	}
	todos, err := parseTodos(raw)
	if err != nil {
		logParseFailure(ctx, "todos", err, raw)
		return FallbackTodos(careerPath), nil
	}
	return todos, nil
}

func parseTodos(raw string) ([]TodoSuggestion, error) {
	var todos []TodoSuggestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &todos); err != nil {
		return nil, err
	}
	if len(todos) < MinTodos {
		return nil, errInvalidTodos
	}
	if len(todos) > MaxTodos {
		todos = todos[:MaxTodos]
	}
	for _, t := range todos {
		if t.Title == "" || t.Description == "" || !t.Priority.Valid() {
			return nil, errInvalidTodos
		}
	}
	return todos, nil
}

// FallbackTodos are used whenever the model's todo list cannot be trusted.
func FallbackTodos(careerPath string) []TodoSuggestion {
	return []TodoSuggestion{
		{
			Title:       "Research career opportunities in " + careerPath,
			Description: "Explore job listings, salary ranges, and growth prospects in your chosen field",
			Priority:    PriorityHigh,
		},
		{
			Title:       "Identify key skills to develop",
			Description: "Based on our conversation, focus on learning the most important skills for " + careerPath,
			Priority:    PriorityHigh,
		},
		{
			Title:       "Create a learning plan",
			Description: "Outline specific steps and resources for skill development",
			Priority:    PriorityMedium,
		},
	}
}
