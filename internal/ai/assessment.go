package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AssessmentLength is the number of questions in one career assessment.
const AssessmentLength = 10

const (
	initialOptionCount  = 6
	followUpOptionCount = 4
)

// Answer accepts either a single string or a list of selections.
type Answer string

func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Answer(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("answer must be a string or list of strings: %w", err)
	}
	*a = Answer(strings.Join(list, ", "))
	return nil
}

// QA is one answered assessment question.
type QA struct {
	Question  string    `json:"question"`
	Answer    Answer    `json:"answer"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

type Question struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	MultipleChoice bool     `json:"multipleChoice"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// AssessmentQuestion returns the next question given the answers so far.
// The opening question (empty history) has six options and allows several
// selections; later ones have four and allow one.
func (g *Generator) AssessmentQuestion(ctx context.Context, history []QA) (Question, error) {
	initial := len(history) == 0

	var prompt string
	if initial {
		prompt = initialQuestionPrompt()
	} else {
		prompt = followUpQuestionPrompt(string(history[len(history)-1].Answer), len(history))
	}

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		return Question{}, err
	}
	q, err := parseQuestion(raw, initial)
	if err != nil {
		logParseFailure(ctx, "question", err, raw)
		return FallbackQuestion(initial), nil
	}
	return q, nil
}

func parseQuestion(raw string, initial bool) (Question, error) {
	var in struct {
		Question       string   `json:"question"`
		Options        []string `json:"options"`
		MultipleChoice *bool    `json:"multipleChoice"`
		ImageURL       string   `json:"imageUrl"`
		Description    string   `json:"description"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &in); err != nil {
		return Question{}, err
	}
	if in.Question == "" || in.Options == nil {
		return Question{}, errors.New("invalid response structure")
	}
	for _, o := range in.Options {
		if strings.TrimSpace(o) == "" {
			return Question{}, errors.New("invalid options format")
		}
	}
	want := followUpOptionCount
	if initial {
		want = initialOptionCount
	}
	if len(in.Options) != want {
		return Question{}, fmt.Errorf("expected %d options, got %d", want, len(in.Options))
	}

	q := Question{
		Question:       in.Question,
		Options:        in.Options,
		MultipleChoice: initial,
		ImageURL:       in.ImageURL,
		Description:    in.Description,
	}
	if in.MultipleChoice != nil {
		q.MultipleChoice = *in.MultipleChoice
	}
	return q, nil
}

func FallbackQuestion(initial bool) Question {
	if initial {
		return Question{
			Question: "Which of the following career areas interest you the most? (Select all that apply)",
			Options: []string{
				"Technology and Software Development",
				"Data Analysis and Research",
				"Creative Design and Media",
				"Business and Entrepreneurship",
				"Healthcare and Medicine",
				"Education and Training",
			},
			MultipleChoice: true,
			ImageURL:       "https://example.com/career-assessment.jpg",
			Description:    "This assessment helps identify your primary career interests",
		}
	}
	return Question{
		Question: "What is your current experience level in your areas of interest?",
		Options: []string{
			"Beginner - I've done some tutorials and small projects",
			"Intermediate - I have 1-2 years of experience",
			"Advanced - I have 3+ years of professional experience",
			"Expert - I have extensive experience and lead projects",
		},
		MultipleChoice: false,
		Description:    "Understanding your experience level helps tailor recommendations",
	}
}
