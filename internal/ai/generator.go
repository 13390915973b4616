// Package ai wraps the text-generation model behind the mentoring prompts.
//
// The model is reached through an OpenAI-compatible Chat Completions endpoint
// (Gemini's by default). Every structured answer is parsed tolerantly and falls
// back to fixed content when the model returns something unusable.
package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voice-mentor/pkg/logger"
)

// ChatClient captures the subset of the go-openai client used by the generator.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (
		openai.ChatCompletionResponse, error)
}

// Generator owns one long-lived model client; build it once at startup and share it.
type Generator struct {
	chat  ChatClient
	model string
}

var ErrEmptyCompletion = errors.New("ai: model returned no content")

func NewGenerator(chat ChatClient, model string) (*Generator, error) {
	if chat == nil {
		return nil, errors.New("ai: chat client is required")
	}
	if model == "" {
		return nil, errors.New("ai: model is required")
	}
	return &Generator{chat: chat, model: model}, nil
}

// NewOpenAIClient builds a go-openai client pointed at baseURL.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}

// complete sends prompt as a single user message and returns the trimmed text.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Greeting returns a short spoken welcome for careerPath.
func (g *Generator) Greeting(ctx context.Context, careerPath string) (string, error) {
	return g.complete(ctx, greetingPrompt(careerPath))
}

// Reply answers userInput as a mentor for careerPath. conversation is rendered
// as JSON into the prompt; pass a ReplyContext from a call or free-form client context.
func (g *Generator) Reply(ctx context.Context, userInput, careerPath string, conversation any) (string, error) {
	return g.complete(ctx, replyPrompt(userInput, careerPath, conversation))
}

// Advice returns closing guidance on topic for careerPath.
func (g *Generator) Advice(ctx context.Context, careerPath, topic string) (string, error) {
	return g.complete(ctx, advicePrompt(careerPath, topic))
}

var codeFence = regexp.MustCompile("```json\\n?|\\n?```")

// stripFences removes markdown code fences models like to wrap JSON in.
func stripFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}

func logParseFailure(ctx context.Context, what string, err error, raw string) {
	logger.From(ctx).Warn("ai output rejected, using fallback",
		"kind", what,
		"err", err,
		"raw_len", len(raw),
	)
}
