package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChat returns canned replies in order and records prompts.
type stubChat struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
	models  []string
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, req.Model)
	if len(req.Messages) > 0 {
		s.prompts = append(s.prompts, req.Messages[0].Content)
	}
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	text := ""
	if len(s.replies) > 0 {
		text, s.replies = s.replies[0], s.replies[1:]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: text}}},
	}, nil
}

func newGen(t *testing.T, chat *stubChat) *Generator {
	t.Helper()
	g, err := NewGenerator(chat, "gemini-1.5-flash")
	require.NoError(t, err)
	return g
}

func TestNewGenerator_Validates(t *testing.T) {
	_, err := NewGenerator(nil, "m")
	require.Error(t, err)
	_, err = NewGenerator(&stubChat{}, "")
	require.Error(t, err)
}

func TestGreeting_UsesModelAndCareerPath(t *testing.T) {
	chat := &stubChat{replies: []string{"  Welcome! Why data science?  "}}
	g := newGen(t, chat)

	out, err := g.Greeting(context.Background(), "Data Science")
	require.NoError(t, err)
	assert.Equal(t, "Welcome! Why data science?", out)
	assert.Equal(t, []string{"gemini-1.5-flash"}, chat.models)
	assert.Contains(t, chat.prompts[0], "Data Science")
	assert.Contains(t, chat.prompts[0], "2-3 sentences")
}

func TestReply_RendersContext(t *testing.T) {
	chat := &stubChat{replies: []string{"Nice. What next?"}}
	g := newGen(t, chat)

	_, err := g.Reply(context.Background(), "I like statistics", "Data Science", ReplyContext{
		TurnCount:         2,
		PreviousResponses: []string{"Great start"},
		CareerPath:        "Data Science",
	})
	require.NoError(t, err)
	assert.Contains(t, chat.prompts[0], `"I like statistics"`)
	assert.Contains(t, chat.prompts[0], `"turnCount":2`)
	assert.Contains(t, chat.prompts[0], `"previousResponses":["Great start"]`)
}

func TestAdvice_Topic(t *testing.T) {
	chat := &stubChat{replies: []string{"Build a portfolio."}}
	g := newGen(t, chat)

	out, err := g.Advice(context.Background(), "Law", "next steps")
	require.NoError(t, err)
	assert.Equal(t, "Build a portfolio.", out)
	assert.Contains(t, chat.prompts[0], "next steps")
}

func TestComplete_Errors(t *testing.T) {
	g := newGen(t, &stubChat{err: errors.New("quota exceeded")})
	_, err := g.Greeting(context.Background(), "Law")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	g = newGen(t, &stubChat{replies: []string{"   "}})
	_, err = g.Greeting(context.Background(), "Law")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, stripFences("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```{\"a\":1}```"))
	assert.Equal(t, `plain`, stripFences("  plain "))
}

func TestTodos_ParsesFencedJSON(t *testing.T) {
	raw := "```json\n" + `[
 {"title":"Take a statistics course","description":"Finish an intro stats MOOC","priority":"high"},
 {"title":"Join a Kaggle competition","description":"Practice on real data","priority":"medium"},
 {"title":"Update LinkedIn","description":"Mention your new projects","priority":"low"}
]` + "\n```"
	g := newGen(t, &stubChat{replies: []string{raw}})

	history := []Exchange{{UserInput: "hi", AIResponse: "hello", Turn: 0}}
	todos, err := g.Todos(context.Background(), history, "Data Science")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "Take a statistics course", todos[0].Title)
	assert.Equal(t, PriorityLow, todos[2].Priority)
}

func TestTodos_TruncatesToMax(t *testing.T) {
	item := `{"title":"t","description":"d","priority":"low"}`
	raw := "[" + strings.Repeat(item+",", 6) + item + "]"
	g := newGen(t, &stubChat{replies: []string{raw}})

	todos, err := g.Todos(context.Background(), nil, "Law")
	require.NoError(t, err)
	assert.Len(t, todos, MaxTodos)
}

func TestTodos_FallbackOnInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":       "Here are some todos: learn stuff",
		"bad priority":   `[{"title":"a","description":"b","priority":"urgent"},{"title":"a","description":"b","priority":"low"},{"title":"a","description":"b","priority":"low"}]`,
		"missing title":  `[{"description":"b","priority":"high"},{"title":"a","description":"b","priority":"low"},{"title":"a","description":"b","priority":"low"}]`,
		"too few":        `[{"title":"a","description":"b","priority":"high"}]`,
		"object not arr": `{"title":"a","description":"b","priority":"high"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			g := newGen(t, &stubChat{replies: []string{raw}})
			todos, err := g.Todos(context.Background(), nil, "Data Science")
			require.NoError(t, err)
			assert.Equal(t, FallbackTodos("Data Science"), todos)
		})
	}
}

func TestTodos_TransportErrorIsReturned(t *testing.T) {
	g := newGen(t, &stubChat{err: errors.New("boom")})
	todos, err := g.Todos(context.Background(), nil, "Law")
	require.Error(t, err)
	assert.Nil(t, todos)
}

func TestTodos_FallbackProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("unparseable output yields exactly 3 fallback todos naming the career", prop.ForAll(
		func(garbage, career string) bool {
			g, _ := NewGenerator(&stubChat{replies: []string{"not json: " + garbage}}, "m")
			todos, err := g.Todos(context.Background(), nil, career)
			if err != nil || len(todos) != 3 {
				return false
			}
			for _, td := range todos {
				if td.Title == "" || td.Description == "" || !td.Priority.Valid() {
					return false
				}
			}
			return strings.Contains(todos[0].Title, career) && strings.Contains(todos[1].Description, career)
		},
		gen.AnyString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
