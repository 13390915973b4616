package mentor

import (
	"context"
	"errors"
	"time"

	"voice-mentor/internal/ai"
	"voice-mentor/internal/telephony"
	"voice-mentor/pkg/logger"
)

// Spoken lines fixed by the session script.
const (
	GreetingPrompt    = "What aspects of this field interest you the most? Feel free to share your thoughts."
	RetryPrompt       = "Please share your thoughts with me."
	NoInputApology    = "I'm having trouble hearing you clearly. Could you please try again?"
	TurnErrorApology  = "I apologize, but I'm having some trouble. Let's try again."
	ConnectionApology = "I apologize, but I'm having trouble connecting right now. Please try again in a few moments."
	ThankYou          = "Thank you for this valuable conversation. I wish you the best in your career journey!"

	adviceTopic = "next steps"
)

// Mentor is the text generation the session needs. *ai.Generator implements it.
type Mentor interface {
	Greeting(ctx context.Context, careerPath string) (string, error)
	Reply(ctx context.Context, userInput, careerPath string, conversation any) (string, error)
	Advice(ctx context.Context, careerPath, topic string) (string, error)
	Todos(ctx context.Context, history []ai.Exchange, careerPath string) ([]ai.TodoSuggestion, error)
}

// TodoSaver persists the action items of a finished session for userID.
type TodoSaver interface {
	SaveSuggestions(ctx context.Context, userID string, items []ai.TodoSuggestion) (int, error)
}

// Outcome names the state a response turn resolved to.
type Outcome string

const (
	OutcomeNoInput   Outcome = "no_input"
	OutcomeContinue  Outcome = "continue"
	OutcomeTerminate Outcome = "terminate"
	OutcomeError     Outcome = "error"
)

var ErrMissingCareerPath = errors.New("mentor: careerPath is required")

type Flow struct {
	mentor Mentor
	todos  TodoSaver
	now    func() time.Time
}

func NewFlow(m Mentor, todos TodoSaver) *Flow {
	return &Flow{mentor: m, todos: todos, now: time.Now}
}

// Greeting opens the call: a generated welcome, a pause, then a gather at turn 0.
// Failures degrade to a spoken apology without a gather.
func (f *Flow) Greeting(ctx context.Context, careerPath, userID string) *telephony.Document {
	log := logger.From(ctx)

	doc, err := f.greeting(ctx, careerPath, userID)
	if err != nil {
		log.Warn("greeting failed", "career_path", careerPath, "err", err)
		return telephony.NewDocument().Say(ConnectionApology)
	}
	return doc
}

func (f *Flow) greeting(ctx context.Context, careerPath, userID string) (*telephony.Document, error) {
	if careerPath == "" {
		return nil, ErrMissingCareerPath
	}
	text, err := f.mentor.Greeting(ctx, careerPath)
	if err != nil {
		return nil, err
	}
	next, err := Session{Turn: 0, CareerPath: careerPath, UserID: userID}.CallbackURL()
	if err != nil {
		return nil, err
	}
	return telephony.NewDocument().
		Say(text).
		Pause(1).
		Gather(next, GreetingPrompt), nil
}

// Respond advances the session by one turn.
//
// Without speech the same turn is asked again. With speech the reply is spoken
// and the next turn gathered, until FinalTurn, after which closing advice is given,
// todos are saved and the call hangs up. Any error re-asks the current turn.
func (f *Flow) Respond(ctx context.Context, s Session, speech string) (*telephony.Document, Outcome) {
	log := logger.From(ctx).With("turn", s.Turn)
	if s.CareerPath == "" {
		s.CareerPath = DefaultCareerPath
	}

	if speech == "" {
		doc, err := f.retry(s, NoInputApology)
		if err != nil {
			log.Error("no-input document failed", "err", err)
		}
		return doc, OutcomeNoInput
	}

	doc, outcome, err := f.respond(ctx, s, speech)
	if err != nil {
		log.Error("response turn failed", "err", err)
		doc, err = f.retry(s, TurnErrorApology)
		if err != nil {
			log.Error("retry document failed", "err", err)
		}
		return doc, OutcomeError
	}
	return doc, outcome
}

func (f *Flow) respond(ctx context.Context, s Session, speech string) (*telephony.Document, Outcome, error) {
	prev := make([]string, 0, len(s.History))
	for _, h := range s.History {
		prev = append(prev, h.AIResponse)
	}
	reply, err := f.mentor.Reply(ctx, speech, s.CareerPath, ai.ReplyContext{
		TurnCount:         s.Turn,
		PreviousResponses: prev,
		CareerPath:        s.CareerPath,
	})
	if err != nil {
		return nil, "", err
	}
	ack, followUp := SplitReply(reply)

	history := make([]ai.Exchange, 0, len(s.History)+1)
	history = append(history, s.History...)
	history = append(history, ai.Exchange{
		UserInput:  speech,
		AIResponse: ack,
		Turn:       s.Turn,
		Timestamp:  f.now().UTC(),
	})

	doc := telephony.NewDocument().Say(ack).Pause(1)

	if s.Turn >= FinalTurn {
		advice, err := f.mentor.Advice(ctx, s.CareerPath, adviceTopic)
		if err != nil {
			return nil, "", err
		}
		doc.Say(advice).Say(ThankYou)
		f.saveTodos(ctx, s.UserID, s.CareerPath, history)
		doc.Hangup()
		return doc, OutcomeTerminate, nil
	}

	next := Session{Turn: s.Turn + 1, CareerPath: s.CareerPath, UserID: s.UserID, History: history}
	action, err := next.CallbackURL()
	if err != nil {
		return nil, "", err
	}
	doc.Gather(action, followUp)
	return doc, OutcomeContinue, nil
}

// retry re-opens a gather at the session's current turn.
func (f *Flow) retry(s Session, apology string) (*telephony.Document, error) {
	doc := telephony.NewDocument().Say(apology)
	action, err := s.CallbackURL()
	if err != nil {
		// History could not be encoded; resume without it rather than lose the call.
		s.History = nil
		action, _ = s.CallbackURL()
	}
	return doc.Gather(action, RetryPrompt), err
}

// saveTodos derives and stores the session's action items. Failures are logged only.
func (f *Flow) saveTodos(ctx context.Context, userID, careerPath string, history []ai.Exchange) {
	log := logger.From(ctx)
	if userID == "" {
		log.Info("no caller identity, skipping todo generation")
		return
	}
	if f.todos == nil {
		log.Warn("todo store not configured, skipping todo generation")
		return
	}

	items, err := f.mentor.Todos(ctx, history, careerPath)
	if err != nil {
		log.Error("todo generation failed", "err", err)
		return
	}
	if len(items) == 0 {
		return
	}
	n, err := f.todos.SaveSuggestions(ctx, userID, items)
	if err != nil {
		log.Error("todo persistence failed", "saved", n, "total", len(items), "err", err)
		return
	}
	log.Info("conversation todos saved", "user_id", userID, "count", n)
}
