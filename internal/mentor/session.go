// Package mentor drives a phone mentoring session as a sequence of stateless
// webhook turns. Nothing is kept in memory between turns: the turn counter,
// career path, caller and transcript ride along in each gather's callback URL.
package mentor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"voice-mentor/internal/ai"
	"voice-mentor/internal/telephony"
)

// Protocol constants. Five response turns (0..FinalTurn) make one session.
const (
	FinalTurn = 4

	RespondPath = "/api/twilio/respond"
	VoicePath   = "/api/twilio/voice"

	DefaultCareerPath = "your chosen field"
)

// Callback parameter names.
const (
	paramTurn       = "turn"
	paramCareerPath = "careerPath"
	paramUserID     = "userId"
	paramHistory    = "history"
	bodyHistory     = "conversationHistory"
)

// Session is the state carried from one webhook turn to the next.
type Session struct {
	Turn       int
	CareerPath string
	UserID     string
	History    []ai.Exchange
}

// SessionFromParams rebuilds the session from a webhook request.
// A malformed history is reported alongside a session that has none, so the
// caller can log it and keep the call going.
func SessionFromParams(p telephony.Params) (Session, error) {
	s := Session{
		Turn:       parseTurn(p.Get(paramTurn)),
		CareerPath: p.Get(paramCareerPath),
		UserID:     p.Get(paramUserID),
	}

	if enc := p.Query(paramHistory); enc != "" {
		h, err := decodeHistory(enc)
		if err != nil {
			return s, err
		}
		s.History = h
		return s, nil
	}
	var h []ai.Exchange
	if _, err := p.DecodeBody(bodyHistory, &h); err != nil {
		return s, err
	}
	s.History = h
	return s, nil
}

func parseTurn(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CallbackURL is the gather action that resumes this session on the next turn.
// It is relative; the gateway resolves it against the webhook it is serving.
func (s Session) CallbackURL() (string, error) {
	q := url.Values{}
	q.Set(paramTurn, strconv.Itoa(s.Turn))
	q.Set(paramCareerPath, s.CareerPath)
	q.Set(paramUserID, s.UserID)
	if len(s.History) > 0 {
		enc, err := encodeHistory(s.History)
		if err != nil {
			return "", err
		}
		q.Set(paramHistory, enc)
	}
	return RespondPath + "?" + q.Encode(), nil
}

// VoiceURL is the answer URL for a new call on careerPath placed for userID.
func VoiceURL(baseURL, careerPath, userID string) string {
	q := url.Values{}
	q.Set(paramCareerPath, careerPath)
	q.Set(paramUserID, userID)
	return baseURL + VoicePath + "?" + q.Encode()
}

func encodeHistory(h []ai.Exchange) (string, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("mentor: encode history: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeHistory(s string) ([]ai.Exchange, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("mentor: decode history: %w", err)
	}
	var h []ai.Exchange
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("mentor: decode history: %w", err)
	}
	return h, nil
}
