package mentor

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-mentor/internal/ai"
	"voice-mentor/internal/telephony"
)

func paramsFor(t *testing.T, target, contentType, body string) telephony.Params {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	p, err := telephony.ReadParams(r)
	require.NoError(t, err)
	return p
}

func TestSession_CallbackRoundTrip(t *testing.T) {
	s := Session{
		Turn:       3,
		CareerPath: "Data Science & AI",
		UserID:     "u-42",
		History: []ai.Exchange{
			{UserInput: "I like maths?", AIResponse: "Great & useful", Turn: 2, Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
	}
	action, err := s.CallbackURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(action, RespondPath+"?"))

	got, err := SessionFromParams(paramsFor(t, action, "application/x-www-form-urlencoded", "SpeechResult=hi"))
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSession_BodyFallbacks(t *testing.T) {
	body := `{"turn":2,"careerPath":"Law","userId":"u1","conversationHistory":[{"userInput":"a","aiResponse":"b","turn":1}]}`
	s, err := SessionFromParams(paramsFor(t, RespondPath, "application/json", body))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, "Law", s.CareerPath)
	assert.Equal(t, "u1", s.UserID)
	require.Len(t, s.History, 1)
	assert.Equal(t, "a", s.History[0].UserInput)
}

func TestSession_QueryWinsOverBody(t *testing.T) {
	s, err := SessionFromParams(paramsFor(t, RespondPath+"?turn=1&careerPath=Medicine", "application/x-www-form-urlencoded", "turn=3&careerPath=Law"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, "Medicine", s.CareerPath)
}

func TestSession_BadTurnDefaultsToZero(t *testing.T) {
	for _, v := range []string{"", "abc", "-2"} {
		s, err := SessionFromParams(paramsFor(t, RespondPath+"?turn="+url.QueryEscape(v), "", ""))
		require.NoError(t, err)
		assert.Equal(t, 0, s.Turn, v)
	}
}

func TestSession_CorruptHistory(t *testing.T) {
	s, err := SessionFromParams(paramsFor(t, RespondPath+"?turn=2&history=%21%21notbase64", "", ""))
	require.Error(t, err)
	assert.Equal(t, 2, s.Turn, "scalar state survives a bad history")
	assert.Empty(t, s.History)
}

func TestVoiceURL(t *testing.T) {
	u, err := url.Parse(VoiceURL("https://mentor.example.com", "Data Science", "u1"))
	require.NoError(t, err)
	assert.Equal(t, "mentor.example.com", u.Host)
	assert.Equal(t, VoicePath, u.Path)
	assert.Equal(t, "Data Science", u.Query().Get("careerPath"))
	assert.Equal(t, "u1", u.Query().Get("userId"))
}
