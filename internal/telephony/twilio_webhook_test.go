package telephony

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestReadParams_FormAndQuery(t *testing.T) {
	r := formRequest("/api/twilio/respond?turn=2&careerPath=Data+Science", "CallSid=CA1&SpeechResult=I+like+data&turn=9")

	p, err := ReadParams(r)
	require.NoError(t, err)

	assert.Equal(t, "2", p.Get("turn"), "query wins over body")
	assert.Equal(t, "Data Science", p.Get("careerPath"))
	assert.Equal(t, "CA1", p.Get("CallSid"))

	speech, ok := p.FirstBody(SpeechFields)
	assert.True(t, ok)
	assert.Equal(t, "I like data", speech)
}

func TestReadParams_SpeechAliasOrder(t *testing.T) {
	r := formRequest("/r", "SpeechResult=&speech_result=&Transcript=second&transcript=third")
	p, err := ReadParams(r)
	require.NoError(t, err)

	speech, ok := p.FirstBody(SpeechFields)
	assert.True(t, ok)
	assert.Equal(t, "second", speech)
}

func TestReadParams_NoSpeech(t *testing.T) {
	r := formRequest("/r", "SpeechResult=%20%20")
	p, err := ReadParams(r)
	require.NoError(t, err)

	_, ok := p.FirstBody(SpeechFields)
	assert.False(t, ok)
}

func TestReadParams_JSONBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/r", strings.NewReader(`{"transcript":"hello","turn":3,"conversationHistory":[{"userInput":"a","aiResponse":"b","turn":0}]}`))
	r.Header.Set("Content-Type", "application/json")

	p, err := ReadParams(r)
	require.NoError(t, err)
	assert.Equal(t, "3", p.Get("turn"))

	var hist []map[string]any
	found, err := p.DecodeBody("conversationHistory", &hist)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, hist, 1)
	assert.Equal(t, "a", hist[0]["userInput"])

	found, err = p.DecodeBody("missing", &hist)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadParams_GetWithoutBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/twilio/voice?careerPath=Law&userId=u1", nil)
	p, err := ReadParams(r)
	require.NoError(t, err)
	assert.Equal(t, "Law", p.Get("careerPath"))
	assert.Equal(t, "u1", p.Get("userId"))
}

func TestParseStatusCallback(t *testing.T) {
	p, err := ReadParams(formRequest("/api/calls/status", "CallSid=CA9&CallStatus=busy&CallDuration=42"))
	require.NoError(t, err)

	st := ParseStatusCallback(p)
	assert.Equal(t, StatusCallback{CallSID: "CA9", CallStatus: "busy", DurationSeconds: 42}, st)

	p, err = ReadParams(formRequest("/api/calls/status", "CallSid=CA9&CallStatus=completed&CallDuration=junk"))
	require.NoError(t, err)
	assert.Equal(t, 0, ParseStatusCallback(p).DurationSeconds)
}

func TestParseRecordingCallback(t *testing.T) {
	p, err := ReadParams(formRequest("/api/webhooks/recording", "CallSid=CA1&RecordingUrl=https%3A%2F%2Fapi.twilio.com%2Frec"))
	require.NoError(t, err)
	assert.Equal(t, RecordingCallback{CallSID: "CA1", RecordingURL: "https://api.twilio.com/rec"}, ParseRecordingCallback(p))
}
