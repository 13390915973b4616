package telephony

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SpeechFields are the body keys a recognized transcript may arrive under,
// in priority order. Twilio sends SpeechResult; the rest cover test harnesses
// and other speech gateways.
var SpeechFields = []string{"SpeechResult", "speech_result", "Transcript", "transcript"}

// Params is a webhook's query string plus its decoded body.
// Twilio posts application/x-www-form-urlencoded; JSON bodies are accepted for
// manual testing and carry structured fields such as conversationHistory.
type Params struct {
	query url.Values
	body  map[string]any
}

const maxWebhookBody = 1 << 20

// ReadParams parses the request query and body. A missing or empty body is not an error.
func ReadParams(r *http.Request) (Params, error) {
	p := Params{query: r.URL.Query(), body: map[string]any{}}
	if r.Body == nil || r.Method == http.MethodGet {
		return p, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		return p, fmt.Errorf("telephony: read webhook body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if len(bytes.TrimSpace(raw)) == 0 {
		return p, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&p.body); err != nil {
			return p, fmt.Errorf("telephony: decode json body: %w", err)
		}
	default:
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return p, fmt.Errorf("telephony: decode form body: %w", err)
		}
		for k, vs := range form {
			if len(vs) > 0 {
				p.body[k] = vs[0]
			}
		}
	}
	return p, nil
}

// Query returns a query-string value.
func (p Params) Query(key string) string { return strings.TrimSpace(p.query.Get(key)) }

// Body returns a body value rendered as a string; non-scalar values yield "".
func (p Params) Body(key string) string {
	switch v := p.body[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Get prefers the query string and falls back to the body.
func (p Params) Get(key string) string {
	if v := p.Query(key); v != "" {
		return v
	}
	return p.Body(key)
}

// FirstBody returns the first key among keys whose body value is non-empty.
func (p Params) FirstBody(keys []string) (string, bool) {
	for _, k := range keys {
		if v := p.Body(k); v != "" {
			return v, true
		}
	}
	return "", false
}

// DecodeBody decodes a structured body value into dst. It reports false when key is absent.
// String values are treated as embedded JSON, which is how form posts carry arrays.
func (p Params) DecodeBody(key string, dst any) (bool, error) {
	v, ok := p.body[key]
	if !ok || v == nil {
		return false, nil
	}
	var raw []byte
	if s, isString := v.(string); isString {
		if strings.TrimSpace(s) == "" {
			return false, nil
		}
		raw = []byte(s)
	} else {
		b, err := json.Marshal(v)
		if err != nil {
			return false, err
		}
		raw = b
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("telephony: decode %s: %w", key, err)
	}
	return true, nil
}

// StatusCallback is Twilio's terminal call status notification.
type StatusCallback struct {
	CallSID         string
	CallStatus      string
	DurationSeconds int
}

func ParseStatusCallback(p Params) StatusCallback {
	d, _ := strconv.Atoi(p.Body("CallDuration"))
	if d < 0 {
		d = 0
	}
	return StatusCallback{
		CallSID:         p.Body("CallSid"),
		CallStatus:      p.Body("CallStatus"),
		DurationSeconds: d,
	}
}

// RecordingCallback announces that a call recording is available.
type RecordingCallback struct {
	CallSID      string
	RecordingURL string
}

func ParseRecordingCallback(p Params) RecordingCallback {
	return RecordingCallback{
		CallSID:      p.Body("CallSid"),
		RecordingURL: p.Body("RecordingUrl"),
	}
}
