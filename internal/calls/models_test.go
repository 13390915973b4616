package calls

import "testing"

func TestStatusFromProvider(t *testing.T) {
	cases := map[string]CallStatus{
		"completed":   CallStatusCompleted,
		"busy":        CallStatusFailed,
		"no-answer":   CallStatusFailed,
		"failed":      CallStatusFailed,
		"canceled":    CallStatusFailed,
		"in-progress": CallStatusFailed,
		"":            CallStatusFailed,
	}
	for in, want := range cases {
		if got := StatusFromProvider(in); got != want {
			t.Fatalf("StatusFromProvider(%q) = %q, want %q", in, got, want)
		}
	}
}
