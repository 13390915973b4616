package mentor

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSplitReply(t *testing.T) {
	cases := []struct {
		reply, ack, followUp string
	}{
		{"Acknowledgment. Next, what matters most?", "Acknowledgment. Next, what matters most", "?"},
		{"Good point. What do you enjoy?  Tell me more? Really?", "Good point. What do you enjoy", "Tell me more?"},
		{"No question here.", "No question here.", FallbackFollowUp},
		{"", "", FallbackFollowUp},
		{"?", "", "?"},
	}
	for _, tc := range cases {
		ack, followUp := SplitReply(tc.reply)
		assert.Equal(t, tc.ack, ack, tc.reply)
		assert.Equal(t, tc.followUp, followUp, tc.reply)
	}
}

func TestSplitReply_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("replies without '?' keep the whole text and use the fallback", prop.ForAll(
		func(s string) bool {
			s = strings.ReplaceAll(s, "?", "")
			ack, followUp := SplitReply(s)
			return ack == s && followUp == FallbackFollowUp
		},
		gen.AnyString(),
	))

	properties.Property("ack is the prefix before the first '?' and follow-up ends in '?'", prop.ForAll(
		func(before, after string) bool {
			before = strings.ReplaceAll(before, "?", "")
			ack, followUp := SplitReply(before + "?" + after)
			return ack == before && strings.HasSuffix(followUp, "?")
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
