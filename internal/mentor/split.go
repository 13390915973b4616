package mentor

import "strings"

// FallbackFollowUp is asked when a reply contains no question.
const FallbackFollowUp = "What are your thoughts on that?"

// SplitReply cuts a model reply at its first '?'.
//
// The text before it is spoken as the acknowledgment. The follow-up is the text
// between the first and second '?', trimmed, with '?' restored; a reply ending in
// its only question therefore yields a bare "?". Without any '?' the whole reply
// is the acknowledgment and FallbackFollowUp is asked.
func SplitReply(reply string) (ack, followUp string) {
	parts := strings.Split(reply, "?")
	if len(parts) == 1 {
		return reply, FallbackFollowUp
	}
	return parts[0], strings.TrimSpace(parts[1]) + "?"
}
