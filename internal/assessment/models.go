// Package assessment keeps each user's career assessment transcript and serves
// the question, roadmap and chat endpoints built on it.
package assessment

import (
	"time"

	"voice-mentor/internal/ai"
)

// History is the single transcript stored per user.
type History struct {
	UserID    string    `json:"userId" bson:"userId"`
	Entries   []ai.QA   `json:"conversationHistory" bson:"conversationHistory"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ChatMessage is one exchange as shown in the chat view.
type ChatMessage struct {
	User      string    `json:"user"`
	AI        string    `json:"ai"`
	Timestamp time.Time `json:"timestamp"`
}
