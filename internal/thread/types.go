package thread

import (
	"time"

	"github.com/linklyhq/linkly/internal/identity"
)

// Message is a stored direct message with resolved participant summaries.
type Message struct {
	ID        string           `json:"id"`
	ThreadID  string           `json:"threadId"`
	From      identity.Summary `json:"from"`
	To        identity.Summary `json:"to"`
	Text      string           `json:"text"`
	Seen      bool             `json:"seen"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Summary is one entry in a user's thread list.
type Summary struct {
	ThreadID    string           `json:"threadId"`
	Participant identity.Summary `json:"participant"`
	LastMessage Message          `json:"lastMessage"`
	UnreadCount int              `json:"unreadCount"`
}
