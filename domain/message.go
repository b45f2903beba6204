package domain

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	Timestamp  time.Time
	IsRead     bool
}

// Conversation is a derived view over a user's messages with one other
// participant. It is keyed by the unordered (user, other) pair and never
// stored.
type Conversation struct {
	OtherUserID string
	Messages    []Message
	LastMessage *Message
	UnreadCount int
}

// ConversationKey returns the canonical key for the unordered user pair.
func ConversationKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
