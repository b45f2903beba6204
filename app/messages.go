package app

import (
	"context"

	"pulsefeed/domain"
)

// MessageService queries and sends direct messages. A conversation is the
// derived grouping of messages between two users, never a stored entity.
type MessageService interface {
	// ListForUser returns every message sent or received by a user,
	// oldest first.
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)

	// ListConversation returns the messages between two users, oldest
	// first.
	ListConversation(ctx context.Context, userID, otherUserID string) ([]domain.Message, error)

	// Send persists a new unread message.
	Send(ctx context.Context, senderID, receiverID, content string) (domain.Message, error)

	// MarkConversationRead marks all messages sent by otherUserID to
	// userID as read.
	MarkConversationRead(ctx context.Context, userID, otherUserID string) error

	// UnreadCount returns the number of unread messages addressed to a
	// user.
	UnreadCount(ctx context.Context, userID string) (int, error)

	// Conversations groups a user's messages by the other participant,
	// most recent conversation first.
	Conversations(ctx context.Context, userID string) ([]domain.Conversation, error)
}
