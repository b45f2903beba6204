package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pulsefeed/domain"
	"pulsefeed/infra/resource"
)

// Messages implements app.MessageService.
type Messages struct {
	client resource.Client
	now    func() time.Time
}

// NewMessages creates a message repository.
func NewMessages(client resource.Client) *Messages {
	return &Messages{client: client, now: time.Now}
}

func (m *Messages) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	records, err := m.client.FetchMany(ctx, resource.CollectionMessages, resource.Query{
		Where: resource.Or(
			resource.Eq("sender_id", userID),
			resource.Eq("receiver_id", userID),
		),
		Sort: []resource.Sort{{Field: "timestamp"}},
	})
	if err != nil {
		return nil, fmt.Errorf("listing messages for %s: %w", userID, err)
	}
	return mapMessages(records), nil
}

func (m *Messages) ListConversation(ctx context.Context, userID, otherUserID string) ([]domain.Message, error) {
	records, err := m.client.FetchMany(ctx, resource.CollectionMessages, resource.Query{
		Where: resource.AnyOf(
			*resource.And(resource.Eq("sender_id", userID), resource.Eq("receiver_id", otherUserID)),
			*resource.And(resource.Eq("sender_id", otherUserID), resource.Eq("receiver_id", userID)),
		),
		Sort: []resource.Sort{{Field: "timestamp"}},
	})
	if err != nil {
		return nil, fmt.Errorf("listing conversation %s: %w", domain.ConversationKey(userID, otherUserID), err)
	}
	return mapMessages(records), nil
}

func (m *Messages) Send(ctx context.Context, senderID, receiverID, content string) (domain.Message, error) {
	if content == "" {
		return domain.Message{}, &domain.ValidationError{Field: "content", Reason: "content is required"}
	}
	created, err := m.client.Create(ctx, resource.CollectionMessages, resource.Record{
		"Name":        messageName(content),
		"content":     content,
		"timestamp":   m.now().UTC().Format(time.RFC3339),
		"is_read":     false,
		"sender_id":   senderID,
		"receiver_id": receiverID,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("sending message: %w", err)
	}
	return mapMessage(created), nil
}

func (m *Messages) MarkConversationRead(ctx context.Context, userID, otherUserID string) error {
	unread, err := m.client.FetchMany(ctx, resource.CollectionMessages, resource.Query{
		Where: resource.And(
			resource.Eq("sender_id", otherUserID),
			resource.Eq("receiver_id", userID),
			resource.Eq("is_read", false),
		),
	})
	if err != nil {
		return fmt.Errorf("listing unread messages: %w", err)
	}
	for _, rec := range unread {
		id := rec.String("Id")
		if _, err := m.client.Update(ctx, resource.CollectionMessages, id, resource.Record{"is_read": true}); err != nil {
			return fmt.Errorf("marking message %s read: %w", id, err)
		}
	}
	return nil
}

func (m *Messages) UnreadCount(ctx context.Context, userID string) (int, error) {
	records, err := m.client.FetchMany(ctx, resource.CollectionMessages, resource.Query{
		Where: resource.And(
			resource.Eq("receiver_id", userID),
			resource.Eq("is_read", false),
		),
	})
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return len(records), nil
}

func (m *Messages) Conversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	messages, err := m.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byOther := make(map[string]*domain.Conversation)
	var order []string
	for i := range messages {
		msg := messages[i]
		other := msg.SenderID
		if other == userID {
			other = msg.ReceiverID
		}
		conv, ok := byOther[other]
		if !ok {
			conv = &domain.Conversation{OtherUserID: other}
			byOther[other] = conv
			order = append(order, other)
		}
		conv.Messages = append(conv.Messages, msg)
		if conv.LastMessage == nil || msg.Timestamp.After(conv.LastMessage.Timestamp) {
			last := msg
			conv.LastMessage = &last
		}
		if msg.ReceiverID == userID && !msg.IsRead {
			conv.UnreadCount++
		}
	}

	out := make([]domain.Conversation, 0, len(order))
	for _, other := range order {
		out = append(out, *byOther[other])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.Timestamp.After(out[j].LastMessage.Timestamp)
	})
	return out, nil
}

const messageNameLimit = 20

// messageName derives the backend's Name field from content.
func messageName(content string) string {
	runes := []rune(content)
	if len(runes) <= messageNameLimit {
		return content
	}
	return string(runes[:messageNameLimit]) + "..."
}

func mapMessage(rec resource.Record) domain.Message {
	return domain.Message{
		ID:         rec.String("Id"),
		SenderID:   rec.String("sender_id"),
		ReceiverID: rec.String("receiver_id"),
		Content:    rec.String("content"),
		Timestamp:  rec.Time("timestamp"),
		IsRead:     rec.Bool("is_read"),
	}
}

func mapMessages(records []resource.Record) []domain.Message {
	out := make([]domain.Message, 0, len(records))
	for _, rec := range records {
		out = append(out, mapMessage(rec))
	}
	return out
}
