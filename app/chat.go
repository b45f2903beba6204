package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pulsefeed/domain"
)

// ChatMessage is a message plus its mutation status in the local
// conversation state.
type ChatMessage struct {
	Message domain.Message
	Status  Status
	Err     error
}

// Chat owns the local state of one active conversation: its messages and
// the participant's online flag. Refresh is the poll tick body.
type Chat struct {
	messages MessageService
	users    UserService
	viewerID string
	log      *logrus.Logger

	mu      sync.Mutex
	guard   *inflight
	otherID string
	items   []ChatMessage
	online  bool
}

// NewChat creates a conversation coordinator for the viewer and one other
// participant.
func NewChat(messages MessageService, users UserService, viewerID, otherID string, log *logrus.Logger) *Chat {
	return &Chat{
		messages: messages,
		users:    users,
		viewerID: viewerID,
		otherID:  otherID,
		log:      log,
		guard:    newInflight(),
	}
}

// Load fetches the conversation and marks the other side's messages read.
func (c *Chat) Load(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	return c.MarkRead(ctx)
}

// Refresh re-fetches the conversation messages and the participant's online
// status. Pending local messages that the backend does not know yet are
// kept at the tail.
func (c *Chat) Refresh(ctx context.Context) error {
	msgs, err := c.messages.ListConversation(ctx, c.viewerID, c.otherID)
	if err != nil {
		return err
	}
	statuses, err := c.users.Statuses(ctx, []string{c.otherID})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var pending []ChatMessage
	for _, it := range c.items {
		if it.Status == StatusPending || it.Status == StatusRolledBack {
			pending = append(pending, it)
		}
	}
	items := make([]ChatMessage, 0, len(msgs)+len(pending))
	for _, m := range msgs {
		items = append(items, ChatMessage{Message: m, Status: StatusIdle})
	}
	c.items = append(items, pending...)
	c.online = statuses[c.otherID]
	return nil
}

// Items returns a copy of the local conversation state.
func (c *Chat) Items() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.items))
	copy(out, c.items)
	return out
}

// OtherID returns the other participant's user ID.
func (c *Chat) OtherID() string { return c.otherID }

// Online reports the other participant's last polled online flag.
func (c *Chat) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// Send appends an optimistic message to the conversation, persists it, and
// reconciles. A failed send keeps the message visible, marked failed.
func (c *Chat) Send(ctx context.Context, content string) (domain.Message, error) {
	localID := fmt.Sprintf("local-%d", time.Now().UnixNano())
	optimistic := domain.Message{
		ID:         localID,
		SenderID:   c.viewerID,
		ReceiverID: c.otherID,
		Content:    content,
		Timestamp:  time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, ChatMessage{Message: optimistic, Status: StatusPending})
	c.mu.Unlock()

	sent, err := c.messages.Send(ctx, c.viewerID, c.otherID, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Message.ID != localID {
			continue
		}
		if err != nil {
			c.items[i].Status = StatusRolledBack
			c.items[i].Err = err
			c.log.WithError(err).WithField("conversation", domain.ConversationKey(c.viewerID, c.otherID)).
				Warn("message send failed")
			return domain.Message{}, err
		}
		c.items[i] = ChatMessage{Message: sent, Status: StatusConfirmed}
		return sent, nil
	}
	return sent, err
}

// MarkRead marks the other participant's messages to the viewer as read,
// optimistically flipping the local flags first.
func (c *Chat) MarkRead(ctx context.Context) error {
	if err := c.guard.acquire(c.otherID, "is_read"); err != nil {
		return err
	}
	defer c.guard.release(c.otherID, "is_read")

	c.mu.Lock()
	var flipped []int
	for i := range c.items {
		m := &c.items[i].Message
		if m.SenderID == c.otherID && m.ReceiverID == c.viewerID && !m.IsRead {
			m.IsRead = true
			flipped = append(flipped, i)
		}
	}
	c.mu.Unlock()

	if err := c.messages.MarkConversationRead(ctx, c.viewerID, c.otherID); err != nil {
		c.mu.Lock()
		for _, i := range flipped {
			if i < len(c.items) {
				c.items[i].Message.IsRead = false
			}
		}
		c.mu.Unlock()
		c.log.WithError(err).Warn("mark conversation read failed, rolled back")
		return err
	}
	return nil
}
