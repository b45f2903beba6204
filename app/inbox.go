package app

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"pulsefeed/domain"
)

// Inbox owns the local notification state and coordinates optimistic
// read-flag mutations.
type Inbox struct {
	notifications NotificationService
	log           *logrus.Logger

	mu    sync.Mutex
	guard *inflight
	items []domain.Notification
}

// NewInbox creates a notification coordinator.
func NewInbox(notifications NotificationService, log *logrus.Logger) *Inbox {
	return &Inbox{
		notifications: notifications,
		log:           log,
		guard:         newInflight(),
	}
}

// Load replaces the local state with the backend's notification list.
func (in *Inbox) Load(ctx context.Context) error {
	ns, err := in.notifications.List(ctx)
	if err != nil {
		return err
	}
	in.mu.Lock()
	in.items = ns
	in.mu.Unlock()
	return nil
}

// Items returns a copy of the local notification state.
func (in *Inbox) Items() []domain.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]domain.Notification, len(in.items))
	copy(out, in.items)
	return out
}

// Unread returns the locally derived unread count.
func (in *Inbox) Unread() int {
	return UnreadNotificationCount(in.Items())
}

// MarkRead flips a notification's read flag optimistically, then settles.
// On failure the flag is reverted.
func (in *Inbox) MarkRead(ctx context.Context, id string) error {
	if err := in.guard.acquire(id, "is_read"); err != nil {
		return err
	}
	defer in.guard.release(id, "is_read")

	in.mu.Lock()
	idx := -1
	for i := range in.items {
		if in.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || in.items[idx].IsRead {
		in.mu.Unlock()
		return nil
	}
	in.items[idx].IsRead = true
	in.mu.Unlock()

	if err := in.notifications.MarkAsRead(ctx, id); err != nil {
		in.mu.Lock()
		for i := range in.items {
			if in.items[i].ID == id {
				in.items[i].IsRead = false
				break
			}
		}
		in.mu.Unlock()
		in.log.WithError(err).WithField("notification", id).Warn("mark read failed, rolled back")
		return err
	}
	return nil
}

// MarkAllRead flips every unread notification optimistically, then settles.
// On failure the local state is re-fetched from the repository so that it
// reflects whichever records were actually updated; a read flag never
// regresses from true to false for records the backend confirmed.
func (in *Inbox) MarkAllRead(ctx context.Context) error {
	if err := in.guard.acquire("all", "is_read"); err != nil {
		return err
	}
	defer in.guard.release("all", "is_read")

	in.mu.Lock()
	var flipped []string
	for i := range in.items {
		if !in.items[i].IsRead {
			in.items[i].IsRead = true
			flipped = append(flipped, in.items[i].ID)
		}
	}
	in.mu.Unlock()
	if len(flipped) == 0 {
		return nil
	}

	if err := in.notifications.MarkAllAsRead(ctx); err != nil {
		in.log.WithError(err).Warn("mark all read failed, reloading from backend")
		if ns, lerr := in.notifications.List(ctx); lerr == nil {
			in.mu.Lock()
			in.items = ns
			in.mu.Unlock()
		}
		return err
	}
	return nil
}
