package app

import (
	"context"

	"pulsefeed/domain"
)

// NotificationService reads the viewer's notification inbox. Notifications
// are created by backend-side effects; the only mutation here is the read
// flag.
type NotificationService interface {
	// List returns notifications, newest first.
	List(ctx context.Context) ([]domain.Notification, error)

	// UnreadCount returns the number of unread notifications.
	UnreadCount(ctx context.Context) (int, error)

	// MarkAsRead flips one notification's read flag.
	MarkAsRead(ctx context.Context, id string) error

	// MarkAllAsRead marks every unread notification read. Best effort:
	// if any record update fails the call reports failure, but records
	// already marked stay read.
	MarkAllAsRead(ctx context.Context) error
}
