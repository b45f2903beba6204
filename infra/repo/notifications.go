package repo

import (
	"context"
	"errors"
	"fmt"

	"pulsefeed/domain"
	"pulsefeed/infra/resource"
)

// Notifications implements app.NotificationService.
type Notifications struct {
	client resource.Client
}

// NewNotifications creates a notification repository.
func NewNotifications(client resource.Client) *Notifications {
	return &Notifications{client: client}
}

func (n *Notifications) List(ctx context.Context) ([]domain.Notification, error) {
	records, err := n.client.FetchMany(ctx, resource.CollectionNotifications, resource.Query{
		Sort: []resource.Sort{{Field: "timestamp", Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	out := make([]domain.Notification, 0, len(records))
	for _, rec := range records {
		out = append(out, mapNotification(rec))
	}
	return out, nil
}

func (n *Notifications) UnreadCount(ctx context.Context) (int, error) {
	records, err := n.client.FetchMany(ctx, resource.CollectionNotifications, resource.Query{
		Where: resource.And(resource.Eq("is_read", false)),
	})
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return len(records), nil
}

func (n *Notifications) MarkAsRead(ctx context.Context, id string) error {
	updated, err := n.client.Update(ctx, resource.CollectionNotifications, id, resource.Record{
		"is_read": true,
	})
	if err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	if updated == nil {
		// Already gone; nothing left to mark.
		return nil
	}
	return nil
}

// MarkAllAsRead fetches the unread set and updates each record. No retries:
// if any update fails the whole call reports failure, but records already
// updated stay read — the flag never regresses.
func (n *Notifications) MarkAllAsRead(ctx context.Context) error {
	unread, err := n.client.FetchMany(ctx, resource.CollectionNotifications, resource.Query{
		Where: resource.And(resource.Eq("is_read", false)),
	})
	if err != nil {
		return fmt.Errorf("listing unread notifications: %w", err)
	}

	var failed []error
	for _, rec := range unread {
		id := rec.String("Id")
		if _, err := n.client.Update(ctx, resource.CollectionNotifications, id, resource.Record{"is_read": true}); err != nil {
			failed = append(failed, fmt.Errorf("notification %s: %w", id, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("marking all read, %d of %d failed: %w", len(failed), len(unread), errors.Join(failed...))
	}
	return nil
}

func mapNotification(rec resource.Record) domain.Notification {
	return domain.Notification{
		ID:         rec.String("Id"),
		Type:       domain.NotificationType(rec.String("type")),
		FromUserID: rec.String("from_user_id"),
		FromUser:   rec.String("from_user_display_name"),
		TargetID:   rec.String("target_id"),
		Timestamp:  rec.Time("timestamp"),
		IsRead:     rec.Bool("is_read"),
	}
}
