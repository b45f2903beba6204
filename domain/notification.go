package domain

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification is created by backend-side effects of like/comment/follow
// actions. This layer consumes it read-only except for the IsRead flag.
type Notification struct {
	ID         string
	Type       NotificationType
	FromUserID string
	FromUser   string
	TargetID   string // post ID for like/comment, user ID for follow
	Timestamp  time.Time
	IsRead     bool
}
