package repo

import (
	"context"
	"strings"
	"testing"

	"pulsefeed/infra/resource"
)

func seedNotifications(t *testing.T) resource.Client {
	t.Helper()
	m := resource.NewMemory(0)
	m.Seed("app_Notification", []resource.Record{
		{"Id": "n1", "type": "like", "from_user_id": "u2", "target_id": "p1", "timestamp": "2026-01-03T10:00:00Z", "is_read": false},
		{"Id": "n2", "type": "comment", "from_user_id": "u3", "target_id": "p1", "timestamp": "2026-01-02T10:00:00Z", "is_read": false},
		{"Id": "n3", "type": "follow", "from_user_id": "u2", "target_id": "u1", "timestamp": "2026-01-01T10:00:00Z", "is_read": true},
	})
	return m
}

func TestNotificationsListNewestFirst(t *testing.T) {
	repo := NewNotifications(seedNotifications(t))
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].ID != "n1" || got[2].ID != "n3" {
		t.Fatalf("wrong order: %v", got)
	}
}

func TestNotificationsUnreadCount(t *testing.T) {
	repo := NewNotifications(seedNotifications(t))
	n, err := repo.UnreadCount(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("UnreadCount = %d, %v; want 2", n, err)
	}
}

func TestMarkAsRead(t *testing.T) {
	repo := NewNotifications(seedNotifications(t))
	ctx := context.Background()

	if err := repo.MarkAsRead(ctx, "n1"); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	n, _ := repo.UnreadCount(ctx)
	if n != 1 {
		t.Fatalf("unread after marking n1 = %d, want 1", n)
	}

	// Marking an absent notification is not an error.
	if err := repo.MarkAsRead(ctx, "gone"); err != nil {
		t.Fatalf("absent notification: %v", err)
	}
}

func TestMarkAllAsRead(t *testing.T) {
	repo := NewNotifications(seedNotifications(t))
	ctx := context.Background()

	if err := repo.MarkAllAsRead(ctx); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	n, _ := repo.UnreadCount(ctx)
	if n != 0 {
		t.Fatalf("unread after mark all = %d, want 0", n)
	}
}

func TestMarkAllAsReadPartialFailure(t *testing.T) {
	stub := newStub(seedNotifications(t))
	stub.failUpdate["n2"] = true
	repo := NewNotifications(stub)
	ctx := context.Background()

	err := repo.MarkAllAsRead(ctx)
	if err == nil {
		t.Fatal("expected error when one update fails")
	}
	if !strings.Contains(err.Error(), "1 of 2 failed") {
		t.Fatalf("error should report the partial failure: %v", err)
	}

	// n1 was updated before n2 failed; it must stay read.
	n, countErr := repo.UnreadCount(ctx)
	if countErr != nil || n != 1 {
		t.Fatalf("unread after partial failure = %d, %v; want 1", n, countErr)
	}
}
