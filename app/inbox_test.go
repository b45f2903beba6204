package app

import (
	"context"
	"testing"

	"pulsefeed/domain"
)

func newTestInbox(t *testing.T, ns *stubNotifications) *Inbox {
	t.Helper()
	in := NewInbox(ns, discardLog())
	if err := in.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return in
}

func TestInboxUnread(t *testing.T) {
	in := newTestInbox(t, &stubNotifications{items: []domain.Notification{
		{ID: "n1"},
		{ID: "n2", IsRead: true},
		{ID: "n3"},
	}})
	if got := in.Unread(); got != 2 {
		t.Fatalf("Unread = %d, want 2", got)
	}
}

func TestMarkReadConfirms(t *testing.T) {
	in := newTestInbox(t, &stubNotifications{items: []domain.Notification{{ID: "n1"}}})
	if err := in.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if in.Unread() != 0 {
		t.Fatalf("unread after mark = %d, want 0", in.Unread())
	}
}

func TestMarkReadRollsBackOnFailure(t *testing.T) {
	in := newTestInbox(t, &stubNotifications{
		items:        []domain.Notification{{ID: "n1"}},
		failMarkRead: true,
	})
	if err := in.MarkRead(context.Background(), "n1"); err == nil {
		t.Fatal("expected failure")
	}
	if in.Items()[0].IsRead {
		t.Fatal("read flag not reverted after failed mark")
	}
}

func TestMarkReadAlreadyReadIsNoop(t *testing.T) {
	ns := &stubNotifications{
		items:        []domain.Notification{{ID: "n1", IsRead: true}},
		failMarkRead: true, // would fail if called
	}
	in := newTestInbox(t, ns)
	if err := in.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("already-read mark should be a no-op: %v", err)
	}
}

func TestMarkAllReadConfirms(t *testing.T) {
	in := newTestInbox(t, &stubNotifications{items: []domain.Notification{
		{ID: "n1"}, {ID: "n2"}, {ID: "n3", IsRead: true},
	}})
	if err := in.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if in.Unread() != 0 {
		t.Fatalf("unread after mark all = %d, want 0", in.Unread())
	}
}

func TestMarkAllReadPartialFailureReloads(t *testing.T) {
	ns := &stubNotifications{
		items:            []domain.Notification{{ID: "n1"}, {ID: "n2"}},
		markAllFailAfter: 1,
	}
	in := newTestInbox(t, ns)

	if err := in.MarkAllRead(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	// Local state reflects what the backend actually confirmed: n1 read,
	// n2 still unread. The confirmed flag never regresses.
	items := in.Items()
	if !items[0].IsRead {
		t.Fatal("confirmed read flag regressed")
	}
	if items[1].IsRead {
		t.Fatal("unconfirmed read flag survived the reload")
	}
}
