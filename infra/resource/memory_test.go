package resource

import (
	"context"
	"testing"
)

func newTestMemory() *memoryClient {
	m := NewMemory(0) // No artificial latency in tests.
	m.Seed("post", []Record{
		{"Id": "p1", "content": "Cats are great #catlife", "hashtags": "catlife", "timestamp": "2026-01-03T10:00:00Z", "user_id": "u1"},
		{"Id": "p2", "content": "dogs drool", "hashtags": "doglife", "timestamp": "2026-01-02T10:00:00Z", "user_id": "u2"},
		{"Id": "p3", "content": "plain text", "hashtags": "", "timestamp": "2026-01-01T10:00:00Z", "user_id": "u1"},
	})
	return m
}

func TestFetchManyEqualTo(t *testing.T) {
	m := newTestMemory()
	got, err := m.FetchMany(context.Background(), "post", Query{
		Where: And(Eq("user_id", "u1")),
	})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(got))
	}
}

func TestFetchManyContainsIsCaseInsensitive(t *testing.T) {
	m := newTestMemory()
	got, err := m.FetchMany(context.Background(), "post", Query{
		Where: Or(Contains("content", "CAT"), Contains("hashtags", "CAT")),
	})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(got) != 1 || got[0].String("Id") != "p1" {
		t.Fatalf("expected p1 only, got %v", got)
	}
}

func TestFetchManySortAndWindow(t *testing.T) {
	m := newTestMemory()
	got, err := m.FetchMany(context.Background(), "post", Query{
		Sort:  []Sort{{Field: "timestamp", Desc: true}},
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(got) != 2 || got[0].String("Id") != "p1" || got[1].String("Id") != "p2" {
		t.Fatalf("wrong order/window: %v", got)
	}

	rest, err := m.FetchMany(context.Background(), "post", Query{
		Sort:   []Sort{{Field: "timestamp", Desc: true}},
		Limit:  2,
		Offset: 2,
	})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(rest) != 1 || rest[0].String("Id") != "p3" {
		t.Fatalf("wrong second page: %v", rest)
	}
}

func TestFetchManyNegativeOffset(t *testing.T) {
	m := newTestMemory()
	got, err := m.FetchMany(context.Background(), "post", Query{Offset: -3, Limit: 2})
	if err != nil {
		t.Fatalf("FetchMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("negative offset should read from the start, got %d records", len(got))
	}
}

func TestFetchOneAbsentIsNilNil(t *testing.T) {
	m := newTestMemory()
	rec, err := m.FetchOne(context.Background(), "post", "nope")
	if err != nil {
		t.Fatalf("expected nil error for absent record, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %v", rec)
	}
}

func TestCreateAssignsID(t *testing.T) {
	m := newTestMemory()
	created, err := m.Create(context.Background(), "post", Record{"content": "new"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.String("Id") == "" {
		t.Fatal("expected a generated Id")
	}

	fetched, err := m.FetchOne(context.Background(), "post", created.String("Id"))
	if err != nil || fetched == nil {
		t.Fatalf("created record not fetchable: %v, %v", fetched, err)
	}
}

func TestUpdatePatchesAndPreservesID(t *testing.T) {
	m := newTestMemory()
	updated, err := m.Update(context.Background(), "post", "p1", Record{"content": "edited", "Id": "evil"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.String("content") != "edited" {
		t.Fatalf("patch not applied: %v", updated)
	}
	if updated.String("Id") != "p1" {
		t.Fatalf("Id must not be patchable, got %q", updated.String("Id"))
	}
	// Untouched fields survive.
	if updated.String("user_id") != "u1" {
		t.Fatalf("unrelated field lost: %v", updated)
	}
}

func TestUpdateAbsentIsNilNil(t *testing.T) {
	m := newTestMemory()
	rec, err := m.Update(context.Background(), "post", "nope", Record{"content": "x"})
	if err != nil || rec != nil {
		t.Fatalf("expected nil, nil for absent record, got %v, %v", rec, err)
	}
}

func TestDelete(t *testing.T) {
	m := newTestMemory()
	ok, err := m.Delete(context.Background(), "post", "p1")
	if err != nil || !ok {
		t.Fatalf("Delete: %v, %v", ok, err)
	}
	ok, err = m.Delete(context.Background(), "post", "p1")
	if err != nil || ok {
		t.Fatalf("second delete should be false, nil: %v, %v", ok, err)
	}
}

func TestFetchedRecordsAreCopies(t *testing.T) {
	m := newTestMemory()
	rec, _ := m.FetchOne(context.Background(), "post", "p1")
	rec["content"] = "mutated locally"

	again, _ := m.FetchOne(context.Background(), "post", "p1")
	if again.String("content") == "mutated locally" {
		t.Fatal("local mutation leaked into the store")
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	m := NewMemory(DefaultLatency)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.FetchMany(ctx, "post", Query{}); err == nil {
		t.Fatal("expected context error")
	}
}
