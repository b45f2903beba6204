package repo

import (
	"context"
	"testing"

	"pulsefeed/domain"
	"pulsefeed/infra/resource"
)

func seedUsers(t *testing.T) resource.Client {
	t.Helper()
	m := resource.NewMemory(0)
	m.Seed("app_User", []resource.Record{
		{"Id": "u1", "username": "ada_l", "display_name": "Ada Lovelace", "bio": "first programmer", "is_online": true},
		{"Id": "u2", "username": "grace_h", "display_name": "Grace Hopper", "bio": "", "is_online": false},
		{"Id": "u3", "username": "linus_t", "display_name": "Linus", "bio": "", "is_online": true},
	})
	return m
}

func TestUsersCurrent(t *testing.T) {
	users := NewUsers(seedUsers(t), "u1")
	got, err := users.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got == nil || got.Username != "ada_l" {
		t.Fatalf("unexpected current user: %+v", got)
	}
}

func TestUsersSearch(t *testing.T) {
	users := NewUsers(seedUsers(t), "u1")
	got, err := users.Search(context.Background(), "grace")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "u2" {
		t.Fatalf("Search(grace) = %v", got)
	}

	byDisplay, err := users.Search(context.Background(), "Lovelace")
	if err != nil || len(byDisplay) != 1 || byDisplay[0].ID != "u1" {
		t.Fatalf("search by display name failed: %v, %v", byDisplay, err)
	}
}

func TestUpdateProfileRejectsLocally(t *testing.T) {
	stub := newStub(seedUsers(t))
	users := NewUsers(stub, "u1")

	short := "ab"
	_, err := users.UpdateProfile(context.Background(), "u1", domain.ProfilePatch{Username: &short})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.calls() != 0 {
		t.Fatalf("invalid patch must not reach the backend, made %d calls", stub.calls())
	}
}

func TestUpdateProfileAppliesPatch(t *testing.T) {
	client := seedUsers(t)
	users := NewUsers(client, "u1")

	bio := "analytical engines"
	updated, err := users.UpdateProfile(context.Background(), "u1", domain.ProfilePatch{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio not updated: %+v", updated)
	}
	// Unpatched fields keep their values.
	if updated.Username != "ada_l" {
		t.Fatalf("username lost on partial patch: %+v", updated)
	}
}

func TestUpdateProfileEmptyPatchReadsBack(t *testing.T) {
	users := NewUsers(seedUsers(t), "u1")
	got, err := users.UpdateProfile(context.Background(), "u1", domain.ProfilePatch{})
	if err != nil || got == nil || got.ID != "u1" {
		t.Fatalf("empty patch should return the current record: %v, %v", got, err)
	}
}

func TestUsersStatuses(t *testing.T) {
	users := NewUsers(seedUsers(t), "u1")
	got, err := users.Statuses(context.Background(), []string{"u1", "u2", "ghost"})
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if !got["u1"] || got["u2"] {
		t.Fatalf("wrong statuses: %v", got)
	}
	if _, ok := got["ghost"]; ok {
		t.Fatal("absent user should be skipped, not reported")
	}
}
