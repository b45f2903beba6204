package repo

import (
	"context"
	"fmt"

	"pulsefeed/domain"
	"pulsefeed/infra/resource"
)

// Users implements app.UserService.
type Users struct {
	client resource.Client
	// currentID identifies the viewing user. Supplied by configuration;
	// there is no session handshake against the record backend.
	currentID string
}

// NewUsers creates a user repository for the given viewing user.
func NewUsers(client resource.Client, currentID string) *Users {
	return &Users{client: client, currentID: currentID}
}

func (u *Users) Current(ctx context.Context) (*domain.User, error) {
	return u.GetByID(ctx, u.currentID)
}

func (u *Users) GetByID(ctx context.Context, id string) (*domain.User, error) {
	rec, err := u.client.FetchOne(ctx, resource.CollectionUsers, id)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	if rec == nil {
		return nil, nil
	}
	user := mapUser(rec)
	return &user, nil
}

func (u *Users) Search(ctx context.Context, term string) ([]domain.User, error) {
	if term == "" {
		return nil, nil
	}
	records, err := u.client.FetchMany(ctx, resource.CollectionUsers, resource.Query{
		Where: resource.Or(
			resource.Contains("username", term),
			resource.Contains("display_name", term),
		),
		Sort: []resource.Sort{{Field: "username"}},
	})
	if err != nil {
		return nil, fmt.Errorf("searching users for %q: %w", term, err)
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, mapUser(rec))
	}
	return users, nil
}

func (u *Users) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	// Reject locally before touching the backend.
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	rec := resource.Record{}
	if patch.Username != nil {
		rec["username"] = *patch.Username
	}
	if patch.DisplayName != nil {
		rec["display_name"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		rec["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		rec["avatar_url"] = *patch.AvatarURL
	}
	if patch.IsPrivate != nil {
		rec["is_private"] = *patch.IsPrivate
	}
	if len(rec) == 0 {
		return u.GetByID(ctx, id)
	}

	updated, err := u.client.Update(ctx, resource.CollectionUsers, id, rec)
	if err != nil {
		return nil, fmt.Errorf("updating profile %s: %w", id, err)
	}
	if updated == nil {
		return nil, nil
	}
	user := mapUser(updated)
	return &user, nil
}

func (u *Users) Statuses(ctx context.Context, ids []string) (map[string]bool, error) {
	statuses := make(map[string]bool, len(ids))
	for _, id := range ids {
		rec, err := u.client.FetchOne(ctx, resource.CollectionUsers, id)
		if err != nil {
			return nil, fmt.Errorf("fetching status of %s: %w", id, err)
		}
		if rec == nil {
			continue
		}
		statuses[id] = rec.Bool("is_online")
	}
	return statuses, nil
}

func mapUser(rec resource.Record) domain.User {
	return domain.User{
		ID:             rec.String("Id"),
		Username:       rec.String("username"),
		DisplayName:    rec.String("display_name"),
		Bio:            rec.String("bio"),
		AvatarURL:      rec.String("avatar_url"),
		IsPrivate:      rec.Bool("is_private"),
		IsOnline:       rec.Bool("is_online"),
		FollowersCount: rec.Int("followers_count"),
		FollowingCount: rec.Int("following_count"),
		PostsCount:     rec.Int("posts_count"),
	}
}
