package app

import (
	"context"

	"pulsefeed/domain"
)

// UserService queries and mutates user profiles.
type UserService interface {
	// Current returns the viewing user's profile.
	Current(ctx context.Context) (*domain.User, error)

	// GetByID returns one user, or nil when absent.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Search matches term against username or display name,
	// case-insensitively.
	Search(ctx context.Context, term string) ([]domain.User, error)

	// UpdateProfile validates the patch locally and applies it. A
	// *domain.ValidationError means no backend call was made.
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)

	// Statuses returns online flags for the given user IDs.
	Statuses(ctx context.Context, ids []string) (map[string]bool, error)
}
