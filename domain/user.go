package domain

import (
	"regexp"
	"unicode/utf8"
)

// User is a profile record. The follower/following/post counters are
// denormalized by the backend and not guaranteed consistent with actual
// relationship edges.
type User struct {
	ID             string
	Username       string
	DisplayName    string
	Bio            string
	AvatarURL      string
	IsPrivate      bool
	IsOnline       bool
	FollowersCount int
	FollowingCount int
	PostsCount     int
}

// ProfilePatch carries profile fields to update. Nil means "leave unchanged".
type ProfilePatch struct {
	Username    *string
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	IsPrivate   *bool
}

const maxBioLength = 160

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidatePatch checks field constraints before any backend call.
func (p ProfilePatch) Validate() error {
	if p.Username != nil {
		switch {
		case *p.Username == "":
			return &ValidationError{Field: "username", Reason: "username is required"}
		case utf8.RuneCountInString(*p.Username) < 3:
			return &ValidationError{Field: "username", Reason: "username must be at least 3 characters"}
		case !usernameRe.MatchString(*p.Username):
			return &ValidationError{Field: "username", Reason: "username may only contain letters, digits and underscores"}
		}
	}
	if p.DisplayName != nil && *p.DisplayName == "" {
		return &ValidationError{Field: "displayName", Reason: "display name is required"}
	}
	if p.Bio != nil && utf8.RuneCountInString(*p.Bio) > maxBioLength {
		return &ValidationError{Field: "bio", Reason: "bio must be 160 characters or fewer"}
	}
	return nil
}
