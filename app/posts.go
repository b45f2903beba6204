package app

import (
	"context"

	"pulsefeed/domain"
)

// PostService queries and mutates posts on the backend of record.
// Absent entities are (nil, nil); errors are transport failures only.
type PostService interface {
	// List returns posts newest first within the pagination window.
	List(ctx context.Context, limit, offset int) ([]domain.Post, error)

	// GetByID returns one post, or nil when absent.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// GetByAuthor returns a user's posts, newest first.
	GetByAuthor(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error)

	// Search matches term against content, hashtags or title,
	// case-insensitively.
	Search(ctx context.Context, term string) ([]domain.Post, error)

	// Create persists a new post. Hashtags and the title are re-derived
	// from content before the backend call.
	Create(ctx context.Context, authorID, content, imageURL string) (domain.Post, error)

	// Like adds userID to the post's likes set. Idempotent: liking twice
	// equals liking once. Returns the updated post, or nil when absent.
	Like(ctx context.Context, postID, userID string) (*domain.Post, error)

	// Unlike removes userID from the likes set. Inverse of Like.
	Unlike(ctx context.Context, postID, userID string) (*domain.Post, error)

	// Delete removes a post and its comments.
	Delete(ctx context.Context, id string) error

	// Comments returns a post's comments, oldest first.
	Comments(ctx context.Context, postID string) ([]domain.Comment, error)

	// AddComment persists a comment on a post.
	AddComment(ctx context.Context, postID, authorID, content string) (domain.Comment, error)
}
