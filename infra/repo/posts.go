// Package repo implements the app service interfaces over a resource.Client,
// normalizing raw backend records into domain types.
package repo

import (
	"context"
	"fmt"
	"time"

	"pulsefeed/domain"
	"pulsefeed/infra/resource"
)

// Posts implements app.PostService.
type Posts struct {
	client resource.Client
	now    func() time.Time
}

// NewPosts creates a post repository over the given backend client.
func NewPosts(client resource.Client) *Posts {
	return &Posts{client: client, now: time.Now}
}

func (p *Posts) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	records, err := p.client.FetchMany(ctx, resource.CollectionPosts, resource.Query{
		Sort:   []resource.Sort{{Field: "timestamp", Desc: true}},
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return mapPosts(records), nil
}

func (p *Posts) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	rec, err := p.client.FetchOne(ctx, resource.CollectionPosts, id)
	if err != nil {
		return nil, fmt.Errorf("fetching post %s: %w", id, err)
	}
	if rec == nil {
		return nil, nil
	}
	post := mapPost(rec)
	return &post, nil
}

func (p *Posts) GetByAuthor(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	records, err := p.client.FetchMany(ctx, resource.CollectionPosts, resource.Query{
		Where:  resource.And(resource.Eq("user_id", userID)),
		Sort:   []resource.Sort{{Field: "timestamp", Desc: true}},
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing posts by %s: %w", userID, err)
	}
	return mapPosts(records), nil
}

func (p *Posts) Search(ctx context.Context, term string) ([]domain.Post, error) {
	if term == "" {
		return nil, nil
	}
	records, err := p.client.FetchMany(ctx, resource.CollectionPosts, resource.Query{
		Where: resource.Or(
			resource.Contains("content", term),
			resource.Contains("hashtags", term),
			resource.Contains("Name", term),
		),
		Sort: []resource.Sort{{Field: "timestamp", Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("searching posts for %q: %w", term, err)
	}
	return mapPosts(records), nil
}

func (p *Posts) Create(ctx context.Context, authorID, content, imageURL string) (domain.Post, error) {
	if content == "" {
		return domain.Post{}, &domain.ValidationError{Field: "content", Reason: "content is required"}
	}

	// Hashtags and the title are always derived from content, never
	// trusted from the caller.
	rec := resource.Record{
		"Name":      domain.PostTitle(content),
		"content":   content,
		"image_url": imageURL,
		"timestamp": p.now().UTC().Format(time.RFC3339),
		"hashtags":  resource.JoinList(domain.ExtractHashtags(content)),
		"likes":     "",
		"user_id":   authorID,
	}

	created, err := p.client.Create(ctx, resource.CollectionPosts, rec)
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return mapPost(created), nil
}

func (p *Posts) Like(ctx context.Context, postID, userID string) (*domain.Post, error) {
	return p.updateLikes(ctx, postID, func(likes []string) []string {
		return domain.AddLike(likes, userID)
	})
}

func (p *Posts) Unlike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	return p.updateLikes(ctx, postID, func(likes []string) []string {
		return domain.RemoveLike(likes, userID)
	})
}

// updateLikes is a read-modify-write on the comma-joined likes field.
func (p *Posts) updateLikes(ctx context.Context, postID string, apply func([]string) []string) (*domain.Post, error) {
	rec, err := p.client.FetchOne(ctx, resource.CollectionPosts, postID)
	if err != nil {
		return nil, fmt.Errorf("fetching post %s: %w", postID, err)
	}
	if rec == nil {
		return nil, nil
	}

	likes := apply(rec.List("likes"))
	updated, err := p.client.Update(ctx, resource.CollectionPosts, postID, resource.Record{
		"likes": resource.JoinList(likes),
	})
	if err != nil {
		return nil, fmt.Errorf("updating likes on %s: %w", postID, err)
	}
	if updated == nil {
		return nil, nil
	}
	post := mapPost(updated)
	return &post, nil
}

func (p *Posts) Delete(ctx context.Context, id string) error {
	if _, err := p.client.Delete(ctx, resource.CollectionPosts, id); err != nil {
		return fmt.Errorf("deleting post %s: %w", id, err)
	}

	// Comments are owned by the post.
	comments, err := p.client.FetchMany(ctx, resource.CollectionComments, resource.Query{
		Where: resource.And(resource.Eq("post_id", id)),
	})
	if err != nil {
		return fmt.Errorf("listing comments of %s: %w", id, err)
	}
	for _, c := range comments {
		if _, err := p.client.Delete(ctx, resource.CollectionComments, c.String("Id")); err != nil {
			return fmt.Errorf("deleting comment %s: %w", c.String("Id"), err)
		}
	}
	return nil
}

func (p *Posts) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	records, err := p.client.FetchMany(ctx, resource.CollectionComments, resource.Query{
		Where: resource.And(resource.Eq("post_id", postID)),
		Sort:  []resource.Sort{{Field: "timestamp"}},
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments of %s: %w", postID, err)
	}
	comments := make([]domain.Comment, 0, len(records))
	for _, rec := range records {
		comments = append(comments, mapComment(rec))
	}
	return comments, nil
}

func (p *Posts) AddComment(ctx context.Context, postID, authorID, content string) (domain.Comment, error) {
	if content == "" {
		return domain.Comment{}, &domain.ValidationError{Field: "content", Reason: "content is required"}
	}
	created, err := p.client.Create(ctx, resource.CollectionComments, resource.Record{
		"post_id":   postID,
		"user_id":   authorID,
		"content":   content,
		"timestamp": p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return mapComment(created), nil
}

func mapPost(rec resource.Record) domain.Post {
	return domain.Post{
		ID:        rec.String("Id"),
		Title:     rec.String("Name"),
		AuthorID:  rec.String("user_id"),
		Author:    rec.String("user_display_name"),
		Content:   rec.String("content"),
		ImageURL:  rec.String("image_url"),
		CreatedAt: rec.Time("timestamp"),
		Likes:     rec.List("likes"),
		Hashtags:  rec.List("hashtags"),
	}
}

func mapPosts(records []resource.Record) []domain.Post {
	posts := make([]domain.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, mapPost(rec))
	}
	return posts
}

func mapComment(rec resource.Record) domain.Comment {
	return domain.Comment{
		ID:        rec.String("Id"),
		PostID:    rec.String("post_id"),
		AuthorID:  rec.String("user_id"),
		Author:    rec.String("user_display_name"),
		Content:   rec.String("content"),
		CreatedAt: rec.Time("timestamp"),
	}
}
