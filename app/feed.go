package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pulsefeed/domain"
)

// FeedItem is a post plus its mutation status in the local feed state.
type FeedItem struct {
	Post   domain.Post
	Status Status
	Err    error
}

// Feed owns the local feed state and coordinates optimistic post mutations:
// changes apply locally first, the repository call follows, and the local
// state is reconciled to the server value on success or reverted on failure.
type Feed struct {
	posts    PostService
	viewerID string
	log      *logrus.Logger

	mu    sync.Mutex
	guard *inflight
	items []FeedItem
}

// NewFeed creates a feed coordinator for the given viewer.
func NewFeed(posts PostService, viewerID string, log *logrus.Logger) *Feed {
	return &Feed{
		posts:    posts,
		viewerID: viewerID,
		log:      log,
		guard:    newInflight(),
	}
}

// Load replaces the local feed state with the backend's post list.
func (f *Feed) Load(ctx context.Context, limit, offset int) error {
	posts, err := f.posts.List(ctx, limit, offset)
	if err != nil {
		return err
	}
	items := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, FeedItem{Post: p, Status: StatusIdle})
	}
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return nil
}

// Items returns a copy of the local feed state.
func (f *Feed) Items() []FeedItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FeedItem, len(f.items))
	copy(out, f.items)
	return out
}

// Post returns the local copy of one post, or nil.
func (f *Feed) Post(id string) *domain.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Post.ID == id {
			p := f.items[i].Post
			return &p
		}
	}
	return nil
}

// ToggleLike flips the viewer's like on a post optimistically, then settles
// against the backend. On success the likes set is reconciled to the server
// value (another client may have raced); on failure it is reverted.
func (f *Feed) ToggleLike(ctx context.Context, postID string) error {
	if err := f.guard.acquire(postID, "likes"); err != nil {
		return err
	}
	defer f.guard.release(postID, "likes")

	f.mu.Lock()
	idx := f.indexOf(postID)
	if idx < 0 {
		f.mu.Unlock()
		return nil
	}
	before := f.items[idx].Post.Likes
	wasLiked := f.items[idx].Post.LikedBy(f.viewerID)
	if wasLiked {
		f.items[idx].Post.Likes = domain.RemoveLike(before, f.viewerID)
	} else {
		f.items[idx].Post.Likes = domain.AddLike(before, f.viewerID)
	}
	f.items[idx].Status = StatusPending
	f.mu.Unlock()

	var (
		updated *domain.Post
		err     error
	)
	if wasLiked {
		updated, err = f.posts.Unlike(ctx, postID, f.viewerID)
	} else {
		updated, err = f.posts.Like(ctx, postID, f.viewerID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	idx = f.indexOf(postID)
	if idx < 0 {
		return err
	}
	if err != nil {
		f.items[idx].Post.Likes = before
		f.items[idx].Status = StatusRolledBack
		f.items[idx].Err = err
		f.log.WithError(err).WithField("post", postID).Warn("like toggle failed, rolled back")
		return err
	}
	if updated == nil {
		// The post vanished server-side while the like was in flight.
		// Authoritative state wins: drop the local copy instead of
		// confirming the optimistic guess.
		f.items = append(f.items[:idx], f.items[idx+1:]...)
		return nil
	}
	// Authoritative server state wins over the optimistic guess.
	f.items[idx].Post.Likes = updated.Likes
	f.items[idx].Status = StatusConfirmed
	f.items[idx].Err = nil
	return nil
}

// CreatePost prepends an optimistic local post, persists it, and replaces
// the local copy with the server record. On failure the local post is
// dropped.
func (f *Feed) CreatePost(ctx context.Context, content, imageURL string) (domain.Post, error) {
	localID := fmt.Sprintf("local-%d", time.Now().UnixNano())
	optimistic := domain.Post{
		ID:        localID,
		Title:     domain.PostTitle(content),
		AuthorID:  f.viewerID,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
		Hashtags:  domain.ExtractHashtags(content),
	}

	f.mu.Lock()
	f.items = append([]FeedItem{{Post: optimistic, Status: StatusPending}}, f.items...)
	f.mu.Unlock()

	created, err := f.posts.Create(ctx, f.viewerID, content, imageURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.indexOf(localID)
	if err != nil {
		if idx >= 0 {
			f.items = append(f.items[:idx], f.items[idx+1:]...)
		}
		f.log.WithError(err).Warn("post creation failed, rolled back")
		return domain.Post{}, err
	}
	if idx >= 0 {
		f.items[idx] = FeedItem{Post: created, Status: StatusConfirmed}
	}
	return created, nil
}

// AddComment appends an optimistic comment to the local post, persists it,
// and reconciles. On failure the optimistic comment is removed.
func (f *Feed) AddComment(ctx context.Context, postID, content string) (domain.Comment, error) {
	if err := f.guard.acquire(postID, "comments"); err != nil {
		return domain.Comment{}, err
	}
	defer f.guard.release(postID, "comments")

	localID := fmt.Sprintf("local-%d", time.Now().UnixNano())
	optimistic := domain.Comment{
		ID:        localID,
		PostID:    postID,
		AuthorID:  f.viewerID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	if idx := f.indexOf(postID); idx >= 0 {
		f.items[idx].Post.Comments = append(f.items[idx].Post.Comments, optimistic)
		f.items[idx].Status = StatusPending
	}
	f.mu.Unlock()

	created, err := f.posts.AddComment(ctx, postID, f.viewerID, content)

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.indexOf(postID)
	if idx < 0 {
		return created, err
	}
	// Reconcile into a fresh slice: snapshots handed out by Items share
	// the old backing array and must not see the rewrite.
	comments := f.items[idx].Post.Comments
	reconciled := make([]domain.Comment, 0, len(comments))
	for _, cm := range comments {
		if cm.ID == localID {
			if err != nil {
				continue
			}
			cm = created
		}
		reconciled = append(reconciled, cm)
	}
	f.items[idx].Post.Comments = reconciled
	if err != nil {
		f.items[idx].Status = StatusRolledBack
		f.items[idx].Err = err
		f.log.WithError(err).WithField("post", postID).Warn("comment failed, rolled back")
		return domain.Comment{}, err
	}
	f.items[idx].Status = StatusConfirmed
	f.items[idx].Err = nil
	return created, nil
}

// DeletePost removes the post locally, then from the backend. On failure the
// post is restored at its previous position.
func (f *Feed) DeletePost(ctx context.Context, postID string) error {
	if err := f.guard.acquire(postID, "delete"); err != nil {
		return err
	}
	defer f.guard.release(postID, "delete")

	f.mu.Lock()
	idx := f.indexOf(postID)
	if idx < 0 {
		f.mu.Unlock()
		return nil
	}
	removed := f.items[idx]
	f.items = append(f.items[:idx], f.items[idx+1:]...)
	f.mu.Unlock()

	if err := f.posts.Delete(ctx, postID); err != nil {
		f.mu.Lock()
		if idx > len(f.items) {
			idx = len(f.items)
		}
		removed.Status = StatusRolledBack
		removed.Err = err
		f.items = append(f.items[:idx], append([]FeedItem{removed}, f.items[idx:]...)...)
		f.mu.Unlock()
		f.log.WithError(err).WithField("post", postID).Warn("delete failed, restored")
		return err
	}
	return nil
}

// indexOf must be called with f.mu held.
func (f *Feed) indexOf(postID string) int {
	for i := range f.items {
		if f.items[i].Post.ID == postID {
			return i
		}
	}
	return -1
}
