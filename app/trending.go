package app

import (
	"context"
	"sync"
	"time"

	"pulsefeed/domain"
)

// trendingTTL bounds how stale the trending aggregate may get before the
// next query triggers a full recompute.
const trendingTTL = 300 * time.Second

const trendingScanLimit = 500

// Trending recomputes hashtag counts from the full post collection, cached
// for a fixed time-to-live window.
type Trending struct {
	posts PostService
	now   func() time.Time

	mu        sync.Mutex
	cached    []domain.Hashtag
	refreshed time.Time
}

// NewTrending creates the trending hashtag service.
func NewTrending(posts PostService) *Trending {
	return &Trending{posts: posts, now: time.Now}
}

// Top returns the trending hashtags, count descending with ties in
// first-encountered order. Results are served from cache within the TTL.
func (t *Trending) Top(ctx context.Context, limit int) ([]domain.Hashtag, error) {
	t.mu.Lock()
	if t.cached != nil && t.now().Sub(t.refreshed) < trendingTTL {
		cached := t.cached
		t.mu.Unlock()
		return clip(cached, limit), nil
	}
	t.mu.Unlock()

	posts, err := t.posts.List(ctx, trendingScanLimit, 0)
	if err != nil {
		return nil, err
	}
	tags := TrendingHashtags(posts, 0)

	t.mu.Lock()
	t.cached = tags
	t.refreshed = t.now()
	t.mu.Unlock()
	return clip(tags, limit), nil
}

// ClearCache forces a recompute on the next Top call.
func (t *Trending) ClearCache() {
	t.mu.Lock()
	t.cached = nil
	t.refreshed = time.Time{}
	t.mu.Unlock()
}

func clip(tags []domain.Hashtag, limit int) []domain.Hashtag {
	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	out := make([]domain.Hashtag, len(tags))
	copy(out, tags)
	return out
}
