package app

import (
	"net/url"
	"sync"
	"time"
)

// highlightTTL is how long a deep-linked post stays highlighted.
const highlightTTL = 3000 * time.Millisecond

// Highlighter implements the one-shot deep-link highlight: a postId query
// parameter highlights that post for a fixed window, after which the
// highlight clears itself. The parameter is stripped from the URL as part
// of processing.
type Highlighter struct {
	now func() time.Time

	mu       sync.Mutex
	postID   string
	deadline time.Time
}

// NewHighlighter creates a highlighter on the wall clock.
func NewHighlighter() *Highlighter {
	return &Highlighter{now: time.Now}
}

// FromURL extracts a postId parameter, highlights that post, and returns
// the URL with the parameter removed. A URL without the parameter comes
// back unchanged with ok=false.
func (h *Highlighter) FromURL(raw string) (stripped string, ok bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}
	q := parsed.Query()
	postID := q.Get("postId")
	if postID == "" {
		return raw, false
	}
	h.Set(postID)

	q.Del("postId")
	parsed.RawQuery = q.Encode()
	return parsed.String(), true
}

// Set highlights a post until the TTL elapses.
func (h *Highlighter) Set(postID string) {
	h.mu.Lock()
	h.postID = postID
	h.deadline = h.now().Add(highlightTTL)
	h.mu.Unlock()
}

// Active returns the highlighted post ID, or "" once the window has passed.
func (h *Highlighter) Active() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.postID == "" || !h.now().Before(h.deadline) {
		h.postID = ""
		return ""
	}
	return h.postID
}

// Clear drops the highlight immediately.
func (h *Highlighter) Clear() {
	h.mu.Lock()
	h.postID = ""
	h.mu.Unlock()
}
