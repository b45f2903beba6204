package domain

import (
	"regexp"
	"strings"
	"time"
)

// Post is a single feed entry. Likes holds user IDs with no duplicates;
// Hashtags is always re-derivable from Content.
type Post struct {
	ID        string
	Title     string
	AuthorID  string
	Author    string // Display name of the author, resolved by the backend
	Content   string
	ImageURL  string
	CreatedAt time.Time
	Likes     []string
	Comments  []Comment
	Hashtags  []string
}

// Comment belongs to a post and is deleted with it.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Author    string
	Content   string
	CreatedAt time.Time
}

// Hashtag is a derived aggregate, recomputed from the post collection.
type Hashtag struct {
	Name  string // without the '#'
	Count int
}

var hashtagRe = regexp.MustCompile(`#\w+`)

// ExtractHashtags returns the hashtags embedded in content, without the '#',
// in order of first appearance and without duplicates.
func ExtractHashtags(content string) []string {
	matches := hashtagRe.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.TrimPrefix(m, "#")
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

const titleLimit = 47

// PostTitle derives a short title from post content: hashtags stripped,
// truncated with an ellipsis. Empty content yields "Untitled Post".
func PostTitle(content string) string {
	clean := strings.TrimSpace(hashtagRe.ReplaceAllString(content, ""))
	clean = strings.Join(strings.Fields(clean), " ")
	if clean == "" {
		return "Untitled Post"
	}
	runes := []rune(clean)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return clean
}

// AddLike returns the likes set with userID added. Adding an existing
// member returns the set unchanged.
func AddLike(likes []string, userID string) []string {
	for _, id := range likes {
		if id == userID {
			return likes
		}
	}
	out := make([]string, len(likes), len(likes)+1)
	copy(out, likes)
	return append(out, userID)
}

// RemoveLike returns the likes set with userID removed.
func RemoveLike(likes []string, userID string) []string {
	out := make([]string, 0, len(likes))
	for _, id := range likes {
		if id == userID {
			continue
		}
		out = append(out, id)
	}
	return out
}

// LikedBy reports whether userID is in the post's likes set.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
