package app

import (
	"sort"

	"pulsefeed/domain"
)

// Pure derivations over repository state. No side effects, no caching.

// UnreadNotificationCount counts unread notifications.
func UnreadNotificationCount(ns []domain.Notification) int {
	count := 0
	for _, n := range ns {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// IsLikedByViewer reports whether the viewer is in the post's likes set.
func IsLikedByViewer(p domain.Post, viewerID string) bool {
	return p.LikedBy(viewerID)
}

// TrendingHashtags counts hashtag occurrences across posts and returns the
// top entries by count descending. Ties keep first-encountered order over
// the post scan.
func TrendingHashtags(posts []domain.Post, limit int) []domain.Hashtag {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Hashtags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	tags := make([]domain.Hashtag, 0, len(order))
	for _, name := range order {
		tags = append(tags, domain.Hashtag{Name: name, Count: counts[name]})
	}
	// Stable sort preserves first-seen order among equal counts.
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	return tags
}
