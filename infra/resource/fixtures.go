package resource

import "time"

// SeedDemo loads a small demo dataset used when the client runs against the
// mock backend.
func SeedDemo(m *memoryClient) {
	now := time.Now().UTC()
	ts := func(age time.Duration) string {
		return now.Add(-age).Format(time.RFC3339)
	}

	m.Seed(CollectionUsers, []Record{
		{"Id": "u1", "username": "ada_l", "display_name": "Ada Lovelace", "bio": "Compute all the things #golang", "avatar_url": "", "is_private": false, "is_online": true, "followers_count": 42, "following_count": 17, "posts_count": 3},
		{"Id": "u2", "username": "grace_h", "display_name": "Grace Hopper", "bio": "Debugging since 1947", "avatar_url": "", "is_private": false, "is_online": false, "followers_count": 128, "following_count": 23, "posts_count": 2},
		{"Id": "u3", "username": "linus_t", "display_name": "Linus", "bio": "Talk is cheap", "avatar_url": "", "is_private": true, "is_online": true, "followers_count": 9001, "following_count": 1, "posts_count": 1},
	})

	m.Seed(CollectionPosts, []Record{
		{"Id": "p1", "Name": "Shipped the new sync layer today", "content": "Shipped the new sync layer today #golang #shipit", "image_url": "", "timestamp": ts(2 * time.Hour), "hashtags": "golang,shipit", "likes": "u2,u3", "user_id": "u1"},
		{"Id": "p2", "Name": "Cats are great", "content": "Cats are great #catlife", "image_url": "", "timestamp": ts(5 * time.Hour), "hashtags": "catlife", "likes": "u1", "user_id": "u2"},
		{"Id": "p3", "Name": "Nothing beats a quiet terminal", "content": "Nothing beats a quiet terminal #golang", "image_url": "", "timestamp": ts(26 * time.Hour), "hashtags": "golang", "likes": "", "user_id": "u3"},
	})

	m.Seed(CollectionComments, []Record{
		{"Id": "c1", "post_id": "p1", "user_id": "u2", "content": "Congrats!", "timestamp": ts(90 * time.Minute)},
		{"Id": "c2", "post_id": "p2", "user_id": "u1", "content": "For #catlovers everywhere", "timestamp": ts(4 * time.Hour)},
	})

	m.Seed(CollectionNotifications, []Record{
		{"Id": "n1", "type": "like", "from_user_id": "u2", "target_id": "p1", "timestamp": ts(time.Hour), "is_read": false},
		{"Id": "n2", "type": "comment", "from_user_id": "u2", "target_id": "p1", "timestamp": ts(85 * time.Minute), "is_read": false},
		{"Id": "n3", "type": "follow", "from_user_id": "u3", "target_id": "u1", "timestamp": ts(30 * time.Hour), "is_read": true},
	})

	m.Seed(CollectionMessages, []Record{
		{"Id": "m1", "Name": "Hey, did you see the...", "content": "Hey, did you see the new release?", "timestamp": ts(40 * time.Minute), "is_read": true, "sender_id": "u2", "receiver_id": "u1"},
		{"Id": "m2", "Name": "Yes! Rolling it out n...", "content": "Yes! Rolling it out now.", "timestamp": ts(35 * time.Minute), "is_read": true, "sender_id": "u1", "receiver_id": "u2"},
		{"Id": "m3", "Name": "Ping me when it's li...", "content": "Ping me when it's live.", "timestamp": ts(10 * time.Minute), "is_read": false, "sender_id": "u2", "receiver_id": "u1"},
	})
}
