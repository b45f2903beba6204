package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"pulsefeed/domain"
)

var errBackend = errors.New("backend rejected the call")

func discardLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubPosts is a scriptable PostService for coordinator tests.
type stubPosts struct {
	mu    sync.Mutex
	posts []domain.Post

	failLike    bool
	failCreate  bool
	failDelete  bool
	failComment bool

	// serverLikes, when set, is returned as the likes set from Like and
	// Unlike regardless of the request. Simulates a racing client.
	serverLikes []string

	// likeEntered and likeRelease, when set, let a test hold a Like call
	// open to overlap it with another mutation. commentEntered and
	// commentRelease do the same for AddComment.
	likeEntered    chan struct{}
	likeRelease    chan struct{}
	commentEntered chan struct{}
	commentRelease chan struct{}

	listCalls int
}

func (s *stubPosts) find(id string) *domain.Post {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i]
		}
	}
	return nil
}

func (s *stubPosts) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *stubPosts) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.find(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *stubPosts) GetByAuthor(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	return nil, nil
}

func (s *stubPosts) Search(ctx context.Context, term string) ([]domain.Post, error) {
	return nil, nil
}

func (s *stubPosts) Create(ctx context.Context, authorID, content, imageURL string) (domain.Post, error) {
	if s.failCreate {
		return domain.Post{}, errBackend
	}
	p := domain.Post{
		ID:       "srv-1",
		AuthorID: authorID,
		Content:  content,
		ImageURL: imageURL,
		Title:    domain.PostTitle(content),
		Hashtags: domain.ExtractHashtags(content),
	}
	s.mu.Lock()
	s.posts = append([]domain.Post{p}, s.posts...)
	s.mu.Unlock()
	return p, nil
}

func (s *stubPosts) Like(ctx context.Context, postID, userID string) (*domain.Post, error) {
	if s.likeEntered != nil {
		s.likeEntered <- struct{}{}
		<-s.likeRelease
	}
	if s.failLike {
		return nil, errBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(postID)
	if p == nil {
		return nil, nil
	}
	p.Likes = domain.AddLike(p.Likes, userID)
	cp := *p
	if s.serverLikes != nil {
		cp.Likes = s.serverLikes
	}
	return &cp, nil
}

func (s *stubPosts) Unlike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	if s.failLike {
		return nil, errBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(postID)
	if p == nil {
		return nil, nil
	}
	p.Likes = domain.RemoveLike(p.Likes, userID)
	cp := *p
	if s.serverLikes != nil {
		cp.Likes = s.serverLikes
	}
	return &cp, nil
}

func (s *stubPosts) Delete(ctx context.Context, id string) error {
	if s.failDelete {
		return errBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubPosts) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	return nil, nil
}

func (s *stubPosts) AddComment(ctx context.Context, postID, authorID, content string) (domain.Comment, error) {
	if s.commentEntered != nil {
		s.commentEntered <- struct{}{}
		<-s.commentRelease
	}
	if s.failComment {
		return domain.Comment{}, errBackend
	}
	return domain.Comment{ID: "srv-c1", PostID: postID, AuthorID: authorID, Content: content}, nil
}

// stubNotifications is a scriptable NotificationService.
type stubNotifications struct {
	mu    sync.Mutex
	items []domain.Notification

	failMarkRead bool
	// markAllFailAfter, when positive, marks that many records and then
	// fails. Zero means mark everything.
	markAllFailAfter int
}

func (s *stubNotifications) List(ctx context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *stubNotifications) UnreadCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return UnreadNotificationCount(s.items), nil
}

func (s *stubNotifications) MarkAsRead(ctx context.Context, id string) error {
	if s.failMarkRead {
		return errBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
		}
	}
	return nil
}

func (s *stubNotifications) MarkAllAsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for i := range s.items {
		if s.items[i].IsRead {
			continue
		}
		if s.markAllFailAfter > 0 && marked >= s.markAllFailAfter {
			return errBackend
		}
		s.items[i].IsRead = true
		marked++
	}
	return nil
}

// stubMessages is a scriptable MessageService.
type stubMessages struct {
	mu   sync.Mutex
	msgs []domain.Message

	failSend     bool
	failMarkConv bool
}

func (s *stubMessages) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	return nil, nil
}

func (s *stubMessages) ListConversation(ctx context.Context, userID, otherUserID string) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Message
	for _, m := range s.msgs {
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.SenderID == otherUserID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMessages) Send(ctx context.Context, senderID, receiverID, content string) (domain.Message, error) {
	if s.failSend {
		return domain.Message{}, errBackend
	}
	m := domain.Message{ID: "srv-m1", SenderID: senderID, ReceiverID: receiverID, Content: content}
	s.mu.Lock()
	s.msgs = append(s.msgs, m)
	s.mu.Unlock()
	return m, nil
}

func (s *stubMessages) MarkConversationRead(ctx context.Context, userID, otherUserID string) error {
	if s.failMarkConv {
		return errBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].SenderID == otherUserID && s.msgs[i].ReceiverID == userID {
			s.msgs[i].IsRead = true
		}
	}
	return nil
}

func (s *stubMessages) UnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (s *stubMessages) Conversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return nil, nil
}

// stubUsers serves online statuses only.
type stubUsers struct {
	statuses map[string]bool
}

func (s *stubUsers) Current(ctx context.Context) (*domain.User, error)           { return nil, nil }
func (s *stubUsers) GetByID(ctx context.Context, id string) (*domain.User, error) { return nil, nil }
func (s *stubUsers) Search(ctx context.Context, term string) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUsers) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	return nil, nil
}

func (s *stubUsers) Statuses(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range ids {
		if online, ok := s.statuses[id]; ok {
			out[id] = online
		}
	}
	return out, nil
}
