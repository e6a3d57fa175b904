package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/models"
)

// NewMemory returns a fully in-memory store with the same semantics
// as the Mongo implementation. It backs the handler tests and can run
// the service without a database for local experiments.
func NewMemory() *Store {
	m := &memory{
		users: make(map[primitive.ObjectID]*models.User),
		posts: make(map[primitive.ObjectID]*models.Post),
	}
	return &Store{
		Users: (*memoryUserStore)(m),
		Posts: (*memoryPostStore)(m),
	}
}

type memory struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	posts map[primitive.ObjectID]*models.Post
	seq   int64
}

type memoryUserStore memory

func (s *memoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUserStore) AppendPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

type memoryPostStore memory

func (s *memoryPostStore) NextSeq(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return s.seq, nil
}

func (s *memoryPostStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *memoryPostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryPostStore) Update(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return ErrNotFound
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

// sortedPosts returns all posts newest first, sequence id as the
// tiebreak so ordering stays deterministic within one second.
func (s *memoryPostStore) sortedPosts() []models.Post {
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Seq > out[j].Seq
	})
	return out
}

func (s *memoryPostStore) join(p models.Post) models.PostWithAuthor {
	joined := models.PostWithAuthor{
		ID:       p.ID,
		Seq:      p.Seq,
		Title:    p.Title,
		Content:  p.Content,
		Category: p.Category,
		Image:    p.Image,
		Date:     p.Date,
	}
	if u, ok := s.users[p.UserID]; ok {
		joined.Username = u.Username
		joined.ProfileImage = u.ProfileImage
	}
	return joined
}

func (s *memoryPostStore) List(ctx context.Context, page, limit int64) ([]models.PostWithAuthor, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedPosts()
	total := int64(len(all))

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := []models.PostWithAuthor{}
	for _, p := range all[start:end] {
		// unwind semantics: posts whose owner is gone are dropped
		if _, ok := s.users[p.UserID]; !ok {
			continue
		}
		out = append(out, s.join(p))
	}
	return out, total, nil
}

func (s *memoryPostStore) Latest(ctx context.Context, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedPosts()
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memoryPostStore) ByCategory(ctx context.Context, category string) ([]models.PostWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.PostWithAuthor{}
	for _, p := range s.sortedPosts() {
		if p.Category != category {
			continue
		}
		if _, ok := s.users[p.UserID]; !ok {
			continue
		}
		out = append(out, s.join(p))
	}
	return out, nil
}

func (s *memoryPostStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PostWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	out := []models.PostWithAuthor{}
	for _, p := range s.sortedPosts() {
		if !want[p.ID] {
			continue
		}
		if _, ok := s.users[p.UserID]; !ok {
			continue
		}
		out = append(out, s.join(p))
	}
	return out, nil
}
