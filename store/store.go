package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/models"
)

var (
	// ErrNotFound is returned when a user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user with the same email
	// already exists.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserStore persists user documents.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AppendPost(ctx context.Context, userID, postID primitive.ObjectID) error
}

// PostStore persists post documents and serves the list queries.
type PostStore interface {
	// NextSeq atomically allocates the next monotonic post id.
	NextSeq(ctx context.Context) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// List returns one page of posts joined with their authors,
	// newest first, plus the total post count.
	List(ctx context.Context, page, limit int64) ([]models.PostWithAuthor, int64, error)
	Latest(ctx context.Context, limit int64) ([]models.Post, error)
	ByCategory(ctx context.Context, category string) ([]models.PostWithAuthor, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PostWithAuthor, error)
}

// Store bundles the collections behind one handle for injection into
// the handlers.
type Store struct {
	Users UserStore
	Posts PostStore
}
