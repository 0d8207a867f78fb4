package post

import (
	"context"
	"time"

	"blogly/internal/core/post"
	userPort "blogly/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository is the storage port for posts.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	// FindAll returns every post newest first, with its author loaded.
	FindAll(ctx context.Context) ([]*post.Post, error)
	Update(ctx context.Context, id uuid.UUID, fields PostFields) (*post.Post, error)
	// DeleteWithComments removes the post and all its comments in one
	// transaction. It reports false when the post did not exist.
	DeleteWithComments(ctx context.Context, id uuid.UUID) (bool, error)
}

// PostFields are the editable columns of a post.
type PostFields struct {
	Title    string
	Subtitle string
	Content  string
	BgImg    string
}

// PostDTO is a post as rendered.
type PostDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle"`
	Content   string            `json:"content"`
	BgImg     string            `json:"bg_img"`
	AuthorID  string            `json:"author_id"`
	Author    *userPort.UserDTO `json:"author,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
