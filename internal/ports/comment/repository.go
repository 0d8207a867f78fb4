package comment

import (
	"context"
	"time"

	"blogly/internal/core/comment"
	userPort "blogly/internal/ports/user"

	"github.com/gofrs/uuid"
)

// CommentRepository is the storage port for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	// FindByPostID returns the comments of a post oldest first, with authors.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	PostID    string            `json:"post_id"`
	AuthorID  string            `json:"author_id"`
	Author    *userPort.UserDTO `json:"author,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
