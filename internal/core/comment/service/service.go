package commentapp

import (
	"context"

	"blogly/internal/config"
	"blogly/internal/core/apperr"
	commentEntity "blogly/internal/core/comment"
	"blogly/internal/core/forms"
	postapp "blogly/internal/core/post/service"
	commentPort "blogly/internal/ports/comment"
	userPort "blogly/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
}

func NewCommentService(repo commentPort.CommentRepository) *CommentService {
	return &CommentService{CommentRepository: repo}
}

// AddComment appends a comment by author to the post. If the post is gone,
// the storage foreign key rejects the insert and NotFound is returned.
func (s *CommentService) AddComment(ctx context.Context, author userPort.UserDTO, postID string, in forms.CommentInput) (*commentPort.CommentDTO, error) {
	pid, err := postapp.ParseID(postID)
	if err != nil {
		return nil, err
	}
	authorID, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid author", err)
	}

	created, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     in.Text,
		AuthorID: authorID,
		PostID:   pid,
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Info("Comment added", zap.String("commentID", created.ID.String()), zap.String("postID", postID))
	dto := toCommentDTO(created)
	dto.Author = &author
	return dto, nil
}

// ListComments returns the comments of a post oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	pid, err := postapp.ParseID(postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.FindByPostID(ctx, pid)
	if err != nil {
		return nil, err
	}

	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toCommentDTO(c))
	}
	return dtos, nil
}

func toCommentDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	dto := &commentPort.CommentDTO{
		ID:        c.ID.String(),
		Text:      c.Text,
		PostID:    c.PostID.String(),
		AuthorID:  c.AuthorID.String(),
		CreatedAt: c.CreatedAt,
	}
	if c.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{ID: c.Author.ID.String(), Username: c.Author.Username, Email: c.Author.Email}
	}
	return dto
}
