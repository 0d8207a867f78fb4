package postapp

import (
	"context"

	"blogly/internal/config"
	"blogly/internal/core/apperr"
	"blogly/internal/core/forms"
	postEntity "blogly/internal/core/post"
	userEntity "blogly/internal/core/user"
	postPort "blogly/internal/ports/post"
	userPort "blogly/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository postPort.PostRepository
}

func NewPostService(postRepo postPort.PostRepository) *PostService {
	return &PostService{PostRepository: postRepo}
}

// ListPosts returns every post newest first together with the total count.
// The count is taken from the listed rows so the two always agree.
func (s *PostService) ListPosts(ctx context.Context) ([]*postPort.PostDTO, int64, error) {
	posts, err := s.PostRepository.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, ToPostDTO(p))
	}
	return dtos, int64(len(dtos)), nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	pid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	return ToPostDTO(p), nil
}

// CreatePost stores a validated post written by author.
func (s *PostService) CreatePost(ctx context.Context, author userPort.UserDTO, in forms.PostInput) (*postPort.PostDTO, error) {
	authorID, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid author", err)
	}

	created, err := s.PostRepository.Create(ctx, &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Content:  in.Content,
		BgImg:    in.BgImg,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Info("Post created", zap.String("postID", created.ID.String()), zap.String("authorID", author.ID))
	dto := ToPostDTO(created)
	dto.Author = &author
	return dto, nil
}

// UpdatePost replaces the four editable fields. Any authenticated user may
// edit any post.
func (s *PostService) UpdatePost(ctx context.Context, id string, in forms.PostInput) (*postPort.PostDTO, error) {
	pid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.PostRepository.Update(ctx, pid, postPort.PostFields{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Content:  in.Content,
		BgImg:    in.BgImg,
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Info("Post updated", zap.String("postID", id))
	return ToPostDTO(updated), nil
}

// DeletePost removes a post and its comments. Deleting a post that does not
// exist is not an error; the bool reports whether anything was removed.
func (s *PostService) DeletePost(ctx context.Context, id string) (bool, error) {
	pid, err := ParseID(id)
	if err != nil {
		return false, nil
	}

	deleted, err := s.PostRepository.DeleteWithComments(ctx, pid)
	if err != nil {
		config.Logger.Error("Post delete rolled back", zap.String("postID", id), zap.Error(err))
		return false, err
	}
	if deleted {
		config.Logger.Info("Post deleted", zap.String("postID", id))
	}
	return deleted, nil
}

// ParseID turns a path id into a uuid. Malformed ids cannot name a post, so
// they are reported as NotFound.
func ParseID(id string) (uuid.UUID, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.NotFound, "post not found", err)
	}
	return pid, nil
}

func ToPostDTO(p *postEntity.Post) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:        p.ID.String(),
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Content:   p.Content,
		BgImg:     p.BgImg,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author.ID != uuid.Nil {
		dto.Author = userDTO(&p.Author)
	}
	return dto
}

func userDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}
