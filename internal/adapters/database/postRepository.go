package database

import (
	"context"
	"errors"

	"blogly/internal/core/comment"
	"blogly/internal/core/post"
	postPort "blogly/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postNotFound = "post not found"

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translate(err, postNotFound)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err, postNotFound)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindAll(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error; err != nil {
		return nil, translate(err, postNotFound)
	}
	return posts, nil
}


func (repo *PostRepositoryDatabase) Update(ctx context.Context, id uuid.UUID, fields postPort.PostFields) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Omit(clause.Associations).Updates(map[string]interface{}{
			"title":    fields.Title,
			"subtitle": fields.Subtitle,
			"content":  fields.Content,
			"bg_img":   fields.BgImg,
		}).Error; err != nil {
			return err
		}
		return tx.Preload("Author").Where("id = ?", id).First(&p).Error
	})
	if err != nil {
		return nil, translate(err, postNotFound)
	}
	return &p, nil
}

var errPostMissing = errors.New("post missing")

// DeleteWithComments locks the post row, deletes its comments and then the
// post. A failure at any step rolls the whole transaction back.
func (repo *PostRepositoryDatabase) DeleteWithComments(ctx context.Context, id uuid.UUID) (bool, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p post.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPostMissing
			}
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPostMissing
		}
		return nil
	})
	if errors.Is(err, errPostMissing) {
		return false, nil
	}
	if err != nil {
		return false, translate(err, postNotFound)
	}
	return true, nil
}
