package comment

import (
	"time"

	"blogly/internal/core/post"
	"blogly/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Comment rows are removed only together with their post, so the foreign key
// restricts deletes instead of cascading them.
type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index:idx_comments_post_created,priority:1"`
	Post      post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_post_created,priority:2"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
