package post

import (
	"time"

	"blogly/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title     string    `gorm:"type:varchar(250);uniqueIndex;not null"`
	Subtitle  string    `gorm:"type:varchar(250);not null"`
	Content   string    `gorm:"type:text;not null"`
	BgImg     string    `gorm:"type:varchar(250);not null"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
