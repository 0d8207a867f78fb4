package database

import (
	"fmt"

	"blogly/internal/config"
	"blogly/internal/core/comment"
	"blogly/internal/core/post"
	"blogly/internal/core/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the users, posts and comments tables. Parents
// are migrated before children so the foreign keys resolve.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &post.Post{}, &comment.Comment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	config.Logger.Info("Database migrations completed")
	return nil
}
