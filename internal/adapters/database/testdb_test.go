package database

import (
	"context"
	"path/filepath"
	"testing"

	"blogly/internal/config"
	"blogly/internal/core/comment"
	"blogly/internal/core/post"
	"blogly/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	db, err := config.InitDB(config.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u, err := NewUserRepositoryDatabase(db).Create(context.Background(), &user.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "hash",
	})
	require.NoError(t, err)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author *user.User, title string) *post.Post {
	t.Helper()
	p, err := NewPostRepositoryDatabase(db).Create(context.Background(), &post.Post{
		Title:    title,
		Subtitle: "subtitle of " + title,
		Content:  "<p>" + title + "</p>",
		BgImg:    "https://example.com/" + title + ".jpg",
		AuthorID: author.ID,
	})
	require.NoError(t, err)
	return p
}

func seedComment(t *testing.T, db *gorm.DB, author *user.User, postID uuid.UUID, text string) *comment.Comment {
	t.Helper()
	c, err := NewCommentRepositoryDatabase(db).Create(context.Background(), &comment.Comment{
		Text:     text,
		AuthorID: author.ID,
		PostID:   postID,
	})
	require.NoError(t, err)
	return c
}

type rowCounts struct {
	users, posts, comments int64
}

func (r rowCounts) total() int64 { return r.users + r.posts + r.comments }

func countRows(t *testing.T, db *gorm.DB) rowCounts {
	t.Helper()
	var rc rowCounts
	require.NoError(t, db.Model(&user.User{}).Count(&rc.users).Error)
	require.NoError(t, db.Model(&post.Post{}).Count(&rc.posts).Error)
	require.NoError(t, db.Model(&comment.Comment{}).Count(&rc.comments).Error)
	return rc
}
