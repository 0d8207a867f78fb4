package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"blogly/internal/core/apperr"
	"blogly/internal/core/comment"
	"blogly/internal/core/post"
	postPort "blogly/internal/ports/post"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepositoryDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	author := seedUser(t, db, "alice")
	seedPost(t, db, author, "hello")
	before := countRows(t, db)

	_, err := NewPostRepositoryDatabase(db).Create(ctx, &post.Post{
		Title: "hello", Subtitle: "s", Content: "c", BgImg: "b", AuthorID: author.ID,
	})
	assert.True(t, apperr.Is(err, apperr.Conflict), "got %v", err)
	assert.Equal(t, before, countRows(t, db))
}

func TestPostRepositoryFindAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	author := seedUser(t, db, "alice")
	first := seedPost(t, db, author, "first")
	second := seedPost(t, db, author, "second")
	third := seedPost(t, db, author, "third")

	posts, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{posts[0].ID, posts[1].ID, posts[2].ID})
	assert.Equal(t, "alice", posts[0].Author.Username)
}

func TestPostRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	author := seedUser(t, db, "alice")
	p := seedPost(t, db, author, "original")
	seedPost(t, db, author, "taken")

	fields := postPort.PostFields{Title: "edited", Subtitle: "new sub", Content: "new body", BgImg: "https://example.com/new.jpg"}
	updated, err := repo.Update(ctx, p.ID, fields)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	for _, check := range []*post.Post{updated, got} {
		assert.Equal(t, p.ID, check.ID)
		assert.Equal(t, author.ID, check.AuthorID)
		assert.Equal(t, "alice", check.Author.Username)
		assert.Equal(t, fields, postPort.PostFields{Title: check.Title, Subtitle: check.Subtitle, Content: check.Content, BgImg: check.BgImg})
	}

	_, err = repo.Update(ctx, p.ID, postPort.PostFields{Title: "taken", Subtitle: "s", Content: "c", BgImg: "b"})
	assert.True(t, apperr.Is(err, apperr.Conflict), "got %v", err)

	_, err = repo.Update(ctx, uuid.Must(uuid.NewV4()), fields)
	assert.True(t, apperr.Is(err, apperr.NotFound), "got %v", err)
}

func TestDeleteWithCommentsRemovesExactlyPostAndComments(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	author := seedUser(t, db, "alice")
	doomed := seedPost(t, db, author, "doomed")
	kept := seedPost(t, db, author, "kept")
	const n = 3
	for i := 0; i < n; i++ {
		seedComment(t, db, author, doomed.ID, "comment")
	}
	seedComment(t, db, author, kept.ID, "stays")
	before := countRows(t, db)

	deleted, err := repo.DeleteWithComments(ctx, doomed.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	after := countRows(t, db)
	assert.Equal(t, int64(n+1), before.total()-after.total())
	assert.Equal(t, int64(1), after.comments)

	_, err = repo.FindByID(ctx, doomed.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestDeleteWithCommentsMissingPost(t *testing.T) {
	db := newTestDB(t)
	deleted, err := NewPostRepositoryDatabase(db).DeleteWithComments(context.Background(), uuid.Must(uuid.NewV4()))
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteWithCommentsRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	author := seedUser(t, db, "alice")
	p := seedPost(t, db, author, "doomed")
	seedComment(t, db, author, p.ID, "one")
	seedComment(t, db, author, p.ID, "two")
	before := countRows(t, db)

	// Fail the post delete, which runs after the comments are already gone
	// inside the transaction.
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_post_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "posts" {
			_ = tx.AddError(errors.New("forced failure"))
		}
	}))

	deleted, err := NewPostRepositoryDatabase(db).DeleteWithComments(ctx, p.ID)
	assert.False(t, deleted)
	assert.True(t, apperr.Is(err, apperr.Storage), "got %v", err)
	assert.Equal(t, before, countRows(t, db))
}

func TestDeleteRacingCommentsLeavesNoOrphans(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	author := seedUser(t, db, "alice")
	p := seedPost(t, db, author, "contended")
	comments := NewCommentRepositoryDatabase(db)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := comments.Create(ctx, &comment.Comment{Text: "racing", AuthorID: author.ID, PostID: p.ID})
			errs <- err
		}()
	}

	deleted, err := NewPostRepositoryDatabase(db).DeleteWithComments(ctx, p.ID)
	wg.Wait()
	close(errs)

	require.NoError(t, err)
	assert.True(t, deleted)
	for err := range errs {
		if err != nil {
			assert.True(t, apperr.Is(err, apperr.NotFound), "unexpected error: %v", err)
		}
	}

	var orphans int64
	require.NoError(t, db.Model(&comment.Comment{}).
		Where("post_id NOT IN (?)", db.Model(&post.Post{}).Select("id")).
		Count(&orphans).Error)
	assert.Zero(t, orphans)
}
