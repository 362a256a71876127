package service

import (
	"context"
	"testing"

	"blogsite/internal/models"
	"blogsite/internal/repository"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestCreateComment(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db, func(u *models.User) { u.Email = "reader@example.com" })
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)

	t.Run("Starts unapproved", func(t *testing.T) {
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			PostID:  post.ID,
			Name:    "Anyone",
			Email:   "reader@example.com",
			Message: "Nice post",
		})
		require.NoError(t, err)
		assert.False(t, comment.Approved)
		assert.Equal(t, reader.ID, comment.UserID)

		detail, err := newPostService(db).GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Comments, "unapproved comments stay hidden")
		assert.Zero(t, detail.CommentCount)
	})

	tests := []struct {
		name string
		in   CreateCommentInput
		code string
	}{
		{"Unknown email", CreateCommentInput{PostID: post.ID, Email: "stranger@example.com", Message: "Hi"}, models.CodeNotFound},
		{"Unknown post", CreateCommentInput{PostID: post.ID + 9, Email: "reader@example.com", Message: "Hi"}, models.CodeNotFound},
		{"Empty message", CreateCommentInput{PostID: post.ID, Email: "reader@example.com", Message: "  "}, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateComment(ctx, tt.in)
			assertCode(t, err, tt.code)
		})
	}

	_, err := svc.CreateComment(ctx, CreateCommentInput{PostID: post.ID, Email: "stranger@example.com", Message: "Hi"})
	assert.ErrorIs(t, err, ErrUnknownCommenter)

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(1), count, "rejected comments must not be stored")
}

func TestCommentModeration(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	posts := newPostService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)
	comment := testutil.CreateComment(t, db, post, reader, false)

	approved, err := svc.Approve(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	detail, err := posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.CommentCount)

	disapproved, err := svc.Disapprove(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, disapproved.Approved)

	detail, err = posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.CommentCount)

	_, err = svc.Approve(ctx, comment.ID+40)
	assertCode(t, err, models.CodeNotFound)
}

func TestListForOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	mine := testutil.CreatePost(t, db, owner, models.CategoryTechnology)
	theirs := testutil.CreatePost(t, db, other, models.CategoryTechnology)

	testutil.CreateComment(t, db, mine, other, true)
	testutil.CreateComment(t, db, mine, other, false)
	testutil.CreateComment(t, db, theirs, owner, false)

	queue, err := svc.ListForOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, queue.Posts, 1)
	assert.Equal(t, mine.ID, queue.Posts[0].ID)
	require.Len(t, queue.Comments, 2)
	for _, c := range queue.Comments {
		assert.Equal(t, mine.ID, c.PostID)
		assert.Equal(t, other.Name, c.User.Name)
	}

	empty, err := svc.ListForOwner(ctx, owner.ID+other.ID+1)
	require.NoError(t, err)
	assert.Empty(t, empty.Posts)
	assert.Empty(t, empty.Comments)
}
