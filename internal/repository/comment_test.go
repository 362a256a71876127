package repository

import (
	"context"
	"testing"

	"blogsite/internal/models"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateStartsUnapproved(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)

	comment := &models.Comment{PostID: post.ID, UserID: reader.ID, Content: "Great read"}
	require.NoError(t, repo.Create(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, got.Approved)
	assert.Equal(t, "Great read", got.Content)
}

func TestCommentRepository_SetApproved(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryWriting)
	comment := testutil.CreateComment(t, db, post, author, false)

	updated, err := repo.SetApproved(ctx, comment.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved)

	// Approving twice is idempotent.
	updated, err = repo.SetApproved(ctx, comment.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved)

	updated, err = repo.SetApproved(ctx, comment.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Approved)

	_, err = repo.SetApproved(ctx, comment.ID+50, true)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestCommentRepository_ApprovedListingAndCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	p1 := testutil.CreatePost(t, db, author, models.CategoryProgramming)
	p2 := testutil.CreatePost(t, db, author, models.CategoryProgramming)
	p3 := testutil.CreatePost(t, db, author, models.CategoryProgramming)

	c1 := testutil.CreateComment(t, db, p1, reader, true)
	c2 := testutil.CreateComment(t, db, p1, reader, true)
	testutil.CreateComment(t, db, p1, reader, false)
	testutil.CreateComment(t, db, p2, reader, true)
	testutil.CreateComment(t, db, p3, reader, false)

	approved, err := repo.ListApprovedByPost(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, c1.ID, approved[0].ID)
	assert.Equal(t, c2.ID, approved[1].ID)
	assert.Equal(t, reader.Name, approved[0].User.Name)
	assert.Empty(t, approved[0].User.Password)
	assert.Empty(t, approved[0].User.Email)
	assert.Empty(t, approved[0].User.Bio)

	counts, err := repo.CountApprovedByPosts(ctx, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[p1.ID])
	assert.Equal(t, 1, counts[p2.ID])
	_, ok := counts[p3.ID]
	assert.False(t, ok)

	empty, err := repo.CountApprovedByPosts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommentRepository_ListByPosts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db)
	stranger := testutil.CreateUser(t, db)
	mine := testutil.CreatePost(t, db, owner, models.CategoryOther)
	theirs := testutil.CreatePost(t, db, stranger, models.CategoryOther)

	testutil.CreateComment(t, db, mine, stranger, false)
	testutil.CreateComment(t, db, mine, stranger, true)
	testutil.CreateComment(t, db, theirs, owner, false)

	comments, err := repo.ListByPosts(ctx, []uint{mine.ID})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.Equal(t, mine.ID, c.PostID)
		assert.Equal(t, mine.Title, c.Post.Title)
		assert.Equal(t, stranger.Name, c.User.Name)
	}

	none, err := repo.ListByPosts(ctx, []uint{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
