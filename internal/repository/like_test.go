package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"blogsite/internal/models"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_SingleSlot(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryTechnology)

	exists, err := repo.ExistsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	created, count, err := repo.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, count)

	created, count, err = repo.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, created, "second like must not fill the slot again")
	assert.Equal(t, 1, count)

	exists, err = repo.ExistsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.LikeCount)
}

func TestLikeRepository_Counts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	liked := testutil.CreatePost(t, db, author, models.CategoryTechnology)
	unliked := testutil.CreatePost(t, db, author, models.CategoryTechnology)
	testutil.CreateLike(t, db, liked)

	n, err := repo.CountByPost(ctx, liked.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountByPost(ctx, unliked.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	counts, err := repo.CountByPosts(ctx, []uint{liked.ID, unliked.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{liked.ID: 1}, counts)
}

func TestLikeRepository_StoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes"`)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ExistsForPost(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
