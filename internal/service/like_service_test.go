package service

import (
	"context"
	"testing"

	"blogsite/internal/models"
	"blogsite/internal/repository"
	"blogsite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLike_TwiceKeepsSingleSlot(t *testing.T) {
	db := testutil.NewTestDB(t)
	postRepo := repository.NewPostRepository(db)
	svc := NewLikeService(repository.NewLikeRepository(db), postRepo)
	ctx := context.Background()

	author := testutil.CreateUser(t, db)
	post := testutil.CreatePost(t, db, author, models.CategoryOther)

	res, err := svc.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Success: true, Message: "Post liked successfully"}, res)

	res, err = svc.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.LikeResult{Success: false, Message: "Post already liked"}, res)

	var likes int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	assert.Equal(t, int64(1), likes)

	stored, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikeCount)
}

func TestLike_LostRaceIsAlreadyLiked(t *testing.T) {
	likes := noopLikeRepo()
	likes.likeFn = func(_ context.Context, _ uint) (bool, int, error) {
		return false, 1, nil
	}
	svc := NewLikeService(likes, noopPostRepo())

	res, err := svc.Like(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Post already liked", res.Message)
}

func TestLike_Errors(t *testing.T) {
	t.Run("Unknown post", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		likes := noopLikeRepo()
		likes.likeFn = func(_ context.Context, _ uint) (bool, int, error) {
			t.Fatal("like must not be stored for a missing post")
			return false, 0, nil
		}

		_, err := NewLikeService(likes, posts).Like(context.Background(), 8)
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("Store failure", func(t *testing.T) {
		likes := noopLikeRepo()
		likes.existsForPostFn = func(_ context.Context, _ uint) (bool, error) {
			return false, models.NewInternalError(errStore)
		}

		_, err := NewLikeService(likes, noopPostRepo()).Like(context.Background(), 8)
		assertCode(t, err, models.CodeInternal)
	})
}
