package repository

import (
	"context"

	"blogsite/internal/cache"
	"blogsite/internal/models"
	"blogsite/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for the per-post like slot.
type LikeRepository interface {
	ExistsForPost(ctx context.Context, postID uint) (bool, error)
	// Like fills the slot and stores the recounted total on the post.
	// created is false when the slot was already taken.
	Like(ctx context.Context, postID uint) (created bool, count int, err error)
	CountByPost(ctx context.Context, postID uint) (int, error)
	CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error)
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

func (r *likeRepository) ExistsForPost(ctx context.Context, postID uint) (bool, error) {
	defer observability.TrackQuery("exists_for_post", "likes")()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Like(ctx context.Context, postID uint) (bool, int, error) {
	defer observability.TrackQuery("like", "likes")()

	var created bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ON CONFLICT DO NOTHING makes a concurrent duplicate a no-op instead of an error.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Like{PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0

		if err := tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).Update("like_count", count).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return false, 1, nil
		}
		r.log.LogError(ctx, err, "create")
		return false, 0, models.NewInternalError(err)
	}

	if created {
		r.log.LogCreate(ctx, map[string]interface{}{"post_id": postID, "like_count": count})
		cache.InvalidatePost(ctx, postID)
	}
	return created, int(count), nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int, error) {
	defer observability.TrackQuery("count_by_post", "likes")()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// CountByPosts returns like counts keyed by post id. Posts without likes are absent.
func (r *likeRepository) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	defer observability.TrackQuery("count_by_posts", "likes")()

	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
