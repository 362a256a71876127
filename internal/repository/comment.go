package repository

import (
	"context"

	"blogsite/internal/cache"
	"blogsite/internal/models"
	"blogsite/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	SetApproved(ctx context.Context, id uint, approved bool) (*models.Comment, error)
	ListApprovedByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	CountApprovedByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error)
	ListByPosts(ctx context.Context, postIDs []uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, log: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()

	if err := r.db.WithContext(ctx).Omit("Post", "User").Create(comment).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"comment_id": comment.ID, "post_id": comment.PostID})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.TrackQuery("get_by_id", "comments")()

	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, notFoundOr(err, "Comment", id)
	}
	return &comment, nil
}

// SetApproved flips the moderation flag and returns the updated comment.
func (r *commentRepository) SetApproved(ctx context.Context, id uint, approved bool) (*models.Comment, error) {
	defer observability.TrackQuery("set_approved", "comments")()

	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("approved", approved).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return nil, models.NewInternalError(err)
	}
	comment.Approved = approved

	r.log.LogUpdate(ctx, map[string]interface{}{"comment_id": id, "approved": approved})
	cache.InvalidatePost(ctx, comment.PostID)
	return comment, nil
}

// ListApprovedByPost returns the visible comments of a post, oldest first.
func (r *commentRepository) ListApprovedByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	defer observability.TrackQuery("list_approved_by_post", "comments")()

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select(models.PublicUserColumns)
		}).
		Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// CountApprovedByPosts returns approved comment counts keyed by post id.
// Posts without approved comments are absent from the map.
func (r *commentRepository) CountApprovedByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	defer observability.TrackQuery("count_approved_by_posts", "comments")()

	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ? AND approved = ?", postIDs, true).
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

// ListByPosts returns every comment on the given posts with post and commenter loaded, newest first.
func (r *commentRepository) ListByPosts(ctx context.Context, postIDs []uint) ([]*models.Comment, error) {
	defer observability.TrackQuery("list_by_posts", "comments")()

	comments := []*models.Comment{}
	if len(postIDs) == 0 {
		return comments, nil
	}

	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select(models.PublicUserColumns)
		}).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
