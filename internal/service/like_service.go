package service

import (
	"context"

	"blogsite/internal/models"
	"blogsite/internal/observability"
	"blogsite/internal/repository"
)

const (
	msgLiked        = "Post liked successfully"
	msgAlreadyLiked = "Post already liked"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// Like fills the post's single like slot. An occupied slot is reported in the
// result, not as an error.
func (s *LikeService) Like(ctx context.Context, postID uint) (*models.LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	exists, err := s.likeRepo.ExistsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if exists {
		observability.Likes.WithLabelValues("already_liked").Inc()
		return &models.LikeResult{Success: false, Message: msgAlreadyLiked}, nil
	}

	created, _, err := s.likeRepo.Like(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !created {
		observability.Likes.WithLabelValues("already_liked").Inc()
		return &models.LikeResult{Success: false, Message: msgAlreadyLiked}, nil
	}

	observability.Likes.WithLabelValues("liked").Inc()
	return &models.LikeResult{Success: true, Message: msgLiked}, nil
}
