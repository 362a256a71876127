package service

import (
	"context"
	"strings"

	"blogsite/internal/models"
	"blogsite/internal/observability"
	"blogsite/internal/repository"
)

// ErrUnknownCommenter is returned when no registered user owns the comment email.
var ErrUnknownCommenter = models.NewNotFoundMessage("User not found")

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// CreateCommentInput is a public comment form. Name is shown on the form but the
// commenter is resolved by Email.
type CreateCommentInput struct {
	PostID  uint
	Name    string
	Email   string
	Message string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// CreateComment stores an unapproved comment by the registered user owning Email.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 5000

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownCommenter
	}

	content := strings.TrimSpace(in.Message)
	if content == "" {
		return nil, models.NewValidationError("Comment message is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   user.ID,
		Content:  content,
		Approved: false,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.Comments.WithLabelValues("created").Inc()
	return comment, nil
}

func (s *CommentService) Approve(ctx context.Context, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.SetApproved(ctx, commentID, true)
	if err != nil {
		return nil, err
	}
	observability.Comments.WithLabelValues("approved").Inc()
	return comment, nil
}

func (s *CommentService) Disapprove(ctx context.Context, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.SetApproved(ctx, commentID, false)
	if err != nil {
		return nil, err
	}
	observability.Comments.WithLabelValues("disapproved").Inc()
	return comment, nil
}

// ListForOwner returns the owner's posts and every comment on them, approved or not.
func (s *CommentService) ListForOwner(ctx context.Context, ownerID uint) (*models.ModerationQueue, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	comments, err := s.commentRepo.ListByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &models.ModerationQueue{Posts: posts, Comments: comments}, nil
}
