package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"blogsite/internal/cache"
	"blogsite/internal/models"
	"blogsite/internal/observability"
	"blogsite/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// FeaturedLimit caps the ranked list on the home page.
	FeaturedLimit = 5
	// RelatedLimit caps the related posts shown under a post.
	RelatedLimit = 3
)

type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

// CreatePostInput carries the raw form values. AuthorID is parsed by the service.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Tags     string
	AuthorID string
	Picture  string
}

type UpdatePostInput struct {
	PostID   uint
	Title    string
	Content  string
	Category string
	Tags     string
	Picture  string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

// ParseTags splits a comma separated tag list, trimming entries and dropping empty ones.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, tag := range strings.Split(csv, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func validatePostFields(title, content, category string) error {
	const maxTitleLen = 300
	const maxContentLen = 50000

	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	if strings.TrimSpace(category) == "" {
		return models.NewValidationError("Category is required")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	authorID, err := strconv.ParseUint(strings.TrimSpace(in.AuthorID), 10, 64)
	if err != nil || authorID == 0 {
		return nil, models.NewInvalidAuthorError(in.AuthorID)
	}
	if _, err := s.userRepo.GetByID(ctx, uint(authorID)); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewInvalidAuthorError(in.AuthorID)
		}
		return nil, err
	}

	if err := validatePostFields(in.Title, in.Content, in.Category); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: strings.TrimSpace(in.Category),
		Tags:     ParseTags(in.Tags),
		AuthorID: uint(authorID),
		Picture:  in.Picture,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// UpdatePost replaces title, content, category and tags. The picture is kept unless a new one is given.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := validatePostFields(in.Title, in.Content, in.Category); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.Category = strings.TrimSpace(in.Category)
	post.Tags = ParseTags(in.Tags)
	if in.Picture != "" {
		post.Picture = in.Picture
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and everything attached to it. A missing post is not an error.
func (s *PostService) DeletePost(ctx context.Context, postID uint) error {
	return s.postRepo.Delete(ctx, postID)
}

// GetPost assembles the post page: approved comments, live counts and related posts.
func (s *PostService) GetPost(ctx context.Context, postID uint) (_ *models.PostDetail, err error) {
	ctx, span := observability.StartSpan(ctx, "post.get", attribute.Int64("post.id", int64(postID)))
	defer func() { observability.EndSpan(span, err) }()

	var detail models.PostDetail
	err = cache.Aside(ctx, cache.PostKey(postID), &detail, cache.PostTTL, func() error {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return err
		}

		comments, err := s.commentRepo.ListApprovedByPost(ctx, postID)
		if err != nil {
			return err
		}

		likes, err := s.likeRepo.CountByPost(ctx, postID)
		if err != nil {
			return err
		}

		related, err := s.postRepo.ListByCategory(ctx, post.Category, post.ID, RelatedLimit)
		if err != nil {
			return err
		}

		post.CommentCount = len(comments)
		post.LikeCount = likes
		post.Engagement = likes + len(comments)

		detail = models.PostDetail{
			Post:         post,
			Comments:     comments,
			CommentCount: len(comments),
			LikeCount:    likes,
			Related:      related,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByAuthor returns the author's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

// ListByCategory returns a category's posts in ascending id order with counts filled.
func (s *PostService) ListByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByCategory(ctx, category, 0, 0)
	if err != nil {
		return nil, err
	}
	if err := s.fillCounts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListHome ranks every post by engagement and groups them by category.
func (s *PostService) ListHome(ctx context.Context) (_ *models.HomePage, err error) {
	ctx, span := observability.StartSpan(ctx, "post.list_home")
	defer func() { observability.EndSpan(span, err) }()

	var page models.HomePage
	err = cache.Aside(ctx, cache.HomeKey(), &page, cache.HomeTTL, func() error {
		built, err := s.buildHome(ctx)
		if err != nil {
			return err
		}
		page = *built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PostService) buildHome(ctx context.Context) (*models.HomePage, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.fillCounts(ctx, posts); err != nil {
		return nil, err
	}

	page := &models.HomePage{
		Featured:    RankByEngagement(posts, FeaturedLimit),
		Programming: []*models.Post{},
		Writing:     []*models.Post{},
		Technology:  []*models.Post{},
		Other:       []*models.Post{},
	}
	for _, p := range posts {
		switch p.Category {
		case models.CategoryProgramming:
			page.Programming = append(page.Programming, p)
		case models.CategoryWriting:
			page.Writing = append(page.Writing, p)
		case models.CategoryTechnology:
			page.Technology = append(page.Technology, p)
		case models.CategoryOther:
			page.Other = append(page.Other, p)
		}
	}
	return page, nil
}

// RankByEngagement returns up to limit posts ordered by engagement, highest first.
// The sort is stable, so ties keep the input order.
func RankByEngagement(posts []*models.Post, limit int) []*models.Post {
	ranked := make([]*models.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement > ranked[j].Engagement
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *PostService) fillCounts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	comments, err := s.commentRepo.CountApprovedByPosts(ctx, ids)
	if err != nil {
		return err
	}
	likes, err := s.likeRepo.CountByPosts(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range posts {
		p.CommentCount = comments[p.ID]
		p.LikeCount = likes[p.ID]
		p.Engagement = p.LikeCount + p.CommentCount
	}
	return nil
}
