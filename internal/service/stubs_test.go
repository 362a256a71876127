package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"blogsite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context) ([]*models.Post, error)
	listByCategoryFn func(context.Context, string, uint, int) ([]*models.Post, error)
	listByAuthorFn   func(context.Context, uint) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, category string, excludeID uint, limit int) ([]*models.Post, error) {
	return s.listByCategoryFn(ctx, category, excludeID, limit)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		listFn:           func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listByCategoryFn: func(_ context.Context, _ string, _ uint, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:   func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	existsForPostFn func(context.Context, uint) (bool, error)
	likeFn          func(context.Context, uint) (bool, int, error)
	countByPostFn   func(context.Context, uint) (int, error)
	countByPostsFn  func(context.Context, []uint) (map[uint]int, error)
}

func (s *likeRepoStub) ExistsForPost(ctx context.Context, postID uint) (bool, error) {
	return s.existsForPostFn(ctx, postID)
}
func (s *likeRepoStub) Like(ctx context.Context, postID uint) (bool, int, error) {
	return s.likeFn(ctx, postID)
}
func (s *likeRepoStub) CountByPost(ctx context.Context, postID uint) (int, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *likeRepoStub) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	return s.countByPostsFn(ctx, postIDs)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		existsForPostFn: func(_ context.Context, _ uint) (bool, error) { return false, nil },
		likeFn:          func(_ context.Context, _ uint) (bool, int, error) { return true, 1, nil },
		countByPostFn:   func(_ context.Context, _ uint) (int, error) { return 0, nil },
		countByPostsFn:  func(_ context.Context, _ []uint) (map[uint]int, error) { return map[uint]int{}, nil },
	}
}

var errStore = errors.New("store unavailable")

// assertCode asserts that err is an AppError carrying code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
