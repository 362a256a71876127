// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"blogsite/internal/database"
	"blogsite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database scoped to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser persists a user with fake details. The password column holds passwordHash as given.
func CreateUser(t *testing.T, db *gorm.DB, overrides ...func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: "not-a-real-hash",
		Bio:      gofakeit.Sentence(8),
	}
	for _, o := range overrides {
		o(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreatePost persists a post by author in category.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, category string, overrides ...func(*models.Post)) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    gofakeit.Sentence(4),
		Content:  gofakeit.Paragraph(1, 2, 8, " "),
		AuthorID: author.ID,
		Category: category,
		Tags:     []string{gofakeit.Word(), gofakeit.Word()},
	}
	for _, o := range overrides {
		o(post)
	}
	if err := db.Omit("Author").Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

// CreateComment persists a comment by user on post.
func CreateComment(t *testing.T, db *gorm.DB, post *models.Post, user *models.User, approved bool) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		Content:  gofakeit.Sentence(6),
		Approved: approved,
	}
	if err := db.Omit("Post", "User").Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

// CreateLike fills the like slot of post and mirrors the count onto it.
func CreateLike(t *testing.T, db *gorm.DB, post *models.Post) {
	t.Helper()

	if err := db.Create(&models.Like{PostID: post.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}
	if err := db.Model(&models.Post{}).Where("id = ?", post.ID).Update("like_count", 1).Error; err != nil {
		t.Fatalf("update like count: %v", err)
	}
}
