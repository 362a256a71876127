package seed

import (
	"fmt"

	"blogsite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "Password1"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	passwordHash string
}

// NewFactory creates a Factory bound to db. The demo password is hashed once
// unless skipBcrypt is set, in which case it is stored as-is.
func NewFactory(db *gorm.DB, skipBcrypt bool) (*Factory, error) {
	hash := DemoPassword
	if !skipBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		hash = string(b)
	}
	return &Factory{db: db, passwordHash: hash}, nil
}

// CreateUser persists a fake user. Overrides run before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s.%d@example.com", gofakeit.Username(), gofakeit.Number(1000, 9999)),
		Password: f.passwordHash,
		Bio:      gofakeit.Sentence(10),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a fake post by author in category.
func (f *Factory) CreatePost(author *models.User, category string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(2, 4, 12, "\n\n"),
		AuthorID: author.ID,
		Category: category,
		Tags:     []string{gofakeit.HackerNoun(), gofakeit.HackerVerb()},
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Omit("Author").Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, approved bool) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		Content:  gofakeit.Sentence(12),
		Approved: approved,
	}
	if err := f.db.Omit("Post", "User").Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike fills the like slot of post and stores the count on it.
func (f *Factory) CreateLike(post *models.Post) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{PostID: post.ID}).Error; err != nil {
			return err
		}
		post.LikeCount = 1
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).Update("like_count", 1).Error
	})
}
