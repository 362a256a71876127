package models

import "time"

// Fixed categories shown on the home page.
const (
	CategoryProgramming = "Programming"
	CategoryWriting     = "Writing"
	CategoryTechnology  = "Technology"
	CategoryOther       = "Other"
)

// HomeCategories lists the home page sections in display order.
var HomeCategories = []string{CategoryProgramming, CategoryWriting, CategoryTechnology, CategoryOther}

// Post is a blog entry written by a User.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   User     `gorm:"foreignKey:AuthorID" json:"author"`
	Category string   `gorm:"not null;index" json:"category"`
	Tags     []string `gorm:"serializer:json;type:text" json:"tags"`
	Picture  string   `json:"picture"`
	// LikeCount is written by the like flow only.
	LikeCount int `gorm:"not null;default:0" json:"like_count"`
	// CommentCount and Engagement are computed per request.
	CommentCount int       `gorm:"-" json:"comment_count"`
	Engagement   int       `gorm:"-" json:"engagement"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
