package models

import "time"

// User is a registered author or commenter.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `json:"bio"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUserColumns are the user columns loaded alongside posts and comments.
// Post pages are cached, so contact details stay out.
var PublicUserColumns = []string{"id", "name", "picture"}
