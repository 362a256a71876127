// Package validation holds input checks shared by the services.
package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// ValidatePassword requires at least MinPasswordLength characters with one
// ASCII upper-case and one ASCII lower-case letter.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return errors.New("password must be at least 6 characters long")
	}

	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		}
	}
	if !hasUpper || !hasLower {
		return errors.New("password must contain at least one uppercase and one lowercase letter")
	}
	return nil
}

// ValidateEmail checks that email is a bare address, without a display name.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email address is invalid")
	}
	return nil
}
