// Package middleware provides authentication, logging, tracing and rate limiting middleware.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const (
	// TokenCookie is the cookie carrying the session token.
	TokenCookie = "token"
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/user/login"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// AuthRequired gates a route behind a valid session cookie.
// Missing or invalid tokens redirect to the login page rather than failing the request.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(TokenCookie)
		if token == "" {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "session token rejected", "error", err.Error())
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthRequired.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}
