package server

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"blogsite/internal/middleware"
	"blogsite/internal/models"
	"blogsite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a path or form id. Malformed ids are reported as a missing resource.
func parseID(raw, resource string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundMessage(resource + " not found")
	}
	return uint(id), nil
}

func asAppError(err error) (*models.AppError, bool) {
	var appErr *models.AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// renderError renders the error page with the status and public message of err.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err.Error())
	}
	return c.Status(status).Render("error", fiber.Map{
		"Status":  status,
		"Message": models.PublicMessage(err),
	})
}

// renderForm re-renders a form page with the public message of err.
func (s *Server) renderForm(c *fiber.Ctx, page string, data fiber.Map, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "form submission failed",
			"path", c.Path(), "error", err.Error())
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["ErrorMessage"] = models.PublicMessage(err)
	return c.Status(status).Render(page, data)
}

// savePicture stores the optional multipart "picture" field and returns its
// public path, or "" when no file was sent.
func (s *Server) savePicture(c *fiber.Ctx) (string, error) {
	header, err := c.FormFile("picture")
	if err != nil || header == nil || header.Size == 0 {
		return "", nil
	}

	f, err := header.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, s.imageService.MaxUploadSizeBytes()+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}

	return s.imageService.Store(c.UserContext(), service.UploadImageInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.TokenTTL / time.Second),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentUserID returns the id set by the auth guard. Guarded routes always have one.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := middleware.CurrentUserID(c)
	return id
}
