package server

import (
	"strings"

	"blogsite/internal/middleware"
	"blogsite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister renders the registration form.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return c.Render("user/register", fiber.Map{})
}

// Register creates an account and sends the visitor to the login form.
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return s.renderForm(c, "user/register", fiber.Map{"Name": in.Name, "Email": in.Email}, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID)
	return c.Redirect("/user/login")
}

// ShowLogin renders the login form.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return c.Render("user/login", fiber.Map{})
}

// Login verifies the credentials and sets the session cookie.
func (s *Server) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))

	token, user, err := s.userService.Login(c.UserContext(), email, c.FormValue("password"))
	if err != nil {
		return s.renderForm(c, "user/login", fiber.Map{"Email": email}, err)
	}

	s.setSessionCookie(c, token)
	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)
	return c.Redirect("/user/dashboard")
}

// Logout clears the session cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/user/login")
}
