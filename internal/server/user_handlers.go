package server

import (
	"strings"

	"blogsite/internal/models"
	"blogsite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dashboard shows the signed-in user's profile.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("user/dashboard", fiber.Map{"User": user})
}

// ProfileEdit renders the profile form.
func (s *Server) ProfileEdit(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("user/profileedit", fiber.Map{"User": user})
}

// UpdateProfile applies the submitted name, bio and optional picture.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	current, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return s.renderError(c, err)
	}

	picture, err := s.savePicture(c)
	if err != nil {
		return s.renderForm(c, "user/profileedit", fiber.Map{"User": current}, err)
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:  userID,
		Name:    strings.TrimSpace(c.FormValue("name")),
		Bio:     strings.TrimSpace(c.FormValue("bio")),
		Picture: picture,
	})
	if err != nil {
		s.imageService.Remove(picture)
		return s.renderForm(c, "user/profileedit", fiber.Map{"User": current}, err)
	}

	if picture != "" && current.Picture != "" && current.Picture != picture {
		s.imageService.Remove(current.Picture)
	}

	return c.Render("user/profileedit", fiber.Map{
		"User":           user,
		"SuccessMessage": "Profile updated successfully",
	})
}

// MyPosts lists the signed-in user's posts with the create, update and delete forms.
func (s *Server) MyPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return s.renderError(c, err)
	}

	posts, err := s.postService.ListByAuthor(ctx, userID)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Render("user/blog", fiber.Map{
		"User":       user,
		"Posts":      posts,
		"Categories": models.HomeCategories,
	})
}

// MyComments shows every comment left on the signed-in user's posts.
func (s *Server) MyComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return s.renderError(c, err)
	}

	queue, err := s.commentService.ListForOwner(ctx, userID)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Render("user/comment", fiber.Map{"User": user, "Queue": queue})
}
