package server

import (
	"strings"

	"blogsite/internal/middleware"
	"blogsite/internal/models"
	"blogsite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home renders the featured posts and the four category sections.
func (s *Server) Home(c *fiber.Ctx) error {
	page, err := s.postService.ListHome(c.UserContext())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("index", fiber.Map{"Page": page})
}

// BlogLanding renders the blog page without a selected post.
func (s *Server) BlogLanding(c *fiber.Ctx) error {
	return c.Render("blog", fiber.Map{})
}

// Category lists one category when ?name= is given, otherwise the category index.
func (s *Server) Category(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return c.Render("category", fiber.Map{"Categories": models.HomeCategories})
	}

	posts, err := s.postService.ListByCategory(c.UserContext(), name)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("category", fiber.Map{"Category": name, "Posts": posts})
}

// GetPost renders a post with its approved comments, counts and related posts.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c.Params("id"), "Post")
	if err != nil {
		return s.renderError(c, err)
	}

	detail, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("blog", fiber.Map{"Detail": detail})
}

// CreatePost publishes a post for the authorId given in the form.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	picture, err := s.savePicture(c)
	if err != nil {
		return s.renderError(c, err)
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Category: c.FormValue("category"),
		Tags:     c.FormValue("tags"),
		AuthorID: c.FormValue("authorId"),
		Picture:  picture,
	})
	if err != nil {
		s.imageService.Remove(picture)
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", post.AuthorID)
	return c.Redirect("/blog")
}

// UpdatePost replaces the post's fields. The picture is kept when none is uploaded.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := parseID(c.FormValue("postId"), "Post")
	if err != nil {
		return s.renderError(c, err)
	}

	picture, err := s.savePicture(c)
	if err != nil {
		return s.renderError(c, err)
	}

	if _, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		PostID:   postID,
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Category: c.FormValue("category"),
		Tags:     c.FormValue("tags"),
		Picture:  picture,
	}); err != nil {
		s.imageService.Remove(picture)
		return s.renderError(c, err)
	}

	return c.Redirect("/user/blog")
}

// DeletePost removes a post with its comments and likes. Unknown ids are not an error.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c.FormValue("postId"), "Post")
	if err != nil {
		return c.Redirect("/user/blog")
	}

	if err := s.postService.DeletePost(c.UserContext(), postID); err != nil {
		return s.renderError(c, err)
	}
	return c.Redirect("/user/blog")
}
