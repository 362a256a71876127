package server

import (
	"blogsite/internal/middleware"
	"blogsite/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost records the post's single like
// @Summary Like a post
// @Description A post holds at most one like. A second like answers success=false.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.LikeResult
// @Failure 404 {object} models.LikeResult
// @Failure 500 {object} models.LikeResult
// @Router /post/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c.Params("id"), "Post")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.LikeResult{Message: "Post not found"})
	}

	result, err := s.likeService.Like(c.UserContext(), postID)
	if err != nil {
		status := models.StatusFor(err)
		if status == fiber.StatusNotFound {
			return c.Status(status).JSON(models.LikeResult{Message: "Post not found"})
		}
		middleware.Logger.ErrorContext(c.UserContext(), "like failed",
			"post_id", postID, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(models.LikeResult{Message: "Server error"})
	}

	return c.JSON(result)
}
