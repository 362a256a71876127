package server

import (
	"errors"
	"strconv"
	"strings"

	"blogsite/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment records an unapproved comment from a registered user.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c.Params("id"), "Post")
	if err != nil {
		return s.renderError(c, err)
	}

	_, err = s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:  postID,
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Message: c.FormValue("message"),
	})
	if errors.Is(err, service.ErrUnknownCommenter) {
		return c.Status(fiber.StatusBadRequest).Render("error", fiber.Map{
			"Status":  fiber.StatusBadRequest,
			"Message": err.Error(),
		})
	}
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/post/" + strconv.FormatUint(uint64(postID), 10))
}

// ApproveComment makes a comment visible on its post.
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	return s.moderate(c, true)
}

// DisapproveComment hides a comment again.
func (s *Server) DisapproveComment(c *fiber.Ctx) error {
	return s.moderate(c, false)
}

func (s *Server) moderate(c *fiber.Ctx, approve bool) error {
	commentID, err := parseID(c.FormValue("commentId"), "Comment")
	if err != nil {
		return s.renderError(c, err)
	}

	if approve {
		_, err = s.commentService.Approve(c.UserContext(), commentID)
	} else {
		_, err = s.commentService.Disapprove(c.UserContext(), commentID)
	}
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/user/comment")
}
