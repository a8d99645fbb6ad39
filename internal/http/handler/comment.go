package handler

import (
	"github.com/gofiber/fiber/v2"

	"mediavault/internal/http/middleware"
	"mediavault/internal/service"
)

type commentContentRequest struct {
	Content string `json:"content"`
}

// ListComments returns an instance's comment stream newest first.
func ListComments(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, handled, err := pageParams(c)
		if handled {
			return err
		}
		res, err := svc.List(c.UserContext(), c.Params("id"), middleware.CallerID(c), c.Get(PasswordHeader), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateComment posts a comment on an instance.
func CreateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentContentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		created, err := svc.Create(c.UserContext(), c.Params("id"), middleware.CallerID(c), c.Get(PasswordHeader), req.Content)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateComment rewrites the content; author only.
func UpdateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentContentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		updated, err := svc.Update(c.UserContext(), c.Params("id"), c.Params("commentId"), middleware.CallerID(c), req.Content)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(updated)
	}
}

// DeleteComment removes a comment; author or instance owner.
func DeleteComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id"), c.Params("commentId"), middleware.CallerID(c)); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
