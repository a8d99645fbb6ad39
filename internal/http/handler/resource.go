package handler

import (
	"github.com/gofiber/fiber/v2"

	"mediavault/internal/http/middleware"
	"mediavault/internal/model"
	"mediavault/internal/service"
)

type resourceTitleRequest struct {
	Title string `json:"title"`
}

type moveResourceRequest struct {
	FromGroupID string `json:"from_group_id"`
	ToGroupID   string `json:"to_group_id"`
}

// PublishResource uploads a payload into a group as an image, video or
// document. The kind and title are form values; the payload rides the "file"
// field.
//
// @Summary Publish a resource
// @Tags resources
// @Accept mpfd
// @Produce json
// @Param id path string true "instance id"
// @Param groupId path string true "group id"
// @Param file formData file true "payload"
// @Success 201 {object} model.Resource
// @Failure 400 {object} errorPayload
// @Router /instances/{id}/groups/{groupId}/resources [post]
func PublishResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Publish(c.UserContext(), service.PublishResourceInput{
			InstanceID: c.Params("id"),
			GroupID:    c.Params("groupId"),
			CallerID:   middleware.CallerID(c),
			Password:   c.Get(PasswordHeader),
			Kind:       model.ResourceKind(c.FormValue("kind")),
			Title:      c.FormValue("title"),
			File:       f,
			Filename:   fh.Filename,
			FileType:   ct,
			FileSize:   fh.Size,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetResource returns a resource with its owner projection.
func GetResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Get(c.UserContext(), c.Params("id"), c.Params("resourceId"), middleware.CallerID(c), c.Get(PasswordHeader))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListResources returns a group's resources newest first.
func ListResources(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, handled, err := pageParams(c)
		if handled {
			return err
		}
		res, err := svc.ListByGroup(c.UserContext(), c.Params("id"), c.Params("groupId"), middleware.CallerID(c), c.Get(PasswordHeader), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateResourceTitle rewrites the title; resource owner or instance owner.
func UpdateResourceTitle(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resourceTitleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		res, err := svc.UpdateTitle(c.UserContext(), c.Params("id"), c.Params("resourceId"), middleware.CallerID(c), req.Title)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// MoveResource re-parents a resource between groups.
func MoveResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveResourceRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		res, err := svc.Move(c.UserContext(), c.Params("resourceId"), req.FromGroupID, req.ToGroupID, middleware.CallerID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteResource removes the blob, then the record.
func DeleteResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id"), c.Params("resourceId"), middleware.CallerID(c)); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
