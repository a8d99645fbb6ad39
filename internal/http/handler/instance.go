package handler

import (
	"github.com/gofiber/fiber/v2"

	"mediavault/internal/http/middleware"
	"mediavault/internal/model"
	"mediavault/internal/service"
)

type updateInstanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type toggleVisibilityRequest struct {
	NewPassword string `json:"new_password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CreateInstance creates an instance from a multipart form. The thumbnail
// rides the "thumbnail" file field; title, description, visibility and
// password are plain form values.
//
// @Summary Create an instance
// @Tags instances
// @Accept mpfd
// @Produce json
// @Param thumbnail formData file true "thumbnail image"
// @Success 201 {object} model.Instance
// @Failure 400 {object} errorPayload
// @Router /instances [post]
func CreateInstance(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("thumbnail")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "thumbnail is required")
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

		inst, err := svc.Create(c.UserContext(), service.CreateInstanceInput{
			OwnerID:     middleware.CallerID(c),
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Visibility:  model.Visibility(c.FormValue("visibility")),
			Password:    c.FormValue("password"),
			Thumbnail:   f,
			ThumbName:   fh.Filename,
			ThumbType:   ct,
			ThumbSize:   fh.Size,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(inst)
	}
}

// ListInstances returns the caller's own instances.
func ListInstances(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, handled, err := pageParams(c)
		if handled {
			return err
		}
		res, err := svc.List(c.UserContext(), middleware.CallerID(c), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetInstance returns an instance with its recent groups, subject to the
// access policy. Private instances take the password from X-Access-Password.
//
// @Summary Get an instance
// @Tags instances
// @Produce json
// @Param id path string true "instance id"
// @Param X-Access-Password header string false "access password for private instances"
// @Success 200 {object} model.InstanceDetail
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /instances/{id} [get]
func GetInstance(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := svc.Get(c.UserContext(), c.Params("id"), middleware.CallerID(c), c.Get(PasswordHeader))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(detail)
	}
}

// UpdateInstance rewrites title and description.
func UpdateInstance(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateInstanceRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		inst, err := svc.Update(c.UserContext(), c.Params("id"), middleware.CallerID(c), req.Title, req.Description)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(inst)
	}
}

// ReplaceThumbnail swaps the instance thumbnail for a newly uploaded one.
func ReplaceThumbnail(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("thumbnail")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "thumbnail is required")
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

		inst, err := svc.ReplaceThumbnail(c.UserContext(), c.Params("id"), middleware.CallerID(c), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(inst)
	}
}

// ToggleVisibility flips the access policy. Going private requires
// new_password in the body; going public ignores it.
func ToggleVisibility(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req toggleVisibilityRequest
		if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		inst, err := svc.ToggleVisibility(c.UserContext(), c.Params("id"), middleware.CallerID(c), req.NewPassword)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(inst)
	}
}

// ChangeInstancePassword rotates a private instance's password.
func ChangeInstancePassword(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.ChangePassword(c.UserContext(), c.Params("id"), middleware.CallerID(c), req.OldPassword, req.NewPassword); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteInstance cascades over the whole subtree and returns the removal
// summary.
//
// @Summary Delete an instance
// @Tags instances
// @Produce json
// @Param id path string true "instance id"
// @Success 200 {object} service.CascadeSummary
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /instances/{id} [delete]
func DeleteInstance(svc service.InstanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Delete(c.UserContext(), c.Params("id"), middleware.CallerID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(summary)
	}
}
