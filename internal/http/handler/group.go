package handler

import (
	"github.com/gofiber/fiber/v2"

	"mediavault/internal/http/middleware"
	"mediavault/internal/service"
)

type groupNameRequest struct {
	Name string `json:"name"`
}

type moveGroupRequest struct {
	ToInstanceID string `json:"to_instance_id"`
}

// CreateGroup adds a group under an instance; the caller becomes its owner.
func CreateGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req groupNameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		g, err := svc.Create(c.UserContext(), c.Params("id"), middleware.CallerID(c), c.Get(PasswordHeader), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

// GetGroup returns a group with its recent resources.
func GetGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := svc.Get(c.UserContext(), c.Params("id"), c.Params("groupId"), middleware.CallerID(c), c.Get(PasswordHeader))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(detail)
	}
}

// ListGroups returns an instance's groups.
func ListGroups(svc service.GroupService) fiber.Handler {
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

// RenameGroup rewrites the group name.
func RenameGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req groupNameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		g, err := svc.Rename(c.UserContext(), c.Params("id"), c.Params("groupId"), middleware.CallerID(c), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(g)
	}
}

// MoveGroup re-parents a group onto another instance owned by the same
// caller. The path instance is the source; the destination rides the body.
//
// @Summary Move a group between instances
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "source instance id"
// @Param groupId path string true "group id"
// @Param body body moveGroupRequest true "destination"
// @Success 200 {object} model.Group
// @Failure 403 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /instances/{id}/groups/{groupId}/move [post]
func MoveGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveGroupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		g, err := svc.Move(c.UserContext(), c.Params("groupId"), c.Params("id"), req.ToInstanceID, middleware.CallerID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(g)
	}
}

// DeleteGroup cascades over the group's resources and returns the removal
// summary.
func DeleteGroup(svc service.GroupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Delete(c.UserContext(), c.Params("id"), c.Params("groupId"), middleware.CallerID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(summary)
	}
}
