package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageParams parses limit/offset query parameters with the shared defaults.
// The returned bool reports whether an error response was already written.
func pageParams(c *fiber.Ctx) (limit, offset int, handled bool, err error) {
	limit, convErr := strconv.Atoi(c.Query("limit", "10"))
	if convErr != nil {
		return 0, 0, true, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, convErr = strconv.Atoi(c.Query("offset", "0"))
	if convErr != nil {
		return 0, 0, true, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, false, nil
}
