package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/phyn2-2/veritas-phase1/internal/config"
)

// parsePagination reads page/limit query parameters. Page starts at 1, limit
// is bounded to [1, MaxPageSize]; out-of-range values are rejected rather than
// clamped so clients learn about their mistake.
func parsePagination(c *fiber.Ctx, cfg *config.Config) (page, limit int, err error) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fiber.NewError(fiber.StatusUnprocessableEntity, "page must be an integer >= 1")
		}
	}

	limit = cfg.DefaultPageSize
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > cfg.MaxPageSize {
			return 0, 0, fiber.NewError(fiber.StatusUnprocessableEntity,
				"limit must be an integer between 1 and "+strconv.Itoa(cfg.MaxPageSize))
		}
	}

	return page, limit, nil
}
