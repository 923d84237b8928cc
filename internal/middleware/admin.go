package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
)

// AdminRequired gates a route on the admin flag of the freshly loaded user
// row. It runs after LoadUser, so the check always reflects current storage:
// demoting an admin takes effect on their very next request.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
