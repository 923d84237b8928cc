package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// Protected validates the bearer token's signature and expiry. Any defect --
// missing, malformed, expired, bad signature -- is a 401.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoadUser resolves the token subject to a fresh user row. The token is
// trusted for identity only; everything else (including the admin flag) comes
// from this read. A deleted user means every outstanding token for that
// subject stops working here.
func LoadUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := subjectFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser for this request.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no user in context")
	}
	return user, nil
}

func subjectFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
