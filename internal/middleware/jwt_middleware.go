package middleware

import (
	"strings"

	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid JWT.
func AuthRequired(authService *services.AuthService, logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.Warn().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("username", claims["username"])
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
		Error:   models.ErrCodeUnauthorized,
		Message: message,
	})
}
