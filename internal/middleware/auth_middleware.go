package middleware

import (
	"strings"

	"github.com/arcsino/quizquartz-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired for downstream handlers.
const (
	UserKey     = "user"
	TokenKeyKey = "token_key"
)

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// active user. Missing or invalid tokens answer 401; protected handlers can
// then rely on the user being present in locals.
func AuthRequired(accountService *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenKey := parts[1]
		user, err := accountService.Authenticate(tokenKey)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserKey, user)
		c.Locals(TokenKeyKey, tokenKey)
		return c.Next()
	}
}
