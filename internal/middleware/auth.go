package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// BearerAuth guards the API with a single service token compared against its
// bcrypt hash. The plain token is never stored server-side; operators rotate
// it by issuing a new hash.
func BearerAuth(tokenHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenHash == "" {
			return fiber.NewError(fiber.StatusServiceUnavailable, "api authentication is not configured")
		}

		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		return c.Next()
	}
}
