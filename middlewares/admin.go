package middlewares

import (
	"strings"

	"donasi/helpers"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth gates admin endpoints on a bearer-token-shaped Authorization
// header. The token itself is the opaque value issued by the login endpoint
// and is not cryptographically verified.
func AdminAuth(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")

	if auth == "" || token == "" || token == auth {
		return helpers.JSONUnauthorized(c)
	}

	c.Locals("token", token)
	return c.Next()
}
