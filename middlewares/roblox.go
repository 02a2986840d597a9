package middlewares

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// RobloxAPIKeyAuth guards the game-server integration endpoints with the
// shared ROBLOX_API_KEY secret.
func RobloxAPIKeyAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expectedKey := os.Getenv("ROBLOX_API_KEY")
		apiKey := c.Get("X-API-Key")
		if apiKey == "" || apiKey != expectedKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or missing API key",
			})
		}
		return c.Next()
	}
}
