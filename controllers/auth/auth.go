package auth

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"donasi/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials from the environment and issues an
// opaque token for the admin endpoints.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	validUsername := os.Getenv("ADMIN_USERNAME")
	validPassword := os.Getenv("ADMIN_PASSWORD")

	if validUsername == "" || req.Username != validUsername || req.Password != validPassword {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	token := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%s", req.Username, uuid.NewString())),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"username": req.Username,
			"role":     "admin",
		},
	})
}

// Verify decodes the bearer token issued by Login.
func Verify(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
			"valid": false,
		})
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token verification failed",
			"valid": false,
		})
	}

	username, _, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token",
			"valid": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"valid":         true,
		"username":      username,
		"authenticated": true,
	})
}
