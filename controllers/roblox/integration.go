package roblox

import (
	"os"

	"donasi/database"
	"donasi/helpers"
	"donasi/logger"
	"donasi/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// Index lists the integration endpoints available to game servers.
func Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Roblox System API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"leaderboard": "/api/roblox/leaderboard",
			"saweria":     "/api/roblox/saweria",
			"users":       "/api/roblox/saweria?action=users",
		},
	})
}

// SaweriaIntegration dispatches the listener-status, user-listing and
// registration actions for the Saweria bridge.
func SaweriaIntegration(c *fiber.Ctx) error {
	action := c.Query("action")

	if c.Method() == fiber.MethodGet {
		switch action {
		case "listener":
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success": true,
				"message": "Saweria Listener active",
				"ws_url":  os.Getenv("ROBLOX_WS_URL"),
				"status":  "connected",
			})
		case "users":
			return listUserMappings(c)
		}
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid action")
	}

	var body struct {
		Action    string `json:"action"`
		RobloxID  string `json:"robloxId"`
		SaweriaID string `json:"saweriaId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if body.Action == "" {
		body.Action = action
	}

	if body.Action != "register" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid action")
	}
	if body.RobloxID == "" || body.SaweriaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "robloxId and saweriaId are required",
		})
	}

	mapping := models.UserMapping{RobloxID: body.RobloxID, SaweriaID: body.SaweriaID}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "roblox_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"saweria_id"}),
	}).Create(&mapping).Error
	if err != nil {
		logger.Log.Errorw("failed to register user mapping", "roblox_id", body.RobloxID, "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data": fiber.Map{
			"robloxId":  body.RobloxID,
			"saweriaId": body.SaweriaID,
		},
	})
}

func listUserMappings(c *fiber.Ctx) error {
	var mappings []models.UserMapping
	if err := database.DB.Find(&mappings).Error; err != nil {
		logger.Log.Errorw("failed to list user mappings", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	users := make([]fiber.Map, 0, len(mappings))
	for _, m := range mappings {
		users = append(users, fiber.Map{
			"robloxId":  m.RobloxID,
			"saweriaId": m.SaweriaID,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    users,
		"total":   len(users),
	})
}
