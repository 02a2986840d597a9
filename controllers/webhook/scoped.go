package webhook

import (
	"encoding/json"

	"donasi/helpers"
	"donasi/logger"
	"donasi/normalizer"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
)

// SaweriaWebhook is the per-game scoped ingestion endpoint for the primary
// platform. The secret key sits in the path and must resolve.
func SaweriaWebhook(c *fiber.Ctx) error {
	return scopedWebhook(c, normalizer.PlatformSaweria)
}

// BagiBagiWebhook is the scoped ingestion endpoint for the secondary platform.
func BagiBagiWebhook(c *fiber.Ctx) error {
	return scopedWebhook(c, normalizer.PlatformBagiBagi)
}

func scopedWebhook(c *fiber.Ctx, platform string) error {
	game, err := services.GetGameBySecretKey(c.Params("secretKey"))
	if err != nil {
		logger.Log.Errorw("game lookup failed", "platform", platform, "error", err)
		return helpers.JSONServerError(c, "Failed to process donation")
	}
	if game == nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Game not found")
	}

	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid donation data")
	}

	normalized, err := normalizer.Normalize(platform, payload)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid donation data")
	}

	donation := buildDonation(normalized, c.Body())
	donation.Game = game.Name

	if err := services.AppendDonation(&donation); err != nil {
		logger.Log.Errorw("failed to persist donation", "game", game.Name, "error", err)
		return helpers.JSONServerError(c, "Failed to process donation")
	}
	if err := services.IncrementGameStats(game.GameID, donation.Amount); err != nil {
		logger.Log.Errorw("failed to increment game stats", "game", game.Name, "error", err)
		return helpers.JSONServerError(c, "Failed to process donation")
	}

	logger.Log.Infow("donation accepted",
		"platform", platform,
		"game", game.Name,
		"donor", donation.Donor,
		"amount", donation.Amount,
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"donation": donation,
		"game": fiber.Map{
			"name":           game.Name,
			"roblox_game_id": game.RobloxGameID,
		},
	})
}
