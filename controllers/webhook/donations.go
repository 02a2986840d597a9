package webhook

import (
	"encoding/json"
	"errors"
	"time"

	"donasi/helpers"
	"donasi/logger"
	"donasi/models"
	"donasi/normalizer"
	"donasi/relays"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// IngestDonation handles the unified webhook for both platforms. The platform
// tag comes from the ?platform= query or the X-Platform header; the secret
// key scopes the donation to a game. Calls without a resolving key are
// accepted as telemetry only and not persisted.
func IngestDonation(c *fiber.Ctx) error {
	platform := c.Query("platform")
	if platform == "" {
		platform = c.Get("X-Platform")
	}
	secretKey := c.Query("secretKey")

	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		logger.Log.Warnw("invalid webhook payload", "platform", platform)
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	normalized, err := normalizer.Normalize(platform, payload)
	if err != nil {
		if errors.Is(err, normalizer.ErrInvalidAmount) {
			logger.Log.Warnw("invalid donation amount", "platform", platform)
			return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid amount")
		}
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	donation := buildDonation(normalized, c.Body())

	var game *models.Game
	if secretKey != "" {
		game, err = services.GetGameBySecretKey(secretKey)
		if err != nil {
			logger.Log.Errorw("game lookup failed", "error", err)
			return helpers.JSONServerError(c, "Failed to process donation")
		}
	}

	if game == nil {
		logger.Log.Infow("donation received without game attribution",
			"platform", donation.Platform,
			"donor", donation.Donor,
			"amount", donation.Amount,
		)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Donation received",
			"id":      donation.DonationID,
			"game":    nil,
		})
	}

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
		"platform", donation.Platform,
		"game", game.Name,
		"donor", donation.Donor,
		"amount", donation.Amount,
	)

	// Fan-out runs detached; sink latency never delays the response.
	go relays.Dispatch(donation, game)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Donation received",
		"id":      donation.DonationID,
		"game":    game.Name,
	})
}

// ListRecentDonations serves the unified GET side: recent donations platform
// wide, or scoped to a game when a secret key is supplied.
func ListRecentDonations(c *fiber.Ctx) error {
	c.Set("Cache-Control", "s-maxage=10, stale-while-revalidate")

	secretKey := c.Query("secretKey")
	since := services.ParseSinceCursor(c.Query("since"))
	limit := c.QueryInt("limit", services.DefaultPollLimit)

	gameName := ""
	if secretKey != "" {
		game, err := services.GetGameBySecretKey(secretKey)
		if err != nil {
			logger.Log.Errorw("game lookup failed", "error", err)
			return helpers.JSONServerError(c, "Failed to fetch donations")
		}
		if game == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success":   false,
				"error":     "Game not found",
				"donations": []fiber.Map{},
			})
		}
		gameName = game.Name
	}

	donations, err := services.QueryDonations(gameName, since, limit)
	if err != nil {
		logger.Log.Errorw("failed to query donations", "error", err)
		return helpers.JSONServerError(c, "Failed to fetch donations")
	}

	items := make([]fiber.Map, 0, len(donations))
	var total int64
	for _, d := range donations {
		total += d.Amount
		items = append(items, fiber.Map{
			"id":         d.DonationID,
			"donor":      d.Donor,
			"amount":     d.Amount,
			"message":    d.Message,
			"created_at": d.Timestamp.Format(time.RFC3339),
			"platform":   d.Platform,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"donations": items,
		"count":     len(items),
		"total":     total,
	})
}

// buildDonation copies the normalized fields into a store record, assigning a
// server-side id and timestamp when the platform omitted them.
func buildDonation(n normalizer.Donation, raw []byte) models.Donation {
	id := n.ID
	if id == "" {
		id = helpers.GenerateDonationID()
	}

	timestamp := time.Now().UTC()
	if n.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, n.CreatedAt); err == nil {
			timestamp = t
		}
	}

	return models.Donation{
		DonationID: id,
		Donor:      n.Donor,
		Amount:     n.Amount,
		Message:    n.Message,
		Platform:   n.Platform,
		Timestamp:  timestamp,
		RawPayload: datatypes.JSON(append([]byte(nil), raw...)),
	}
}
