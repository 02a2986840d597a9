package poll

import (
	"time"

	"donasi/logger"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
)

// DonationsBySecretKey serves game servers that cannot receive pushes. It
// resolves the game by the path secret key and returns donations strictly
// newer than the since cursor, newest-first. count and total are scoped to
// the returned page, not the full matching set.
func DonationsBySecretKey(c *fiber.Ctx) error {
	c.Set("Cache-Control", "s-maxage=10, stale-while-revalidate")

	game, err := services.GetGameBySecretKey(c.Params("secretKey"))
	if err != nil {
		logger.Log.Errorw("game lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":        false,
			"error":     "Failed to fetch donations",
			"donations": []fiber.Map{},
		})
	}
	if game == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"ok":        false,
			"error":     "Game not found",
			"donations": []fiber.Map{},
		})
	}

	since := services.ParseSinceCursor(c.Query("since"))
	limit := c.QueryInt("limit", services.DefaultPollLimit)

	donations, err := services.QueryDonations(game.Name, since, limit)
	if err != nil {
		logger.Log.Errorw("failed to query donations", "game", game.Name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":        false,
			"error":     "Failed to fetch donations",
			"donations": []fiber.Map{},
		})
	}

	items := make([]fiber.Map, 0, len(donations))
	var total int64
	for _, d := range donations {
		total += d.Amount
		items = append(items, fiber.Map{
			"id":        d.DonationID,
			"donor":     d.Donor,
			"amount":    d.Amount,
			"message":   d.Message,
			"platform":  d.Platform,
			"timestamp": d.Timestamp.Format(time.RFC3339),
			"ts":        d.Timestamp.UnixMilli(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":        true,
		"success":   true,
		"count":     len(items),
		"total":     total,
		"donations": items,
		"game": fiber.Map{
			"id":             game.GameID,
			"name":           game.Name,
			"roblox_game_id": game.RobloxGameID,
		},
		"cached_at": time.Now().UTC().Format(time.RFC3339),
	})
}
