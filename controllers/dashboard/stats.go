package dashboard

import (
	"time"

	"donasi/helpers"
	"donasi/logger"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Stats aggregates totals across every game plus the 10 most recent
// donations for the admin dashboard.
func Stats(c *fiber.Ctx) error {
	games, err := services.ListGames()
	if err != nil {
		logger.Log.Errorw("failed to list games", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	donations, err := services.ListDonations()
	if err != nil {
		logger.Log.Errorw("failed to list donations", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	var totalAmount int64
	perGameCount := map[string]int64{}
	perGameAmount := map[string]int64{}
	for _, d := range donations {
		totalAmount += d.Amount
		perGameCount[d.Game]++
		perGameAmount[d.Game] += d.Amount
	}

	average := int64(0)
	if len(donations) > 0 {
		average = decimal.NewFromInt(totalAmount).
			Div(decimal.NewFromInt(int64(len(donations)))).
			Round(0).IntPart()
	}

	gameStats := make([]fiber.Map, 0, len(games))
	for _, g := range games {
		gameStats = append(gameStats, fiber.Map{
			"id":              g.GameID,
			"name":            g.Name,
			"roblox_game_id":  g.RobloxGameID,
			"donation_count":  perGameCount[g.Name],
			"donation_amount": perGameAmount[g.Name],
		})
	}

	recent := make([]fiber.Map, 0, 10)
	for i, d := range donations {
		if i >= 10 {
			break
		}
		recent = append(recent, fiber.Map{
			"id":        d.DonationID,
			"game":      d.Game,
			"donor":     d.Donor,
			"amount":    d.Amount,
			"message":   d.Message,
			"platform":  d.Platform,
			"timestamp": d.Timestamp.Format(time.RFC3339),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"total_games":      len(games),
			"total_donations":  len(donations),
			"total_amount":     totalAmount,
			"average_donation": average,
			"games":            gameStats,
			"recent_donations": recent,
		},
	})
}
