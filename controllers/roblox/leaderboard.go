package roblox

import (
	"donasi/helpers"
	"donasi/logger"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
)

// Leaderboard returns donor standings aggregated from stored donations,
// highest total first.
func Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultPollLimit)
	offset := c.QueryInt("offset", 0)

	entries, err := services.DonorLeaderboard(limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to build leaderboard", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    entries,
		"total":   len(entries),
		"limit":   limit,
		"offset":  offset,
	})
}
