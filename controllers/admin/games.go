package admin

import (
	"time"

	"donasi/helpers"
	"donasi/logger"
	"donasi/models"
	"donasi/services"

	"github.com/gofiber/fiber/v2"
)

type ManageGameRequest struct {
	Action           string  `json:"action"`
	GameID           string  `json:"gameId"`
	Name             string  `json:"name"`
	RobloxGameID     int64   `json:"robloxGameId"`
	SaweriaUsername  *string `json:"saweriaUsername"`
	BagiBagiUsername *string `json:"bagibagiUsername"`
	IsTemporary      bool    `json:"isTemporary"`
	Duration         int     `json:"duration"`
}

// ManageGames is the action-dispatch handler for the games collection:
// list, add, update, delete.
func ManageGames(c *fiber.Ctx) error {
	var req ManageGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	switch req.Action {
	case "list":
		games, err := services.ListGames()
		if err != nil {
			logger.Log.Errorw("failed to list games", "error", err)
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"games": games})

	case "add":
		return addGame(c, req)

	case "update":
		return updateGame(c, req)

	case "delete":
		return deleteGame(c, req)

	default:
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid action")
	}
}

func addGame(c *fiber.Ctx, req ManageGameRequest) error {
	if req.Name == "" || req.RobloxGameID == 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Game name and Roblox ID are required")
	}

	game := models.Game{
		GameID:       helpers.GenerateGameID(),
		Name:         req.Name,
		RobloxGameID: req.RobloxGameID,
		SecretKey:    helpers.GenerateGameSecretKey(),
		IsTemporary:  req.IsTemporary,
	}
	if req.SaweriaUsername != nil {
		game.SaweriaUsername = *req.SaweriaUsername
	}
	if req.BagiBagiUsername != nil {
		game.BagiBagiUsername = *req.BagiBagiUsername
	}
	if req.IsTemporary {
		expires := time.Now().Add(time.Duration(req.Duration) * 24 * time.Hour)
		game.ExpiresAt = &expires
	}

	if err := services.CreateGame(&game); err != nil {
		logger.Log.Errorw("failed to create game", "name", req.Name, "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "game": game})
}

func updateGame(c *fiber.Ctx, req ManageGameRequest) error {
	if req.GameID == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Game ID required")
	}

	game, err := services.GetGameByID(req.GameID)
	if err != nil {
		logger.Log.Errorw("game lookup failed", "game_id", req.GameID, "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	if game == nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Game not found")
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.RobloxGameID != 0 {
		updates["roblox_game_id"] = req.RobloxGameID
	}
	if req.SaweriaUsername != nil {
		updates["saweria_username"] = *req.SaweriaUsername
	}
	if req.BagiBagiUsername != nil {
		updates["bagibagi_username"] = *req.BagiBagiUsername
	}

	if len(updates) > 0 {
		if err := services.UpdateGame(req.GameID, updates); err != nil {
			logger.Log.Errorw("failed to update game", "game_id", req.GameID, "error", err)
			return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	updated, err := services.GetGameByID(req.GameID)
	if err != nil || updated == nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "game": updated})
}

func deleteGame(c *fiber.Ctx, req ManageGameRequest) error {
	if req.GameID == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Game ID required")
	}

	game, err := services.GetGameByID(req.GameID)
	if err != nil {
		logger.Log.Errorw("game lookup failed", "game_id", req.GameID, "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}
	if game == nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Game not found")
	}

	if err := services.DeleteGame(game); err != nil {
		logger.Log.Errorw("failed to delete game", "game_id", req.GameID, "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Game deleted"})
}
