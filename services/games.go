package services

import (
	"errors"

	"donasi/database"
	"donasi/models"

	"gorm.io/gorm"
)

// GetGameBySecretKey resolves a game by its capability token. Exact match
// only. A missing game is a normal branch and comes back as (nil, nil).
func GetGameBySecretKey(secretKey string) (*models.Game, error) {
	var game models.Game
	err := database.DB.Where("secret_key = ?", secretKey).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func GetGameByID(gameID string) (*models.Game, error) {
	var game models.Game
	err := database.DB.Where("game_id = ?", gameID).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func ListGames() ([]models.Game, error) {
	var games []models.Game
	err := database.DB.Order("created_at DESC").Find(&games).Error
	return games, err
}

func CreateGame(game *models.Game) error {
	return database.DB.Create(game).Error
}

func UpdateGame(gameID string, updates map[string]any) error {
	return database.DB.Model(&models.Game{}).Where("game_id = ?", gameID).Updates(updates).Error
}

// DeleteGame removes the game and cascades to every donation referencing it
// by name.
func DeleteGame(game *models.Game) error {
	if err := database.DB.Delete(game).Error; err != nil {
		return err
	}
	return DeleteDonationsByGame(game.Name)
}
