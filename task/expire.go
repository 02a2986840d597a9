package tasks

import (
	"time"

	"donasi/database"
	"donasi/logger"
	"donasi/models"
	"donasi/services"
)

// CleanupExpiredGames removes temporary games whose expiry has passed,
// cascading to their donations.
func CleanupExpiredGames() {
	var expired []models.Game
	err := database.DB.
		Where("is_temporary = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Find(&expired).Error
	if err != nil {
		logger.Log.Errorw("failed to find expired games", "error", err)
		return
	}

	for i := range expired {
		game := &expired[i]
		if err := services.DeleteGame(game); err != nil {
			logger.Log.Errorw("failed to delete expired game", "game", game.Name, "error", err)
			continue
		}
		logger.Log.Infow("expired temporary game removed", "game", game.Name)
	}
}

// DeactivateExpiredLicenses flips expired trial licenses to inactive.
func DeactivateExpiredLicenses() {
	result := database.DB.Model(&models.License{}).
		Where("type = ? AND active = ? AND expires_at IS NOT NULL AND expires_at < ?",
			models.LicenseTypeTrial, true, time.Now()).
		Update("active", false)

	if result.Error != nil {
		logger.Log.Errorw("failed to deactivate expired licenses", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Log.Infow("expired trial licenses deactivated", "count", result.RowsAffected)
	}
}
