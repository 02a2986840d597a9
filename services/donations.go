package services

import (
	"strconv"
	"time"

	"donasi/database"
	"donasi/models"

	"gorm.io/gorm"
)

const DefaultPollLimit = 50

// AppendDonation persists exactly one donation record. There is no update or
// upsert path for donations.
func AppendDonation(d *models.Donation) error {
	return database.DB.Create(d).Error
}

// IncrementGameStats bumps the denormalized aggregates on the owning game in
// one UPDATE, so concurrent webhook deliveries for the same game serialize in
// the database and the final sums stay correct in any interleaving.
func IncrementGameStats(gameID string, amount int64) error {
	return database.DB.Model(&models.Game{}).
		Where("game_id = ?", gameID).
		UpdateColumns(map[string]any{
			"donation_count": gorm.Expr("donation_count + 1"),
			"total_amount":   gorm.Expr("total_amount + ?", amount),
		}).Error
}

// QueryDonations returns donations newest-first, optionally filtered by game
// name and restricted to records strictly after the since cursor. limit <= 0
// falls back to DefaultPollLimit.
func QueryDonations(gameName string, since time.Time, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = DefaultPollLimit
	}

	q := database.DB.Model(&models.Donation{})
	if gameName != "" {
		q = q.Where("game = ?", gameName)
	}
	if !since.IsZero() {
		q = q.Where("timestamp > ?", since)
	}

	var donations []models.Donation
	err := q.Order("timestamp DESC").Limit(limit).Find(&donations).Error
	return donations, err
}

func ListDonations() ([]models.Donation, error) {
	var donations []models.Donation
	err := database.DB.Order("timestamp DESC").Find(&donations).Error
	return donations, err
}

func DeleteDonationsByGame(gameName string) error {
	return database.DB.Where("game = ?", gameName).Delete(&models.Donation{}).Error
}

// LeaderboardEntry is one donor's aggregate standing for a game.
type LeaderboardEntry struct {
	Username     string    `json:"username"`
	Contribution int64     `json:"contribution"`
	Total        int64     `json:"total"`
	LastDonation time.Time `json:"last_donation"`
}

// DonorLeaderboard aggregates donations per donor, highest total first.
func DonorLeaderboard(limit, offset int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultPollLimit
	}

	var entries []LeaderboardEntry
	err := database.DB.Model(&models.Donation{}).
		Select("donor AS username, COUNT(*) AS contribution, SUM(amount) AS total, MAX(timestamp) AS last_donation").
		Group("donor").
		Order("total DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	return entries, err
}

// ParseSinceCursor accepts either an epoch-millis integer or a parseable
// date string and normalizes both to one instant. The zero time means "no
// cursor".
func ParseSinceCursor(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Time{}
}
