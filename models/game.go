package models

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	gorm.Model

	GameID           string `gorm:"size:64;uniqueIndex" json:"id"`
	Name             string `gorm:"size:128;uniqueIndex" json:"name"`
	RobloxGameID     int64  `json:"roblox_game_id"`
	SaweriaUsername  string `gorm:"size:64" json:"saweria_username"`
	BagiBagiUsername string `gorm:"size:64" json:"bagibagi_username"`

	// Capability token: possession authorizes webhook submission and polling
	// for this game.
	SecretKey string `gorm:"size:64;uniqueIndex" json:"secret_key"`

	DonationCount int64 `json:"donation_count"`
	TotalAmount   int64 `json:"total_amount"`

	IsTemporary bool       `gorm:"default:false" json:"is_temporary"`
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`
}
