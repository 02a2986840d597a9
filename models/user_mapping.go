package models

import (
	"gorm.io/gorm"
)

// UserMapping links a Roblox player to their Saweria account for in-game
// attribution.
type UserMapping struct {
	gorm.Model

	RobloxID  string `gorm:"size:64;uniqueIndex" json:"roblox_id"`
	SaweriaID string `gorm:"size:64" json:"saweria_id"`
}
