package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Donation is append-only: accepted webhooks create exactly one record,
// records are never updated, and they are deleted only when the owning game
// is deleted. DonationID is indexed but intentionally not unique, so a
// platform's webhook retry creates a duplicate record (known gap).
type Donation struct {
	gorm.Model

	DonationID string `gorm:"size:64;index" json:"id"`

	// Games are referenced by name, not GameID. Renaming a game orphans its
	// historical donations.
	Game string `gorm:"size:128;index" json:"game"`

	Donor    string `gorm:"size:128" json:"donor"`
	Amount   int64  `json:"amount"`
	Message  string `gorm:"size:512" json:"message"`
	Platform string `gorm:"size:16;index" json:"platform"`

	Timestamp time.Time `gorm:"index" json:"timestamp"`

	RawPayload datatypes.JSON `gorm:"type:jsonb" json:"-"`
}
