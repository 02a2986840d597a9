package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	LicenseTypeTrial     = "trial"
	LicenseTypePermanent = "permanent"
)

type License struct {
	gorm.Model

	LicenseID string     `gorm:"size:64;uniqueIndex" json:"id"`
	SecretKey string     `gorm:"size:64;uniqueIndex" json:"secret_key"`
	Username  string     `gorm:"size:64" json:"username"`
	Type      string     `gorm:"size:16" json:"type"`
	ExpiresAt *time.Time `json:"expires_at"`
	Active    bool       `gorm:"default:true" json:"active"`
}

// IsValid reports whether the license currently grants access. Inactive
// licenses are never valid, permanent ones always are, trials only before
// their expiry.
func (l *License) IsValid() bool {
	if !l.Active {
		return false
	}
	if l.Type == LicenseTypePermanent {
		return true
	}
	if l.ExpiresAt != nil {
		return time.Now().Before(*l.ExpiresAt)
	}
	return false
}

// DaysLeft returns the whole days until expiry, or nil for licenses without
// an expiry date.
func (l *License) DaysLeft() *int {
	if l.ExpiresAt == nil {
		return nil
	}
	diff := time.Until(*l.ExpiresAt)
	if diff < 0 {
		diff = -diff
	}
	days := int((diff + 24*time.Hour - 1) / (24 * time.Hour))
	return &days
}
