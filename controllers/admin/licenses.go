package admin

import (
	"fmt"
	"time"

	"donasi/database"
	"donasi/helpers"
	"donasi/logger"
	"donasi/models"

	"github.com/gofiber/fiber/v2"
)

const trialDuration = 10 * 24 * time.Hour

type GenerateLicenseRequest struct {
	Type string `json:"type"`
}

func GenerateLicense(c *fiber.Ctx) error {
	var req GenerateLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Type != models.LicenseTypeTrial && req.Type != models.LicenseTypePermanent {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid license type")
	}

	license := models.License{
		LicenseID: helpers.GenerateLicenseID(),
		SecretKey: helpers.GenerateLicenseSecretKey(),
		Username:  "new_user",
		Type:      req.Type,
		Active:    true,
	}
	if req.Type == models.LicenseTypeTrial {
		expires := time.Now().Add(trialDuration)
		license.ExpiresAt = &expires
	}

	if err := database.DB.Create(&license).Error; err != nil {
		logger.Log.Errorw("failed to create license", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"license": license,
		"message": fmt.Sprintf("License %s created", req.Type),
	})
}

func ListLicenses(c *fiber.Ctx) error {
	var licenses []models.License
	if err := database.DB.Order("created_at DESC").Find(&licenses).Error; err != nil {
		logger.Log.Errorw("failed to list licenses", "error", err)
		return helpers.JSONError(c, fiber.StatusInternalServerError, "Server error")
	}

	items := make([]fiber.Map, 0, len(licenses))
	for i := range licenses {
		lic := &licenses[i]
		items = append(items, fiber.Map{
			"id":         lic.LicenseID,
			"type":       lic.Type,
			"active":     lic.Active,
			"created_at": lic.CreatedAt.Format(time.RFC3339),
			"expires_at": lic.ExpiresAt,
			"days_left":  lic.DaysLeft(),
			"is_valid":   lic.IsValid(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"licenses": items,
		"total":    len(items),
	})
}
