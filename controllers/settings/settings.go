package settings

import (
	"errors"

	"table-reservation/controllers/merchant"
	"table-reservation/logger"
	settingsModel "table-reservation/models/settings"
	"table-reservation/types"
	"table-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SettingsController manages the per-store reservation settings blob.
type SettingsController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewSettingsController creates a new settings controller.
func NewSettingsController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *SettingsController {
	return &SettingsController{DB: db, Logger: asyncLogger}
}

// Show returns the merchant's store settings, creating the default row on
// first access.
func (sc *SettingsController) Show(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	var cfg settingsModel.StoreReservationSettings
	err := sc.DB.Where("store_id = ?", *acct.StoreID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = settingsModel.StoreReservationSettings{
			StoreID:            *acct.StoreID,
			ReservationEnabled: true,
			MaxAdvanceDays:     30,
			MinPartySize:       1,
			MaxPartySize:       10,
		}
		err = sc.DB.Create(&cfg).Error
	}
	if err != nil {
		logger.Error("Failed to load store settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Settings retrieved successfully",
		Data:    cfg,
	})
}

// Update modifies the merchant's store settings.
func (sc *SettingsController) Update(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	var req struct {
		ReservationEnabled *bool   `json:"reservation_enabled,omitempty"`
		MaxAdvanceDays     *int    `json:"max_advance_days,omitempty"`
		MinPartySize       *int    `json:"min_party_size,omitempty"`
		MaxPartySize       *int    `json:"max_party_size,omitempty"`
		Notes              *string `json:"notes,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var cfg settingsModel.StoreReservationSettings
	err := sc.DB.Where("store_id = ?", *acct.StoreID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = settingsModel.StoreReservationSettings{StoreID: *acct.StoreID}
		err = nil
	}
	if err != nil {
		logger.Error("Failed to load store settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if req.ReservationEnabled != nil {
		cfg.ReservationEnabled = *req.ReservationEnabled
	}
	if req.MaxAdvanceDays != nil {
		cfg.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.MinPartySize != nil {
		cfg.MinPartySize = *req.MinPartySize
	}
	if req.MaxPartySize != nil {
		cfg.MaxPartySize = *req.MaxPartySize
	}
	if req.Notes != nil {
		cfg.Notes = *req.Notes
	}

	if err := sc.DB.Save(&cfg).Error; err != nil {
		logger.Error("Failed to save store settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save settings",
		})
	}

	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Settings updated successfully",
		Data:    cfg,
	})
}
