package timeslot

import (
	"errors"
	"strconv"

	"table-reservation/controllers/merchant"
	"table-reservation/logger"
	timeslotModel "table-reservation/models/timeslot"
	"table-reservation/types"
	timeslotTypes "table-reservation/types/timeslot"
	"table-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TimeSlotController manages a store's bookable time windows. Merchants
// manage their own store's slots; customers read active ones through the
// public listing.
type TimeSlotController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewTimeSlotController creates a new time slot controller.
func NewTimeSlotController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TimeSlotController {
	return &TimeSlotController{DB: db, Logger: asyncLogger}
}

func (tc *TimeSlotController) findStoreSlot(c *fiber.Ctx, storeID uint) (*timeslotModel.TimeSlot, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid time slot id",
		})
	}

	var slot timeslotModel.TimeSlot
	if err := tc.DB.Where("store_id = ?", storeID).First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Time slot not found",
			})
		}
		logger.Error("Failed to find time slot", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	return &slot, nil
}

// Index lists the merchant's own time slots.
func (tc *TimeSlotController) Index(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	var slots []timeslotModel.TimeSlot
	if err := tc.DB.Where("store_id = ?", *acct.StoreID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		logger.Error("Failed to list time slots", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time slots retrieved successfully",
		Data:    slots,
	})
}

// Store creates a time slot for the merchant's store.
func (tc *TimeSlotController) Store(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	var req timeslotTypes.TimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  fieldErrors,
		})
	}

	slot := timeslotModel.TimeSlot{
		StoreID:      *acct.StoreID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MaxCapacity:  req.MaxCapacity,
		MaxPartySize: req.MaxPartySize,
		IsActive:     true,
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := tc.DB.Create(&slot).Error; err != nil {
		logger.Error("Failed to create time slot", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save time slot",
		})
	}

	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Time slot created successfully",
		Data:    slot,
	})
}

// Update modifies one of the merchant's time slots.
func (tc *TimeSlotController) Update(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	slot, respErr := tc.findStoreSlot(c, *acct.StoreID)
	if slot == nil {
		return respErr
	}

	var req timeslotTypes.TimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  fieldErrors,
		})
	}

	slot.DayOfWeek = req.DayOfWeek
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.MaxCapacity = req.MaxCapacity
	slot.MaxPartySize = req.MaxPartySize
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := tc.DB.Save(slot).Error; err != nil {
		logger.Error("Failed to update time slot", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save time slot",
		})
	}

	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time slot updated successfully",
		Data:    slot,
	})
}

// Destroy removes one of the merchant's time slots.
func (tc *TimeSlotController) Destroy(c *fiber.Ctx) error {
	acct := merchant.CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	slot, respErr := tc.findStoreSlot(c, *acct.StoreID)
	if slot == nil {
		return respErr
	}

	if err := tc.DB.Delete(slot).Error; err != nil {
		logger.Error("Failed to delete time slot", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete time slot",
		})
	}

	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time slot deleted successfully",
	})
}

// PublicIndex lists active time slots for customers. A non-numeric store_id
// filter yields an empty result rather than an error.
func (tc *TimeSlotController) PublicIndex(c *fiber.Ctx) error {
	query := tc.DB.Where("is_active = ?", true)

	if storeParam := c.Query("store_id"); storeParam != "" {
		storeID, err := strconv.Atoi(storeParam)
		if err != nil || storeID < 1 {
			return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
				Status:  fiber.StatusOK,
				Message: "Time slots retrieved successfully",
				Data:    []timeslotModel.TimeSlot{},
			})
		}
		query = query.Where("store_id = ?", storeID)
	}

	var slots []timeslotModel.TimeSlot
	if err := query.Order("day_of_week ASC, start_time ASC").Find(&slots).Error; err != nil {
		logger.Error("Failed to list public time slots", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time slots retrieved successfully",
		Data:    slots,
	})
}
