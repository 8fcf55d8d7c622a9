package merchant

import (
	"errors"
	"fmt"

	"table-reservation/logger"
	"table-reservation/middleware"
	accountModel "table-reservation/models/account"
	reservationModel "table-reservation/models/reservation"
	reservationService "table-reservation/services/reservation"
	"table-reservation/types"
	reservationTypes "table-reservation/types/reservation"
	"table-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReservationController handles the merchant-side reservation management
// endpoints. Every operation is scoped to the merchant's own store.
type ReservationController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *reservationService.Service
}

// NewReservationController creates a new merchant reservation controller.
func NewReservationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReservationController {
	return &ReservationController{
		DB:      db,
		Logger:  asyncLogger,
		Service: reservationService.NewService(db),
	}
}

// CurrentMerchant resolves the authenticated merchant account, or writes a
// 403 response and returns nil.
func CurrentMerchant(c *fiber.Ctx) *accountModel.Account {
	uid := middleware.ClaimsUUID(c)
	acct, err := utils.GetAccountByUUID(uid)
	if err != nil || !acct.IsMerchant() {
		c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Merchant account required",
		})
		return nil
	}
	return acct
}

func (mc *ReservationController) findStoreReservation(c *fiber.Ctx, storeID uint) (*reservationModel.Reservation, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid reservation id",
		})
	}

	var r reservationModel.Reservation
	if err := mc.DB.Preload("Store").Where("store_id = ?", storeID).First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Reservation not found",
			})
		}
		logger.Error("Failed to find reservation", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	return &r, nil
}

// Index lists the merchant's store reservations with optional status and
// date filters.
func (mc *ReservationController) Index(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	query := mc.DB.Preload("Store").Where("store_id = ?", *acct.StoreID)

	if status := c.Query("status"); status != "" {
		if !reservationModel.ReservationStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Validation failed",
				Errors:  map[string]string{"status": fmt.Sprintf("invalid status: %s", status)},
			})
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Validation failed",
				Errors:  map[string]string{"date": "must be in YYYY-MM-DD format"},
			})
		}
		query = query.Where("reservation_date = ?", parsed)
	}

	var reservations []reservationModel.Reservation
	if err := query.Order("reservation_date DESC, created_at DESC").Find(&reservations).Error; err != nil {
		logger.Error("Failed to list store reservations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservations retrieved successfully",
		Data:    reservations,
	})
}

// UpdateStatus transitions a reservation to any valid status. The
// pending->confirmed transition stamps the confirmation time.
func (mc *ReservationController) UpdateStatus(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	r, respErr := mc.findStoreReservation(c, *acct.StoreID)
	if r == nil {
		return respErr
	}

	var req reservationTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := mc.Service.UpdateStatus(r, reservationModel.ReservationStatus(req.Status)); err != nil {
		if ve, ok := reservationService.AsValidationError(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Validation failed",
				Errors:  map[string]string{ve.Field: ve.Message},
			})
		}
		logger.Error("Failed to update reservation status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	mc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Reservation %s status set to %s", r.ReservationNumber, r.Status))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation status updated successfully",
		Data:    r,
	})
}

// Cancel cancels a reservation on behalf of the merchant.
func (mc *ReservationController) Cancel(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	r, respErr := mc.findStoreReservation(c, *acct.StoreID)
	if r == nil {
		return respErr
	}

	var req reservationTypes.ReservationCancelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if !r.CanCancel() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "This reservation can no longer be cancelled",
		})
	}

	if err := mc.Service.Cancel(r, reservationModel.ActorMerchant, req.CancelReason, reservationModel.ActorMerchant); err != nil {
		logger.Error("Failed to cancel reservation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	mc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Reservation %s cancelled by merchant", r.ReservationNumber))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation cancelled successfully",
		Data:    r,
	})
}

// Destroy hard-deletes a reservation after writing the audit snapshot.
func (mc *ReservationController) Destroy(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	r, respErr := mc.findStoreReservation(c, *acct.StoreID)
	if r == nil {
		return respErr
	}

	reservationNumber := r.ReservationNumber

	if err := mc.Service.Delete(r); err != nil {
		logger.Error("Failed to delete reservation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	mc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Reservation %s deleted by merchant", reservationNumber))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Reservation %s deleted", reservationNumber),
	})
}

// Stats returns reservation counts by status for the merchant's store.
func (mc *ReservationController) Stats(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	stats, err := mc.Service.Stats(*acct.StoreID)
	if err != nil {
		logger.Error("Failed to aggregate reservation stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation statistics retrieved successfully",
		Data:    stats,
	})
}

// ChangeLogs returns the audit history for one of the merchant's store
// reservations.
func (mc *ReservationController) ChangeLogs(c *fiber.Ctx) error {
	acct := CurrentMerchant(c)
	if acct == nil {
		return nil
	}

	r, respErr := mc.findStoreReservation(c, *acct.StoreID)
	if r == nil {
		return respErr
	}

	logs, err := mc.Service.ChangeLogs(r.ID)
	if err != nil {
		logger.Error("Failed to load change logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Change logs retrieved successfully",
		Data:    logs,
	})
}
