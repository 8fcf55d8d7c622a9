package reservation

import (
	"errors"
	"fmt"

	"table-reservation/logger"
	"table-reservation/middleware"
	accountModel "table-reservation/models/account"
	reservationModel "table-reservation/models/reservation"
	"table-reservation/services/guestaccess"
	reservationService "table-reservation/services/reservation"
	"table-reservation/types"
	reservationTypes "table-reservation/types/reservation"
	"table-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReservationController handles the customer-side reservation endpoints.
// Members authenticate with an access token; guests act on their own
// reservations by re-verifying their phone number or presenting the signed
// guest token from a lookup.
type ReservationController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *reservationService.Service
}

// NewReservationController creates a new customer reservation controller.
func NewReservationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReservationController {
	return &ReservationController{
		DB:      db,
		Logger:  asyncLogger,
		Service: reservationService.NewService(db),
	}
}

// currentAccount resolves the authenticated account, or nil for guests.
func currentAccount(c *fiber.Ctx) *accountModel.Account {
	uid := middleware.ClaimsUUID(c)
	if uid == "" {
		return nil
	}
	acct, err := utils.GetAccountByUUID(uid)
	if err != nil {
		return nil
	}
	return acct
}

// guestVerified reports whether the caller proved access to a guest
// reservation, by raw phone number or by a valid guest token.
func guestVerified(r *reservationModel.Reservation, phone, token string) bool {
	if phone != "" && guestaccess.Verify(r, phone) {
		return true
	}
	if token != "" {
		if phoneHash, err := guestaccess.ParseToken(token); err == nil {
			return guestaccess.VerifyHash(r, phoneHash)
		}
	}
	return false
}

func (rc *ReservationController) findReservation(c *fiber.Ctx) (*reservationModel.Reservation, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid reservation id",
		})
	}

	var r reservationModel.Reservation
	if err := rc.DB.Preload("Store").First(&r, id).Error; err != nil {
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

func lifecycleErrorResponse(c *fiber.Ctx, err error) error {
	if ve, ok := reservationService.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  map[string]string{ve.Field: ve.Message},
		})
	}
	if errors.Is(err, reservationService.ErrCannotEdit) || errors.Is(err, reservationService.ErrCannotCancel) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	logger.Error("Reservation operation failed", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// Store creates a reservation for a member or an unauthenticated guest.
func (rc *ReservationController) Store(c *fiber.Ctx) error {
	var req reservationTypes.ReservationCreateRequest
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

	reservationDate, err := utils.ParseDate(req.ReservationDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "reservation_date must be in YYYY-MM-DD format",
		})
	}

	acct := currentAccount(c)
	if acct == nil && req.CustomerPhone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  map[string]string{"customer_phone": "phone number is required for guest reservations"},
		})
	}
	if acct == nil && !utils.IsValidPhone(req.CustomerPhone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  map[string]string{"customer_phone": "phone number must be in 09XXXXXXXX format"},
		})
	}

	created, err := rc.Service.Create(reservationService.CreateInput{
		StoreID:         req.StoreID,
		Account:         acct,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerGender:  req.CustomerGender,
		ReservationDate: reservationDate,
		TimeSlot:        req.TimeSlot,
		PartySize:       req.PartySize,
		ChildrenCount:   req.ChildrenCount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return lifecycleErrorResponse(c, err)
	}

	// Load the full representation with the store relation.
	var full reservationModel.Reservation
	if err := rc.DB.Preload("Store").First(&full, created.ID).Error; err != nil {
		logger.Error("Failed to load created reservation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Reservation created but failed to retrieve complete data",
		})
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Reservation %s created", full.ReservationNumber))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Reservation created successfully",
		Data:    full,
	})
}

// Index lists the authenticated member's reservations, newest first.
func (rc *ReservationController) Index(c *fiber.Ctx) error {
	acct := currentAccount(c)
	if acct == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Account not found",
		})
	}

	var reservations []reservationModel.Reservation
	if err := rc.DB.Preload("Store").
		Where("account_id = ?", acct.ID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		logger.Error("Failed to list reservations", err)
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

// authorizeCustomer checks that the caller owns the reservation (member) or
// passed guest verification. Returns a response error when access is denied.
func (rc *ReservationController) authorizeCustomer(c *fiber.Ctx, r *reservationModel.Reservation, phone, token string) error {
	if r.IsGuestReservation() {
		if !guestVerified(r, phone, token) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Not allowed to access this reservation",
			})
		}
		return nil
	}

	acct := currentAccount(c)
	if acct == nil || r.AccountID == nil || acct.ID != *r.AccountID {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Not allowed to access this reservation",
		})
	}
	return nil
}

// Update changes the customer-mutable fields of a reservation.
func (rc *ReservationController) Update(c *fiber.Ctx) error {
	r, respErr := rc.findReservation(c)
	if r == nil {
		return respErr
	}

	var req reservationTypes.ReservationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if !r.CanEdit() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "This reservation can no longer be edited",
		})
	}

	if err := rc.authorizeCustomer(c, r, req.PhoneNumber, req.GuestToken); err != nil {
		return err
	}

	changedBy := reservationModel.ActorCustomer
	if r.IsGuestReservation() {
		changedBy = reservationModel.ActorGuest
	}

	err := rc.Service.Update(r, reservationService.UpdateInput{
		TimeSlot:        req.TimeSlot,
		PartySize:       req.PartySize,
		ChildrenCount:   req.ChildrenCount,
		SpecialRequests: req.SpecialRequests,
	}, changedBy)
	if err != nil {
		return lifecycleErrorResponse(c, err)
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation updated successfully",
		Data:    r,
	})
}

// Cancel cancels a reservation on behalf of the customer.
func (rc *ReservationController) Cancel(c *fiber.Ctx) error {
	r, respErr := rc.findReservation(c)
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

	if err := rc.authorizeCustomer(c, r, req.PhoneNumber, req.GuestToken); err != nil {
		return err
	}

	changedBy := reservationModel.ActorCustomer
	if r.IsGuestReservation() {
		changedBy = reservationModel.ActorGuest
	}

	if err := rc.Service.Cancel(r, reservationModel.ActorCustomer, req.CancelReason, changedBy); err != nil {
		return lifecycleErrorResponse(c, err)
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Reservation %s cancelled by customer", r.ReservationNumber))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation cancelled successfully",
		Data:    r,
	})
}

// VerifyGuest looks up guest reservations by phone number and issues a
// signed, expiring guest token for follow-up update/cancel calls.
func (rc *ReservationController) VerifyGuest(c *fiber.Ctx) error {
	var req reservationTypes.GuestVerifyRequest
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
			Message: "Validation failed",
			Errors:  map[string]string{"phone_number": err.Error()},
		})
	}

	reservations, err := rc.Service.GuestLookup(req.PhoneNumber)
	if err != nil {
		if errors.Is(err, reservationService.ErrNoGuestReservations) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "No reservations found for this phone number",
			})
		}
		logger.Error("Guest lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	token, expiresAt, err := guestaccess.IssueToken(guestaccess.Fingerprint(req.PhoneNumber))
	if err != nil {
		logger.Error("Failed to issue guest token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue guest token",
		})
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Guest reservations retrieved successfully",
		Token:   token,
		Data: fiber.Map{
			"reservations": reservations,
			"count":        len(reservations),
			"expires_at":   expiresAt,
		},
	})
}

// ChangeLogs returns the audit history for a reservation the caller may
// access.
func (rc *ReservationController) ChangeLogs(c *fiber.Ctx) error {
	r, respErr := rc.findReservation(c)
	if r == nil {
		return respErr
	}

	if err := rc.authorizeCustomer(c, r, c.Query("phone_number"), c.Query("guest_token")); err != nil {
		return err
	}

	logs, err := rc.Service.ChangeLogs(r.ID)
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
