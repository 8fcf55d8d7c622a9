package reservation

import (
	"fmt"
	"strings"
	"time"

	accountModel "table-reservation/models/account"
	reservationModel "table-reservation/models/reservation"
	"table-reservation/services/guestaccess"
	"table-reservation/utils"

	"gorm.io/gorm"
)

// Service orchestrates reservation lifecycle transitions. Every operation
// runs the entity mutation and its change-log entry in one transaction.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new reservation lifecycle service.
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateInput carries the fields a caller supplies when booking a table.
// Account is nil for unauthenticated guests.
type CreateInput struct {
	StoreID         uint
	Account         *accountModel.Account
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerGender  string
	ReservationDate time.Time
	TimeSlot        string
	PartySize       int
	ChildrenCount   int
	SpecialRequests string
}

// UpdateInput carries the customer-mutable fields. Nil pointers mean the
// field is left unchanged.
type UpdateInput struct {
	TimeSlot        *string
	PartySize       *int
	ChildrenCount   *int
	SpecialRequests *string
}

func validateCreate(in *CreateInput) error {
	if in.ReservationDate.Before(utils.Today()) {
		return &ValidationError{Field: "reservation_date", Message: "reservation date cannot be in the past"}
	}
	if in.PartySize < 1 {
		return &ValidationError{Field: "party_size", Message: "party size must be at least 1"}
	}
	if in.TimeSlot == "" || !strings.Contains(in.TimeSlot, "-") {
		return &ValidationError{Field: "time_slot", Message: "time slot must be in HH:MM-HH:MM format"}
	}
	return nil
}

// Create validates the input, persists the reservation and writes the
// created change-log entry in one transaction.
func (s *Service) Create(in CreateInput) (*reservationModel.Reservation, error) {
	// Member callers get the reservation attached to their account and
	// missing contact fields back-filled from the profile.
	if in.Account != nil {
		if in.CustomerName == "" {
			in.CustomerName = in.Account.Username
		}
		if in.CustomerPhone == "" {
			in.CustomerPhone = in.Account.Phone
		}
	}

	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	r := reservationModel.Reservation{
		ReservationNumber: utils.GenerateReservationNumber(),
		StoreID:           in.StoreID,
		CustomerName:      in.CustomerName,
		CustomerPhone:     in.CustomerPhone,
		CustomerEmail:     in.CustomerEmail,
		CustomerGender:    in.CustomerGender,
		ReservationDate:   in.ReservationDate,
		TimeSlot:          in.TimeSlot,
		PartySize:         in.PartySize,
		ChildrenCount:     in.ChildrenCount,
		SpecialRequests:   in.SpecialRequests,
		Status:            reservationModel.StatusPending,
	}

	changedBy := reservationModel.ActorCustomer
	if in.Account != nil {
		r.AccountID = &in.Account.ID
	} else {
		// Guest reservations are keyed by the phone fingerprint.
		r.PhoneHash = guestaccess.Fingerprint(in.CustomerPhone)
		changedBy = reservationModel.ActorGuest
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		return appendChangeLog(tx, &r, reservationModel.ChangeCreated, changedBy,
			nil, createAuditValues(&r), "reservation created")
	})
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// Update applies the customer-mutable fields and logs old and new values.
// changedBy is customer for members, guest for verified guests.
func (s *Service) Update(r *reservationModel.Reservation, in UpdateInput, changedBy string) error {
	if !r.CanEdit() {
		return ErrCannotEdit
	}

	oldValues := editableValues(r)

	if in.TimeSlot != nil {
		if !strings.Contains(*in.TimeSlot, "-") {
			return &ValidationError{Field: "time_slot", Message: "time slot must be in HH:MM-HH:MM format"}
		}
		r.TimeSlot = *in.TimeSlot
	}
	if in.PartySize != nil {
		if *in.PartySize < 1 {
			return &ValidationError{Field: "party_size", Message: "party size must be at least 1"}
		}
		r.PartySize = *in.PartySize
	}
	if in.ChildrenCount != nil {
		r.ChildrenCount = *in.ChildrenCount
	}
	if in.SpecialRequests != nil {
		r.SpecialRequests = *in.SpecialRequests
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(r).Error; err != nil {
			return err
		}
		return appendChangeLog(tx, r, reservationModel.ChangeUpdated, changedBy,
			oldValues, editableValues(r), "reservation details updated")
	})
}

// Cancel transitions the reservation to cancelled and records who did it
// and why. cancelledBy is customer or merchant; changedBy additionally
// distinguishes verified guests.
func (s *Service) Cancel(r *reservationModel.Reservation, cancelledBy, reason, changedBy string) error {
	if !r.CanCancel() {
		return ErrCannotCancel
	}

	oldStatus := r.Status
	cancelledAt := time.Now()

	r.Status = reservationModel.StatusCancelled
	r.CancelledAt = &cancelledAt
	r.CancelledBy = cancelledBy
	r.CancelReason = reason

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(r).Error; err != nil {
			return err
		}
		return appendChangeLog(tx, r, reservationModel.ChangeCancelled, changedBy,
			reservationModel.JSONMap{"status": oldStatus.String()},
			reservationModel.JSONMap{"status": reservationModel.StatusCancelled.String(), "cancel_reason": reason},
			fmt.Sprintf("reservation cancelled by %s", cancelledBy))
	})
}

// UpdateStatus sets the reservation to any valid status (merchant only).
// The pending->confirmed transition stamps ConfirmedAt; the stamp is never
// re-set or cleared by other transitions.
func (s *Service) UpdateStatus(r *reservationModel.Reservation, newStatus reservationModel.ReservationStatus) error {
	if !newStatus.IsValid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status: %s", newStatus)}
	}

	oldStatus := r.Status
	r.Status = newStatus

	if newStatus == reservationModel.StatusConfirmed && oldStatus != reservationModel.StatusConfirmed {
		confirmedAt := time.Now()
		r.ConfirmedAt = &confirmedAt
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(r).Error; err != nil {
			return err
		}
		return appendChangeLog(tx, r, reservationModel.ChangeUpdated, reservationModel.ActorMerchant,
			reservationModel.JSONMap{"status": oldStatus.String()},
			reservationModel.JSONMap{"status": newStatus.String()},
			fmt.Sprintf("status changed: %s -> %s", oldStatus, newStatus))
	})
}

// Delete hard-deletes a reservation (merchant only). A deleted snapshot
// entry is written first; history entries are detached from the parent and
// retained under the denormalized reservation number.
func (s *Service) Delete(r *reservationModel.Reservation) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := appendChangeLog(tx, r, reservationModel.ChangeDeleted, reservationModel.ActorMerchant,
			deleteSnapshotValues(r), reservationModel.JSONMap{}, "reservation record deleted by merchant"); err != nil {
			return err
		}
		if err := tx.Model(&reservationModel.ReservationChangeLog{}).
			Where("reservation_id = ?", r.ID).
			Update("reservation_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&reservationModel.Reservation{}, r.ID).Error
	})
}

// GuestLookupWindow is the trailing period guest lookup searches, inclusive
// of the boundary day.
const GuestLookupWindow = 30

// GuestLookup fingerprints the phone number and returns every guest
// reservation with that fingerprint dated within the trailing 30 days,
// newest first.
func (s *Service) GuestLookup(phone string) ([]reservationModel.Reservation, error) {
	phoneHash := guestaccess.Fingerprint(phone)
	windowStart := utils.Today().AddDate(0, 0, -GuestLookupWindow)

	var reservations []reservationModel.Reservation
	err := s.DB.Preload("Store").
		Where("phone_hash = ? AND account_id IS NULL AND reservation_date >= ?", phoneHash, windowStart).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	if len(reservations) == 0 {
		return nil, ErrNoGuestReservations
	}
	return reservations, nil
}

// ChangeLogs returns the audit entries for a reservation in insertion order.
func (s *Service) ChangeLogs(reservationID uint) ([]reservationModel.ReservationChangeLog, error) {
	var logs []reservationModel.ReservationChangeLog
	err := s.DB.Where("reservation_id = ?", reservationID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

// Stats aggregates reservation counts by status for one store.
func (s *Service) Stats(storeID uint) (map[string]int64, error) {
	stats := map[string]int64{"total": 0}
	for _, status := range reservationModel.GetAllReservationStatuses() {
		stats[status.String()] = 0
	}

	rows := []struct {
		Status string
		Count  int64
	}{}
	err := s.DB.Model(&reservationModel.Reservation{}).
		Select("status, count(*) as count").
		Where("store_id = ?", storeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.Status] = row.Count
		stats["total"] += row.Count
	}
	return stats, nil
}

func appendChangeLog(tx *gorm.DB, r *reservationModel.Reservation, changeType, changedBy string,
	oldValues, newValues reservationModel.JSONMap, note string) error {
	reservationID := r.ID
	entry := reservationModel.ReservationChangeLog{
		ReservationID:     &reservationID,
		ReservationNumber: r.ReservationNumber,
		ChangeType:        changeType,
		ChangedBy:         changedBy,
		OldValues:         oldValues,
		NewValues:         newValues,
		Note:              note,
	}
	return tx.Create(&entry).Error
}
