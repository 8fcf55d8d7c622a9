package reservation

import (
	"fmt"
	"strings"

	"table-reservation/utils"
)

// ReservationCreateRequest is the payload for booking a table. Members may
// omit name/phone; they are back-filled from the account profile.
type ReservationCreateRequest struct {
	StoreID         uint   `json:"store_id" validate:"required"`
	CustomerName    string `json:"customer_name" validate:"omitempty,max=255"`
	CustomerPhone   string `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email"`
	CustomerGender  string `json:"customer_gender" validate:"omitempty,oneof=male female other"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	TimeSlot        string `json:"time_slot" validate:"required"`
	PartySize       int    `json:"party_size" validate:"required,min=1"`
	ChildrenCount   int    `json:"children_count" validate:"omitempty,min=0"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

// Validate performs request-shape validation; business rules (past date,
// slot format) live in the lifecycle service.
func (r ReservationCreateRequest) Validate() error {
	if r.StoreID == 0 {
		return fmt.Errorf("store_id is required")
	}
	if r.ReservationDate == "" {
		return fmt.Errorf("reservation_date is required")
	}
	if _, err := utils.ParseDate(r.ReservationDate); err != nil {
		return fmt.Errorf("reservation_date must be in YYYY-MM-DD format")
	}
	if r.TimeSlot == "" {
		return fmt.Errorf("time_slot is required")
	}
	return nil
}

// ReservationUpdateRequest carries the customer-mutable fields. Absent
// fields are left unchanged. PhoneNumber/GuestToken authenticate guests.
type ReservationUpdateRequest struct {
	TimeSlot        *string `json:"time_slot,omitempty"`
	PartySize       *int    `json:"party_size,omitempty"`
	ChildrenCount   *int    `json:"children_count,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty"`

	PhoneNumber string `json:"phone_number,omitempty"`
	GuestToken  string `json:"guest_token,omitempty"`
}

// ReservationCancelRequest is the payload for cancelling a reservation.
type ReservationCancelRequest struct {
	CancelReason string `json:"cancel_reason" validate:"omitempty,max=500"`

	PhoneNumber string `json:"phone_number,omitempty"`
	GuestToken  string `json:"guest_token,omitempty"`
}

// GuestVerifyRequest is the payload for guest lookup by phone number.
type GuestVerifyRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
}

func (r GuestVerifyRequest) Validate() error {
	if r.PhoneNumber == "" {
		return fmt.Errorf("phone_number is required")
	}
	if !utils.IsValidPhone(r.PhoneNumber) {
		return fmt.Errorf("phone_number must be in 09XXXXXXXX format")
	}
	return nil
}

// StatusUpdateRequest is the merchant payload for changing a reservation
// status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r StatusUpdateRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}
