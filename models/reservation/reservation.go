package reservation

import (
	"encoding/json"
	"time"

	"table-reservation/models/account"
	"table-reservation/models/store"
)

// Reservation represents a table booking at a store. A reservation either
// belongs to a member account or, when AccountID is nil, is a guest
// reservation keyed by the one-way hash of the customer phone number.
type Reservation struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationNumber string `gorm:"type:varchar(32);not null;unique" json:"reservation_number"`

	StoreID uint        `gorm:"not null;index" json:"store_id"`
	Store   store.Store `gorm:"foreignKey:StoreID" json:"store"`

	// Nil for guest reservations.
	AccountID *uint            `gorm:"index" json:"account_id,omitempty"`
	Account   *account.Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`

	// Access key for guest reservations, SHA-256 hex of the customer phone.
	PhoneHash string `gorm:"type:varchar(64);index" json:"-"`

	CustomerName   string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone  string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerEmail  string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerGender string `gorm:"type:varchar(10)" json:"customer_gender"`

	ReservationDate time.Time `gorm:"type:date;not null;index" json:"reservation_date"`
	TimeSlot        string    `gorm:"type:varchar(20);not null" json:"time_slot"` // HH:MM-HH:MM
	PartySize       int       `gorm:"not null" json:"party_size"`
	ChildrenCount   int       `gorm:"default:0" json:"children_count"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`

	Status ReservationStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy  string     `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	CancelReason string     `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsGuestReservation reports whether the reservation has no member attached.
func (r *Reservation) IsGuestReservation() bool {
	return r.AccountID == nil
}

// CanEdit reports whether the customer may still change reservation details.
func (r *Reservation) CanEdit() bool {
	return r.Status.CanBeEdited()
}

// CanCancel reports whether the reservation may still be cancelled.
func (r *Reservation) CanCancel() bool {
	return r.Status.CanBeCancelled()
}

// MarshalJSON adds the derived eligibility flags to the wire representation.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type alias Reservation
	return json.Marshal(struct {
		alias
		IsGuestReservation bool   `json:"is_guest_reservation"`
		CanEdit            bool   `json:"can_edit"`
		CanCancel          bool   `json:"can_cancel"`
		ReservationDate    string `json:"reservation_date"`
	}{
		alias:              alias(r),
		IsGuestReservation: r.IsGuestReservation(),
		CanEdit:            r.CanEdit(),
		CanCancel:          r.CanCancel(),
		ReservationDate:    r.ReservationDate.Format("2006-01-02"),
	})
}
