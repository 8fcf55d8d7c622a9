package reservation

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// Actors recorded in cancellation metadata and change logs.
const (
	ActorCustomer = "customer"
	ActorGuest    = "guest"
	ActorMerchant = "merchant"
)

// Change log entry types.
const (
	ChangeCreated   = "created"
	ChangeUpdated   = "updated"
	ChangeCancelled = "cancelled"
	ChangeDeleted   = "deleted"
)

func (rs ReservationStatus) String() string {
	return string(rs)
}

func (rs ReservationStatus) IsValid() bool {
	switch rs {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanBeEdited returns true while the customer may still change the
// reservation details.
func (rs ReservationStatus) CanBeEdited() bool {
	return rs == StatusPending || rs == StatusConfirmed
}

// CanBeCancelled returns true while the reservation may still be cancelled.
func (rs ReservationStatus) CanBeCancelled() bool {
	return rs == StatusPending || rs == StatusConfirmed
}

// GetAllReservationStatuses returns all valid reservation statuses.
func GetAllReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		StatusPending,
		StatusConfirmed,
		StatusCompleted,
		StatusCancelled,
		StatusNoShow,
	}
}
