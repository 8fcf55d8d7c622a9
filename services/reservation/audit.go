package reservation

import (
	reservationModel "table-reservation/models/reservation"
)

// Audit value builders. Each lifecycle operation serializes exactly the
// fields it touched: store references are reduced to their numeric ID,
// dates to ISO-8601 strings, everything else is stored as the scalar it
// already is.

const dateLayout = "2006-01-02"

// createAuditValues captures every field supplied at creation time.
func createAuditValues(r *reservationModel.Reservation) reservationModel.JSONMap {
	values := reservationModel.JSONMap{
		"store":            r.StoreID,
		"customer_name":    r.CustomerName,
		"customer_phone":   r.CustomerPhone,
		"customer_email":   r.CustomerEmail,
		"customer_gender":  r.CustomerGender,
		"reservation_date": r.ReservationDate.Format(dateLayout),
		"time_slot":        r.TimeSlot,
		"party_size":       r.PartySize,
		"children_count":   r.ChildrenCount,
		"special_requests": r.SpecialRequests,
	}
	if r.AccountID != nil {
		values["account"] = *r.AccountID
	}
	return values
}

// editableValues captures the customer-mutable fields, used for both the
// old and new side of an update entry.
func editableValues(r *reservationModel.Reservation) reservationModel.JSONMap {
	return reservationModel.JSONMap{
		"time_slot":        r.TimeSlot,
		"party_size":       r.PartySize,
		"children_count":   r.ChildrenCount,
		"special_requests": r.SpecialRequests,
	}
}

// deleteSnapshotValues captures the identifying fields of a reservation
// about to be hard-deleted, so the detached log entry stays meaningful.
func deleteSnapshotValues(r *reservationModel.Reservation) reservationModel.JSONMap {
	return reservationModel.JSONMap{
		"reservation_number": r.ReservationNumber,
		"status":             r.Status.String(),
		"customer_name":      r.CustomerName,
		"reservation_date":   r.ReservationDate.Format(dateLayout),
		"time_slot":          r.TimeSlot,
	}
}
