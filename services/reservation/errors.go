package reservation

import (
	"errors"
	"fmt"
)

// Precondition errors: the reservation exists but its current status does
// not allow the requested transition.
var (
	ErrCannotEdit   = errors.New("reservation can no longer be edited")
	ErrCannotCancel = errors.New("reservation can no longer be cancelled")
)

// ErrNoGuestReservations is returned by GuestLookup when nothing matches
// the supplied phone number within the lookup window.
var ErrNoGuestReservations = errors.New("no guest reservations found for this phone number")

// ValidationError reports a per-field validation failure. Failed validation
// never reaches storage or the change log.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
