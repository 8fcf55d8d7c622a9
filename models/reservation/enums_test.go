package reservation

import (
	"testing"
)

func TestReservationStatusIsValid(t *testing.T) {
	for _, status := range GetAllReservationStatuses() {
		if !status.IsValid() {
			t.Errorf("ReservationStatus(%q).IsValid() = false, want true", status)
		}
	}

	if ReservationStatus("unknown").IsValid() {
		t.Error("ReservationStatus(\"unknown\").IsValid() = true, want false")
	}
	if ReservationStatus("").IsValid() {
		t.Error("ReservationStatus(\"\").IsValid() = true, want false")
	}
}

func TestReservationStatusEligibility(t *testing.T) {
	tests := []struct {
		status    ReservationStatus
		canEdit   bool
		canCancel bool
	}{
		{StatusPending, true, true},
		{StatusConfirmed, true, true},
		{StatusCompleted, false, false},
		{StatusCancelled, false, false},
		{StatusNoShow, false, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanBeEdited(); got != tt.canEdit {
			t.Errorf("ReservationStatus(%q).CanBeEdited() = %v, want %v", tt.status, got, tt.canEdit)
		}
		if got := tt.status.CanBeCancelled(); got != tt.canCancel {
			t.Errorf("ReservationStatus(%q).CanBeCancelled() = %v, want %v", tt.status, got, tt.canCancel)
		}
	}
}
