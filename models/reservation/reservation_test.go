package reservation

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReservationDerivedFlags(t *testing.T) {
	accountID := uint(7)

	guest := Reservation{Status: StatusPending}
	if !guest.IsGuestReservation() {
		t.Error("Reservation without account should be a guest reservation")
	}

	member := Reservation{Status: StatusPending, AccountID: &accountID}
	if member.IsGuestReservation() {
		t.Error("Reservation with account should not be a guest reservation")
	}

	if !guest.CanEdit() || !guest.CanCancel() {
		t.Error("pending reservation should be editable and cancellable")
	}

	cancelled := Reservation{Status: StatusCancelled}
	if cancelled.CanEdit() || cancelled.CanCancel() {
		t.Error("cancelled reservation should reject edit and cancel")
	}
}

func TestReservationMarshalJSON(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-09-15")
	r := Reservation{
		ReservationNumber: "RSV-20260829-ABCD1234",
		ReservationDate:   date,
		Status:            StatusConfirmed,
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal(Reservation) error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal error = %v", err)
	}

	if decoded["is_guest_reservation"] != true {
		t.Errorf("is_guest_reservation = %v, want true", decoded["is_guest_reservation"])
	}
	if decoded["can_edit"] != true {
		t.Errorf("can_edit = %v, want true", decoded["can_edit"])
	}
	if decoded["can_cancel"] != true {
		t.Errorf("can_cancel = %v, want true", decoded["can_cancel"])
	}
	if decoded["reservation_date"] != "2026-09-15" {
		t.Errorf("reservation_date = %v, want 2026-09-15", decoded["reservation_date"])
	}
}

func TestJSONMapScanValue(t *testing.T) {
	original := JSONMap{"status": "pending", "party_size": float64(4)}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("JSONMap.Value() error = %v", err)
	}

	var fromBytes JSONMap
	if err := fromBytes.Scan(value); err != nil {
		t.Fatalf("JSONMap.Scan([]byte) error = %v", err)
	}
	if fromBytes["status"] != "pending" || fromBytes["party_size"] != float64(4) {
		t.Errorf("JSONMap round trip = %v, want %v", fromBytes, original)
	}

	// Some drivers hand back strings.
	var fromString JSONMap
	if err := fromString.Scan(`{"note":"x"}`); err != nil {
		t.Fatalf("JSONMap.Scan(string) error = %v", err)
	}
	if fromString["note"] != "x" {
		t.Errorf("JSONMap.Scan(string) = %v, want note=x", fromString)
	}

	var fromNil JSONMap
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("JSONMap.Scan(nil) error = %v", err)
	}
	if fromNil != nil {
		t.Errorf("JSONMap.Scan(nil) = %v, want nil", fromNil)
	}
}
