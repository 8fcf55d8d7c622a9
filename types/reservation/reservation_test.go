package reservation

import (
	"strings"
	"testing"
)

func TestReservationCreateRequestValidate(t *testing.T) {
	valid := ReservationCreateRequest{
		StoreID:         1,
		CustomerName:    "Lin Wei",
		CustomerPhone:   "0912345678",
		ReservationDate: "2026-09-15",
		TimeSlot:        "18:00-19:30",
		PartySize:       4,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name     string
		mutate   func(*ReservationCreateRequest)
		wantWord string
	}{
		{"missing store", func(r *ReservationCreateRequest) { r.StoreID = 0 }, "store_id"},
		{"missing date", func(r *ReservationCreateRequest) { r.ReservationDate = "" }, "reservation_date"},
		{"malformed date", func(r *ReservationCreateRequest) { r.ReservationDate = "15/09/2026" }, "YYYY-MM-DD"},
		{"missing time slot", func(r *ReservationCreateRequest) { r.TimeSlot = "" }, "time_slot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantWord)
			}
		})
	}
}

func TestGuestVerifyRequestValidate(t *testing.T) {
	if err := (GuestVerifyRequest{PhoneNumber: "0912345678"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	for _, phone := range []string{"", "0812345678", "09123", "+886912345678"} {
		if err := (GuestVerifyRequest{PhoneNumber: phone}).Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", phone)
		}
	}
}

func TestStatusUpdateRequestValidate(t *testing.T) {
	if err := (StatusUpdateRequest{Status: "confirmed"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	if err := (StatusUpdateRequest{Status: "  "}).Validate(); err == nil {
		t.Error("Validate() = nil, want error for blank status")
	}
}
