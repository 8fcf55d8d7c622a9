package timeslot

import (
	"testing"
)

func validRequest() TimeSlotRequest {
	return TimeSlotRequest{
		DayOfWeek:    5,
		StartTime:    "18:00",
		EndTime:      "19:30",
		MaxCapacity:  20,
		MaxPartySize: 8,
	}
}

func TestTimeSlotRequestValidate(t *testing.T) {
	req := validRequest()
	if errs := req.Validate(); errs != nil {
		t.Errorf("Validate() = %v, want nil", errs)
	}
}

func TestTimeSlotRequestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TimeSlotRequest)
		wantKey string
	}{
		{
			name:    "end before start",
			mutate:  func(r *TimeSlotRequest) { r.StartTime = "18:00"; r.EndTime = "17:00" },
			wantKey: "end_time",
		},
		{
			name:    "end equals start",
			mutate:  func(r *TimeSlotRequest) { r.StartTime = "18:00"; r.EndTime = "18:00" },
			wantKey: "end_time",
		},
		{
			name:    "zero capacity",
			mutate:  func(r *TimeSlotRequest) { r.MaxCapacity = 0 },
			wantKey: "max_capacity",
		},
		{
			name:    "malformed start time",
			mutate:  func(r *TimeSlotRequest) { r.StartTime = "6pm" },
			wantKey: "start_time",
		},
		{
			name:    "hour out of range",
			mutate:  func(r *TimeSlotRequest) { r.EndTime = "24:00" },
			wantKey: "end_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			errs := req.Validate()
			if errs == nil {
				t.Fatal("Validate() = nil, want field errors")
			}
			if _, ok := errs[tt.wantKey]; !ok {
				t.Errorf("Validate() = %v, want error for %q", errs, tt.wantKey)
			}
		})
	}
}
