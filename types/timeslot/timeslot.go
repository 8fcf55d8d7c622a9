package timeslot

import (
	"github.com/go-playground/validator/v10"

	"table-reservation/utils"
)

// TimeSlotRequest is the merchant payload for creating or updating a
// bookable time window.
type TimeSlotRequest struct {
	DayOfWeek    int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	MaxCapacity  int    `json:"max_capacity" validate:"required,min=1"`
	MaxPartySize int    `json:"max_party_size" validate:"omitempty,min=0"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// Validate checks structure via validator tags, then the time-ordering and
// capacity rules with per-field messages.
func (req *TimeSlotRequest) Validate() map[string]string {
	fieldErrors := map[string]string{}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors[fe.Field()] = "invalid value"
		}
	}

	if req.StartTime != "" && !utils.IsValidClock(req.StartTime) {
		fieldErrors["start_time"] = "must be in HH:MM format"
	}
	if req.EndTime != "" && !utils.IsValidClock(req.EndTime) {
		fieldErrors["end_time"] = "must be in HH:MM format"
	}
	if len(fieldErrors) == 0 && req.EndTime <= req.StartTime {
		fieldErrors["end_time"] = "end time must be after start time"
	}
	if req.MaxCapacity < 1 {
		fieldErrors["max_capacity"] = "max capacity must be greater than 0"
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}
