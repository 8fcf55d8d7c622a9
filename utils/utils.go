package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

// GenerateReservationNumber builds the externally visible reservation
// number: date prefix plus a random uuid fragment, e.g. RSV-20260829-3F7A21BC.
func GenerateReservationNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("RSV-%s-%s", time.Now().Format("20060102"), fragment)
}

// ParseDate parses an ISO-8601 date string (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// Today returns the current local date normalized to UTC midnight, the
// same representation ParseDate produces. Reservation date checks compare
// dates, not datetimes.
func Today() time.Time {
	t, _ := time.Parse(dateLayout, now.BeginningOfDay().Format(dateLayout))
	return t
}

var (
	phonePattern = regexp.MustCompile(`^09\d{8}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// IsValidPhone reports whether the value is a well-formed mobile number
// (09 prefix, 10 digits).
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidClock reports whether the value is a well-formed HH:MM time.
func IsValidClock(value string) bool {
	return clockPattern.MatchString(value)
}
