package reservation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ReservationChangeLog is an append-only record of one mutation to a
// reservation. ReservationID is nullable so the history survives a hard
// delete of the parent row; ReservationNumber is denormalized for lookups
// after the parent is gone.
type ReservationChangeLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ReservationID     *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation       *Reservation `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	ReservationNumber string       `gorm:"type:varchar(32);not null;index" json:"reservation_number"`

	ChangeType string `gorm:"type:varchar(20);not null" json:"change_type"` // created, updated, cancelled, deleted
	ChangedBy  string `gorm:"type:varchar(20);not null" json:"changed_by"`  // customer, guest, merchant

	OldValues JSONMap `gorm:"type:json" json:"old_values"`
	NewValues JSONMap `gorm:"type:json" json:"new_values"`

	Note      string    `gorm:"type:varchar(500)" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// JSONMap stores an arbitrary key->scalar mapping as a JSON column.
type JSONMap map[string]interface{}

// Scan implements the Scanner interface for database deserialization.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, m)
}

// Value implements the driver Valuer interface for database serialization.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
