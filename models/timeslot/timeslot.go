package timeslot

import (
	"time"

	"table-reservation/models/store"
)

// TimeSlot is a per-store recurring bookable window. Merchants manage the
// slots for their own store; customers only see active ones.
type TimeSlot struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	StoreID uint        `gorm:"not null;index" json:"store_id"`
	Store   store.Store `gorm:"foreignKey:StoreID" json:"-"`

	DayOfWeek    int    `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime    string `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime      string `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM
	MaxCapacity  int    `gorm:"not null" json:"max_capacity"`
	MaxPartySize int    `gorm:"default:0" json:"max_party_size"`
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
