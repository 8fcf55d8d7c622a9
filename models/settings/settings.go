package settings

import (
	"time"

	"table-reservation/models/store"
)

// StoreReservationSettings is the per-store reservation configuration,
// one row per store.
type StoreReservationSettings struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	StoreID uint        `gorm:"not null;uniqueIndex" json:"store_id"`
	Store   store.Store `gorm:"foreignKey:StoreID" json:"-"`

	ReservationEnabled bool   `gorm:"default:true" json:"reservation_enabled"`
	MaxAdvanceDays     int    `gorm:"default:30" json:"max_advance_days"`
	MinPartySize       int    `gorm:"default:1" json:"min_party_size"`
	MaxPartySize       int    `gorm:"default:10" json:"max_party_size"`
	Notes              string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
