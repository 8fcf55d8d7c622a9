package account

import (
	"time"

	"table-reservation/models/store"
)

// AccountType distinguishes member (customer) accounts from merchant accounts.
// Unauthenticated guests never get an account row; their reservations are
// keyed by a phone fingerprint instead.
type AccountType string

const (
	TypeMember   AccountType = "member"
	TypeMerchant AccountType = "merchant"
)

func (at AccountType) String() string {
	return string(at)
}

func (at AccountType) IsValid() bool {
	return at == TypeMember || at == TypeMerchant
}

// Account is an authenticated user of the system. Merchants carry the store
// they manage; members carry the profile fields used to back-fill guest
// reservation data.
type Account struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string      `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Username     string      `gorm:"type:varchar(255);not null;unique" json:"username"`
	Phone        string      `gorm:"type:varchar(20);not null;unique" json:"phone"`
	Email        *string     `gorm:"type:varchar(255);unique" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	AccountType  AccountType `gorm:"type:varchar(20);not null;default:member" json:"account_type"`

	// Only set for merchant accounts.
	StoreID *uint        `gorm:"index" json:"store_id,omitempty"`
	Store   *store.Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// IsMerchant reports whether the account manages a store.
func (a *Account) IsMerchant() bool {
	return a.AccountType == TypeMerchant && a.StoreID != nil
}
