package auth

import (
	"fmt"

	"table-reservation/utils"
)

// RegisterRequest is the payload for creating a member or merchant account.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=255"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required,min=8"`
	AccountType string `json:"account_type" validate:"omitempty,oneof=member merchant"`
	StoreID     *uint  `json:"store_id,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !utils.IsValidPhone(r.Phone) {
		return fmt.Errorf("phone must be in 09XXXXXXXX format")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.AccountType == "merchant" && r.StoreID == nil {
		return fmt.Errorf("store_id is required for merchant accounts")
	}
	return nil
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
