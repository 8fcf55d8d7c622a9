package utils

import (
	"errors"
	"fmt"

	"table-reservation/database"
	accountModel "table-reservation/models/account"

	"gorm.io/gorm"
)

// GetAccountByUUID loads an account by its uuid claim.
func GetAccountByUUID(uuid string) (*accountModel.Account, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var acct accountModel.Account
	if err := database.DB.Where("uuid = ?", uuid).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("account not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &acct, nil
}
