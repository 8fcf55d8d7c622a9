package store

import (
	"errors"

	"table-reservation/logger"
	storeModel "table-reservation/models/store"
	"table-reservation/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StoreController serves the public store directory used when booking.
type StoreController struct {
	DB *gorm.DB
}

// NewStoreController creates a new store controller.
func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{DB: db}
}

// Index lists all stores.
func (sc *StoreController) Index(c *fiber.Ctx) error {
	var stores []storeModel.Store
	if err := sc.DB.Order("name ASC").Find(&stores).Error; err != nil {
		logger.Error("Failed to list stores", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Stores retrieved successfully",
		Data:    stores,
	})
}

// Show returns one store.
func (sc *StoreController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid store id",
		})
	}

	var s storeModel.Store
	if err := sc.DB.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Store not found",
			})
		}
		logger.Error("Failed to find store", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Store retrieved successfully",
		Data:    s,
	})
}
