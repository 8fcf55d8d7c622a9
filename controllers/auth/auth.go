package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"table-reservation/constants"
	"table-reservation/logger"
	accountModel "table-reservation/models/account"
	storeModel "table-reservation/models/store"
	"table-reservation/types"
	authTypes "table-reservation/types/auth"
	"table-reservation/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthController handles account registration, login and profile requests.
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller.
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func signAccessToken(acct *accountModel.Account) (string, error) {
	claims := jwt.MapClaims{
		"uuid":         acct.Uuid,
		"username":     acct.Username,
		"account_type": acct.AccountType.String(),
		"exp":          time.Now().Add(time.Duration(constants.AccessTokenMaxAge) * time.Second).Unix(),
		"iat":          time.Now().Unix(),
	}
	if acct.StoreID != nil {
		claims["store_id"] = *acct.StoreID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// Register creates a member or merchant account.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	accountType := accountModel.TypeMember
	if req.AccountType == constants.RoleMerchant {
		accountType = accountModel.TypeMerchant

		var store storeModel.Store
		if err := h.DB.First(&store, *req.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
					Status:  fiber.StatusBadRequest,
					Message: "Store not found",
				})
			}
			logger.Error("Failed to look up store", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
			})
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	acct := accountModel.Account{
		Uuid:         uuid.New().String(),
		Username:     req.Username,
		Phone:        req.Phone,
		PasswordHash: string(passwordHash),
		AccountType:  accountType,
	}
	if req.Email != "" {
		acct.Email = &req.Email
	}
	if accountType == accountModel.TypeMerchant {
		acct.StoreID = req.StoreID
	}

	if err := h.DB.Create(&acct).Error; err != nil {
		logger.Error("Failed to create account", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Username, phone or email already taken",
		})
	}

	h.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("Account registered successfully. UUID: " + acct.Uuid)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Account registered successfully",
		Data:    acct,
	})
}

// Login verifies credentials and issues an access token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var acct accountModel.Account
	if err := h.DB.Where("username = ?", req.Username).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid username or password",
			})
		}
		logger.Error("Failed to look up account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid username or password",
		})
	}

	token, err := signAccessToken(&acct)
	if err != nil {
		logger.Error("Failed to sign access token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
		})
	}

	h.setSecureCookie(c, "access", token, constants.AccessTokenMaxAge)
	h.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Account %s logged in", acct.Username))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    acct,
	})
}

// Profile returns the authenticated account.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid token claims",
		})
	}

	uid, _ := claims["uuid"].(string)
	acct, err := utils.GetAccountByUUID(uid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Account not found",
		})
	}

	if acct.StoreID != nil {
		if err := h.DB.Preload("Store").First(acct, acct.ID).Error; err != nil {
			logger.Error("Failed to preload store", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    acct,
	})
}

// Logout clears the access cookie.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out successfully",
	})
}
