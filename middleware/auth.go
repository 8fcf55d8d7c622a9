package middleware

import (
	"fmt"
	"os"
	"strings"

	accountModel "table-reservation/models/account"
	"table-reservation/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyToken verifies an HMAC-signed access token and returns its claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			return tokenParts[1]
		}
		return ""
	}
	// Cookie fallback for browser clients.
	return c.Cookies("access")
}

func authenticate(requiredType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if requiredType != "" {
			accountType, _ := claims["account_type"].(string)
			if accountType != requiredType {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Message: "Insufficient permissions",
					Status:  fiber.StatusForbidden,
				})
			}
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

// RequireAuth requires a valid access token of any account type.
func RequireAuth() fiber.Handler {
	return authenticate("")
}

// RequireMember requires a valid member account token.
func RequireMember() fiber.Handler {
	return authenticate(accountModel.TypeMember.String())
}

// RequireMerchant requires a valid merchant account token.
func RequireMerchant() fiber.Handler {
	return authenticate(accountModel.TypeMerchant.String())
}

// OptionalAuth attaches claims when a valid token is present but lets
// unauthenticated guests through. Customer reservation endpoints work for
// both members and guests.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token != "" {
			if claims, err := VerifyToken(token); err == nil {
				c.Locals("claims", claims)
			}
		}
		return c.Next()
	}
}

// ClaimsUUID returns the account uuid from the authenticated claims, or ""
// for unauthenticated guests.
func ClaimsUUID(c *fiber.Ctx) string {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return ""
	}
	uid, _ := claims["uuid"].(string)
	return uid
}
