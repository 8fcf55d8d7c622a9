package guestaccess

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	reservationModel "table-reservation/models/reservation"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a guest lookup token stays valid.
const TokenTTL = 24 * time.Hour

// Fingerprint returns the stable one-way fingerprint of a phone number:
// SHA-256 over the UTF-8 bytes, hex-encoded. Used both as the stored access
// key of guest reservations and for verifying callers.
func Fingerprint(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the supplied phone number matches the phone hash
// stored on the reservation.
func Verify(r *reservationModel.Reservation, suppliedPhone string) bool {
	if r.PhoneHash == "" {
		return false
	}
	return Fingerprint(suppliedPhone) == r.PhoneHash
}

// VerifyHash reports whether an already-computed fingerprint matches the
// reservation's stored phone hash.
func VerifyHash(r *reservationModel.Reservation, phoneHash string) bool {
	return r.PhoneHash != "" && r.PhoneHash == phoneHash
}

func signingKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken signs a short-lived guest access token carrying the phone
// fingerprint. Guests present it on later update/cancel calls instead of
// re-entering their phone number.
func IssueToken(phoneHash string) (string, time.Time, error) {
	expiresAt := time.Now().Add(TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"phone_hash": phoneHash,
		"scope":      "guest",
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	})

	signed, err := token.SignedString(signingKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign guest token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a guest access token and returns the phone
// fingerprint it was issued for.
func ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse guest token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid guest token")
	}

	if scope, _ := claims["scope"].(string); scope != "guest" {
		return "", fmt.Errorf("invalid guest token scope")
	}

	phoneHash, ok := claims["phone_hash"].(string)
	if !ok || phoneHash == "" {
		return "", fmt.Errorf("phone hash not found in guest token")
	}
	return phoneHash, nil
}
