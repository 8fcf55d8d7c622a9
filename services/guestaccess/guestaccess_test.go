package guestaccess

import (
	"testing"

	reservationModel "table-reservation/models/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministic(t *testing.T) {
	assert.Equal(t, Fingerprint("0912345678"), Fingerprint("0912345678"))
	assert.NotEqual(t, Fingerprint("0912345678"), Fingerprint("0987654321"))
	assert.Len(t, Fingerprint("0912345678"), 64)
}

func TestVerify(t *testing.T) {
	r := &reservationModel.Reservation{PhoneHash: Fingerprint("0912345678")}

	assert.True(t, Verify(r, "0912345678"))
	assert.False(t, Verify(r, "0987654321"))

	// Member reservations carry no phone hash and never verify.
	member := &reservationModel.Reservation{}
	assert.False(t, Verify(member, "0912345678"))
}

func TestVerifyHash(t *testing.T) {
	hash := Fingerprint("0912345678")
	r := &reservationModel.Reservation{PhoneHash: hash}

	assert.True(t, VerifyHash(r, hash))
	assert.False(t, VerifyHash(r, Fingerprint("0987654321")))
	assert.False(t, VerifyHash(&reservationModel.Reservation{}, ""))
}

func TestGuestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	phoneHash := Fingerprint("0912345678")
	token, expiresAt, err := IssueToken(phoneHash)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, phoneHash, parsed)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, _, err := IssueToken(Fingerprint("0912345678"))
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}
