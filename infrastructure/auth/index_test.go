package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withKey(t *testing.T, key string) {
	previous := SigningKey
	SigningKey = []byte(key)
	t.Cleanup(func() { SigningKey = previous })
}

func TestTokenRoundTrip(t *testing.T) {
	withKey(t, "test-secret")
	email := "learner@example.com"
	token, err := GenerateAuthToken(ClaimsData{
		UserID:    "U1",
		Email:     &email,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	claims, err := DecodeAuthToken(*token)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.UserID)
	assert.Equal(t, email, *claims.Email)
}

func TestDecodeRejectsExpiredAndForeignTokens(t *testing.T) {
	withKey(t, "test-secret")
	expired, err := GenerateAuthToken(ClaimsData{UserID: "U1", ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)
	_, err = DecodeAuthToken(*expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "U1"}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = DecodeAuthToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "U1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = DecodeAuthToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRequiresSubject(t *testing.T) {
	withKey(t, "test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.co"}).SignedString(SigningKey)
	require.NoError(t, err)
	_, err = DecodeAuthToken(token)
	assert.ErrorIs(t, err, ErrMissingUserID)
}
