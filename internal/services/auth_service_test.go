package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipipeline/internal/middleware"
)

var testSecret = []byte("test-secret")

func parseClaims(t *testing.T, token string, secret []byte) (*middleware.Claims, error) {
	t.Helper()
	claims := &middleware.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	return claims, err
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, svc.CheckPassword(hash, "hunter22"))
	assert.Error(t, svc.CheckPassword(hash, "hunter23"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	claims, err := parseClaims(t, token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAccessTokenWrongSecretRejected(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = parseClaims(t, token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestAccessTokenExpiredRejected(t *testing.T) {
	svc := NewAuthService(testSecret, -time.Minute)

	token, err := svc.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = parseClaims(t, token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
