package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	auth := NewAuthService(testSecret, time.Hour)
	return NewUserService(newFakeUserRepo(), auth, nil)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("Jamie", "jamie@example.com", "secret99")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "jamie@example.com", user.Email)
	assert.NotEqual(t, "secret99", user.PasswordHash)

	got, err := svc.Authenticate("jamie@example.com", "secret99")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("Jamie", "jamie@example.com", "secret99")
	require.NoError(t, err)

	_, err = svc.Register("Other", "jamie@example.com", "different1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("Jamie", "  Jamie@Example.com ", "secret99")
	require.NoError(t, err)

	_, err = svc.Register("Jamie", "jamie@example.com", "secret99")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticatePasswordVerbatim(t *testing.T) {
	svc := newUserService(t)

	// whitespace is part of the password, not decoration
	_, err := svc.Register("Jamie", "jamie@example.com", "secret99 ")
	require.NoError(t, err)

	got, err := svc.Authenticate("jamie@example.com", "secret99 ")
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", got.Email)

	_, err = svc.Authenticate("jamie@example.com", "secret99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("Jamie", "jamie@example.com", "secret99")
	require.NoError(t, err)

	_, err = svc.Authenticate("jamie@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "secret99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("Jamie", "jamie@example.com", "secret99")
	require.NoError(t, err)
	require.NoError(t, svc.IssueRefresh(user.ID, "token-one"))

	rotated, err := svc.RotateRefresh("token-one", "token-two")
	require.NoError(t, err)
	assert.Equal(t, user.ID, rotated.ID)

	// the old token is spent
	_, err = svc.RotateRefresh("token-one", "token-three")
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// the new one works
	_, err = svc.RotateRefresh("token-two", "token-three")
	assert.NoError(t, err)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc := newUserService(t)
	_, err := svc.RotateRefresh("never-issued", "whatever")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
