// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlethreads/storefront/internal/models"
)

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	user, err := svc.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
		Name:     "Jane",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	logged, err := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	_, err := svc.Signup(&SignupRequest{Email: "jane@example.com", Password: "first"})
	require.NoError(t, err)

	_, err = svc.Signup(&SignupRequest{Email: "jane@example.com", Password: "second"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "jane@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	_, err := svc.Signup(&SignupRequest{Email: "jane@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Unknown email and wrong password surface the same error, so the
	// login page cannot be used to probe which emails exist.
	_, unknownErr := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	_, wrongErr := svc.Login(&LoginRequest{Email: "jane@example.com", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	_, err := svc.Signup(&SignupRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)

	_, err = svc.Signup(&SignupRequest{Email: "jane@example.com"})
	assert.Error(t, err)
}
