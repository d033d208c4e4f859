// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateSessionToken(7, "jane@example.com", "Jane", 8)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.Name)
	assert.False(t, claims.Admin)
}

func TestAdminTokenCarriesOnlyAdminFlag(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminToken(8)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Zero(t, claims.UserID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateSessionToken(1, "a@example.com", "", 8)
	require.NoError(t, err)

	SetJWTSecret("secret-two")
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")
	_, err := ValidateSessionToken("not.a.token")
	assert.Error(t, err)
}
