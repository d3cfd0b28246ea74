package jwt

import (
	"testing"
	"time"

	"see-a-doctor/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidate_CarriesRole(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doc@example.com", "doctor")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateToken_RejectsOtherSecret(t *testing.T) {
	token, _, err := newTestService().GenerateRefreshToken(uuid.New(), "a@example.com", "user")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
