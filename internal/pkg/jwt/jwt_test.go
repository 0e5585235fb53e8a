package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, expiresAt, err := svc.GenerateAccessToken("f4a1db83-5717-4ac3-afaf-1b1c40c4e3b7", user.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	role, _ := decoded.Get("role")
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "f4a1db83-5717-4ac3-afaf-1b1c40c4e3b7", userID)
	assert.Equal(t, "RRHH", role)
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestGenerateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Hour)

	token, _, err := svc.GenerateAccessToken("f4a1db83-5717-4ac3-afaf-1b1c40c4e3b7", user.RoleStaff)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}
