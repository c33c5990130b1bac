package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(7, "alice", "a@x.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(7, "alice", "a@x.com")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExtractTokenID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, refreshToken, err := svc.GenerateRefreshToken(7, "alice", "a@x.com")
	assert.NoError(t, err)

	extracted, err := svc.ExtractTokenID(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)

	// Access tokens carry no JTI.
	accessToken, err := svc.GenerateAccessToken(7, "alice", "a@x.com")
	assert.NoError(t, err)
	_, err = svc.ExtractTokenID(accessToken)
	assert.Error(t, err)
}
