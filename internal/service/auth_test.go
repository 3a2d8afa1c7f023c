package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/types"
)

func claimsFor(subject string, expires time.Time) *types.TokenClaims {
	return &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: "diner@illinois.edu",
	}
}

func TestValidateToken(t *testing.T) {
	auth := NewAuthService("test-secret")
	id := uuid.New()

	token, err := auth.GenerateToken(claimsFor(id.String(), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "diner@illinois.edu", claims.Email)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestValidateTokenRejects(t *testing.T) {
	auth := NewAuthService("test-secret")

	expired, err := auth.GenerateToken(claimsFor(uuid.NewString(), time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	_, err = auth.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	foreign, err := NewAuthService("other-secret").GenerateToken(claimsFor(uuid.NewString(), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = auth.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badSubject, err := auth.GenerateToken(claimsFor("not-a-uuid", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = auth.ValidateToken(badSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
