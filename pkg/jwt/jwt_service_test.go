package jwt

import (
	"testing"
	"time"

	"volunteerhub-backend/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseUserToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("user-1", "manager")
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "manager", role)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("a", time.Hour).GenerateTokenUser("user-1", "admin")
	require.NoError(t, err)

	_, _, err = NewJWTService("b", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Expired(t *testing.T) {
	svc := &jwtService{secretKey: "secret", issuer: issuer, ttl: -time.Minute}

	token, err := svc.GenerateTokenUser("user-1", "volunteer")
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetUserIDByToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwtUserClaim{UserID: "user-1", Role: "admin"}
	claims.Issuer = issuer
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewJWTService("secret", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestScopedToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateScopedToken("oauth_state", map[string]any{"nonce": "abc"}, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateScopedToken("oauth_state", token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims["nonce"])

	_, err = svc.ValidateScopedToken("other", token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = svc.GetUserIDByToken(token)
	assert.Error(t, err)
}
