package jwt

import (
	"Storybrush-Backend/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenUser(t *testing.T) {
	svc := &jwtService{secretKey: "test-secret", issuer: "STORYBRUSH"}

	token := svc.GenerateTokenUser("user-123", domain.RoleUser)
	require.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestTokenSignedWithOtherSecretIsInvalid(t *testing.T) {
	signer := &jwtService{secretKey: "other-secret", issuer: "STORYBRUSH"}
	verifier := &jwtService{secretKey: "test-secret", issuer: "STORYBRUSH"}

	token := signer.GenerateTokenUser("user-123", domain.RoleUser)

	_, _, err := verifier.GetUserIDByToken(token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageTokenIsInvalid(t *testing.T) {
	svc := &jwtService{secretKey: "test-secret", issuer: "STORYBRUSH"}

	_, _, err := svc.GetUserIDByToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	svc := &jwtService{secretKey: "test-secret", issuer: "STORYBRUSH"}

	claims := jwtUserClaim{
		UserID: "user-123",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    svc.issuer,
		},
	}
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expired, err := raw.SignedString([]byte(svc.secretKey))
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(expired)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}
