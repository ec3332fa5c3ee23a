package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretKey = "test_secret_key_1234567890"

func TestMaker_GenerateAndParseToken(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name string
		role string
	}{
		{name: "admin user", role: "admin"},
		{name: "regular user", role: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New().String()
			token, err := maker.GenerateToken(userID, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, userID, claims.UserID())
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_GenerateToken_InvalidUserID(t *testing.T) {
	maker := NewJWTMaker(secretKey, time.Minute)

	_, err := maker.GenerateToken("not-a-uuid", "user")
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken(uuid.New().String(), "user")
	require.NoError(t, err)

	otherMaker := NewJWTMaker("another_secret", 15*time.Minute)
	foreignToken, err := otherMaker.GenerateToken(uuid.New().String(), "user")
	require.NoError(t, err)

	expiredMaker := NewJWTMaker(secretKey, 15*time.Minute)
	expiredMaker.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredToken, err := expiredMaker.GenerateToken(uuid.New().String(), "user")
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "username",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(secretKey))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.New().String()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "tampered token", token: validToken + "x"},
		{name: "foreign signature", token: foreignToken},
		{name: "expired token", token: expiredToken},
		{name: "subject is not uuid", token: badSubject},
		{name: "alg none", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
